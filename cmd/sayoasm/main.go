// Command sayoasm assembles Sayo script source into loadable images.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/svr2kos2/sayo-asm/pkg/config"
)

func main() {
	code := 0
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		code = 1
	}
	glog.Flush()
	os.Exit(code)
}

// app carries the settings shared by every command.
type app struct {
	cfg    config.Config
	cfgErr error
	color  string
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	a.cfg, a.cfgErr = config.FromEnv()

	opts := &buildOptions{
		listing:   a.cfg.Listing,
		raw:       a.cfg.Raw,
		outputDir: a.cfg.OutputDir,
	}
	root := &cobra.Command{
		Use:   "sayoasm [flags] FILE.s",
		Short: "Assembler for the Sayo script VM",
		Long: `sayoasm translates Sayo assembly into a binary image: a 12-byte header
(CALL main, EXIT, "SAYO", version, text size) followed by the text and
data sections.

Defaults for several flags come from SAYOASM_LISTING, SAYOASM_RAW,
SAYOASM_OUTPUT_DIR and SAYOASM_COLOR.`,
		Args:          a.exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfgErr != nil {
				return a.fail(a.cfgErr)
			}
			mode, err := config.ParseColorMode(a.color)
			if err != nil {
				return a.fail(err)
			}
			a.cfg.Color = mode
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return a.watch(cmd.Context(), args[0], opts)
			}
			return a.build(args[0], opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return a.fail(err) })

	f := root.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output image path (default: FILE.bin)")
	f.BoolVarP(&opts.listing, "listing", "l", opts.listing, "also write a listing file")
	f.StringVar(&opts.listingOutput, "listing-output", "", "listing path (default: FILE.lst)")
	f.StringVar(&opts.outputDir, "output-dir", opts.outputDir, "directory for default output paths")
	f.BoolVar(&opts.raw, "raw", opts.raw, "emit text and data without the header")
	f.BoolVar(&opts.check, "check", false, "run the semantic checker before assembling")
	f.BoolVar(&opts.watch, "watch", false, "rebuild whenever FILE changes")

	pf := root.PersistentFlags()
	pf.StringVar(&a.color, "color", a.cfg.Color.String(), "colour diagnostics: auto, always or never")
	addGlogFlags(pf)

	root.AddCommand(
		newCheckCmd(a),
		newDumpCmd(a),
		newIsaCmd(a),
		newDisasmCmd(a),
	)
	return root
}

// addGlogFlags exposes glog's flags, keeping all but -v and -logtostderr
// out of the help text. Logs go to stderr unless told otherwise.
func addGlogFlags(pf *pflag.FlagSet) {
	if gf := flag.Lookup("logtostderr"); gf != nil {
		_ = gf.Value.Set("true")
		gf.DefValue = "true"
	}
	glogFlags := pflag.NewFlagSet("glog", pflag.ContinueOnError)
	glogFlags.AddGoFlagSet(flag.CommandLine)
	glogFlags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "v" && f.Name != "logtostderr" {
			f.Hidden = true
		}
		if pf.Lookup(f.Name) == nil {
			pf.AddFlag(f)
		}
	})
}

// exactArgs is cobra.ExactArgs with the error printed, since cobra's own
// reporting is silenced.
func (a *app) exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return a.fail(err)
		}
		return nil
	}
}

// fail prints err and returns it so RunE reports a non-zero exit.
func (a *app) fail(err error) error {
	fmt.Fprintf(a.stderr, "%s %v\n", a.paint("error:", ansiRed), err)
	return err
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func (a *app) paint(s, code string) string {
	if !a.cfg.UseColor(isTerminal(a.stderr)) {
		return s
	}
	return code + s + ansiReset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
