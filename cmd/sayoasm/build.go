package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"

	"github.com/svr2kos2/sayo-asm/pkg/asm"
	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/parser"
	"github.com/svr2kos2/sayo-asm/pkg/sema"
	"github.com/svr2kos2/sayo-asm/pkg/utils"
	"github.com/svr2kos2/sayo-asm/pkg/watch"
)

type buildOptions struct {
	output        string
	listing       bool
	listingOutput string
	outputDir     string
	raw           bool
	check         bool
	watch         bool
}

var errCheckFailed = errors.New("semantic check failed")

// load reads and parses path, printing any parse error.
func (a *app) load(path string) (string, *ast.Program, error) {
	src, err := utils.ReadSource(path)
	if err != nil {
		return "", nil, a.fail(err)
	}
	prog, err := parser.Parse(src)
	if err != nil {
		return "", nil, a.fail(fmt.Errorf("%s: %w", path, err))
	}
	return src, prog, nil
}

func (a *app) build(path string, opts *buildOptions) error {
	src, prog, err := a.load(path)
	if err != nil {
		return err
	}
	if opts.check {
		diags := sema.Check(src, prog)
		a.printDiagnostics(path, diags)
		if sema.HasErrors(diags) {
			return errCheckFailed
		}
	}

	as := asm.NewAssembler(src, prog)
	as.Raw = opts.raw
	out, err := as.Assemble()
	if err != nil {
		return a.fail(fmt.Errorf("%s: %w", path, err))
	}

	binPath := opts.output
	if binPath == "" {
		binPath = utils.OutputPath(path, opts.outputDir, ".bin")
	}
	if err := utils.WriteFile(binPath, out.MachineCode); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "assembled %d bytes -> %s (text %d, data %d)\n",
		len(out.MachineCode), binPath, out.Layout.Sizes.Text, out.Layout.Sizes.Data)

	if opts.listing || opts.listingOutput != "" {
		lstPath := opts.listingOutput
		if lstPath == "" {
			lstPath = utils.OutputPath(path, opts.outputDir, ".lst")
		}
		if err := utils.WriteFile(lstPath, []byte(out.Listing)); err != nil {
			return a.fail(err)
		}
		fmt.Fprintf(a.stdout, "listing -> %s\n", lstPath)
	}
	return nil
}

// watch builds once, then again after every change to path until interrupted.
// Build failures are reported and do not stop watching.
func (a *app) watch(ctx context.Context, path string, opts *buildOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rebuild := make(chan struct{}, 1)
	w, err := watch.New(func(string) {
		select {
		case rebuild <- struct{}{}:
		default:
		}
	}, watch.DefaultDebounce)
	if err != nil {
		return a.fail(err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return a.fail(err)
	}

	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	_ = a.build(path, opts)
	fmt.Fprintf(a.stdout, "watching %s\n", path)
	for {
		select {
		case <-ctx.Done():
			return <-errc
		case err := <-errc:
			if err != nil {
				return a.fail(err)
			}
			return nil
		case <-rebuild:
			glog.V(1).Infof("rebuilding %s", path)
			_ = a.build(path, opts)
		}
	}
}

func (a *app) printDiagnostics(path string, diags []sema.Diagnostic) {
	for _, d := range diags {
		label := a.paint(d.Severity.String()+":", ansiRed)
		if d.Severity == sema.SeverityWarning {
			label = a.paint(d.Severity.String()+":", ansiYellow)
		}
		msg := d.Message
		if d.Hint != "" {
			msg += " (" + d.Hint + ")"
		}
		fmt.Fprintf(a.stderr, "%s:%d:%d: %s %s [%s]\n", path, d.Line, d.Column, label, msg, d.Category)
	}
}
