package main

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/svr2kos2/sayo-asm/pkg/asm"
	"github.com/svr2kos2/sayo-asm/pkg/ast"
)

func newDumpCmd(a *app) *cobra.Command {
	var layout bool
	cmd := &cobra.Command{
		Use:   "dump FILE.s",
		Short: "Print the parsed program, or its layout with --layout",
		Args:  a.exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prog, err := a.load(args[0])
			if err != nil {
				return err
			}
			if !layout {
				printer := pp.New()
				printer.SetOutput(a.stdout)
				printer.SetColoringEnabled(a.cfg.UseColor(isTerminal(a.stdout)))
				printer.Println(prog.Items)
				return nil
			}
			l, err := asm.ComputeLayout(prog)
			if err != nil {
				return a.fail(err)
			}
			a.printLayout(prog, l)
			return nil
		},
	}
	cmd.Flags().BoolVar(&layout, "layout", false, "print item addresses and the symbol table")
	return cmd
}

func (a *app) printLayout(prog *ast.Program, l *asm.Layout) {
	fmt.Fprintf(a.stdout, "; text %d bytes, data %d bytes, data starts at 0x%04x\n",
		l.Sizes.Text, l.Sizes.Data, l.DataStart())
	for i, item := range prog.Items {
		scope := l.ItemScopes[i]
		if scope == "" {
			scope = "-"
		}
		fmt.Fprintf(a.stdout, "0x%04x  %-4s  %-12s  %s\n", l.ItemAddresses[i], l.ItemSections[i], scope, item)
	}
	fmt.Fprintln(a.stdout, "; symbols")
	fmt.Fprint(a.stdout, l.Symbols.String())
}
