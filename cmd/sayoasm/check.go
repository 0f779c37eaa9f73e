package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svr2kos2/sayo-asm/pkg/sema"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE.s",
		Short: "Report every semantic problem in FILE without assembling it",
		Args:  a.exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, prog, err := a.load(args[0])
			if err != nil {
				return err
			}
			diags := sema.Check(src, prog)
			a.printDiagnostics(args[0], diags)
			if sema.HasErrors(diags) {
				return errCheckFailed
			}
			fmt.Fprintf(a.stdout, "%s: ok (%d warning(s))\n", args[0], len(diags))
			return nil
		},
	}
}
