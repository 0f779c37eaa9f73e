package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/svr2kos2/sayo-asm/pkg/asm"
	"github.com/svr2kos2/sayo-asm/pkg/disasm"
)

func newDisasmCmd(a *app) *cobra.Command {
	var raw bool
	var base uint32
	cmd := &cobra.Command{
		Use:   "disasm FILE.bin",
		Short: "Decode an assembled image",
		Args:  a.exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return a.fail(err)
			}
			var lines []string
			if raw {
				lines = disasm.DisassembleRaw(data, base)
			} else if lines, err = disasm.Disassemble(data); err != nil {
				return a.fail(fmt.Errorf("%s: %w", args[0], err))
			}
			for _, l := range lines {
				fmt.Fprintln(a.stdout, l)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "input has no header; decode every byte as text")
	cmd.Flags().Uint32Var(&base, "base", asm.HeaderSize, "address of the first byte with --raw")
	return cmd
}
