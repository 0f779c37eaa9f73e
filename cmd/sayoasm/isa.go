package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svr2kos2/sayo-asm/pkg/isa"
	"github.com/svr2kos2/sayo-asm/pkg/utils"
)

func newIsaCmd(a *app) *cobra.Command {
	var registers bool
	cmd := &cobra.Command{
		Use:   "isa [MNEMONIC...]",
		Short: "Describe instructions, or registers with --registers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if registers {
				a.printRegisters()
				return nil
			}
			ms := isa.Mnemonics()
			if len(args) > 0 {
				ms = nil
				for _, name := range args {
					m, ok := isa.Lookup(name)
					if !ok {
						err := fmt.Errorf("unknown mnemonic %q", name)
						if s := utils.Suggest(strings.ToUpper(name), isa.Names(), 1); len(s) > 0 {
							err = fmt.Errorf("%w (did you mean %s?)", err, s[0])
						}
						return a.fail(err)
					}
					ms = append(ms, m)
				}
			}
			for _, m := range ms {
				d := m.Descriptor()
				ops := make([]string, len(d.Operands))
				for i, op := range d.Operands {
					ops[i] = op.String()
				}
				fmt.Fprintf(a.stdout, "0x%02X  %-20s %d  %-34s %s\n", d.Opcode, d.Name, d.Length, strings.Join(ops, ", "), d.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&registers, "registers", false, "list the register table")
	return cmd
}

func (a *app) printRegisters() {
	for _, r := range isa.Registers() {
		d := r.Desc()
		fmt.Fprintf(a.stdout, "0x%02X  %-14s %2d  %-10s %s\n", d.Index, d.Name, d.Width, d.Access, d.Description)
	}
	gl := isa.GL(0).Desc()
	fmt.Fprintf(a.stdout, "0x%02X  %-14s %2d  %-10s %s\n", gl.Index, fmt.Sprintf("GL_0..GL_%d", isa.GlCount-1), gl.Width, gl.Access, gl.Description)
}
