// Package ast defines the tree produced by the parser and consumed by the
// assembler and the semantic checker. The tree is immutable once built.
package ast

import (
	"fmt"
	"strings"

	"github.com/svr2kos2/sayo-asm/pkg/isa"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Program is the ordered list of items of one source file.
type Program struct {
	Items []Item
}

// Item is a Label, a Directive or an Instruction.
type Item interface {
	itemNode()
	Pos() Span
	String() string
}

// Label defines Name at the address of the next emitted byte.
//
//	main:
//	^^^^  Label{Name: "main"}
type Label struct {
	Name string
	Span Span
}

func (*Label) itemNode()        {}
func (l *Label) Pos() Span      { return l.Span }
func (l *Label) String() string { return l.Name + ":" }

// Instruction is one mnemonic with its operands in source order.
type Instruction struct {
	Mnemonic isa.Mnemonic
	Operands []Operand
	Span     Span
}

func (*Instruction) itemNode()   {}
func (i *Instruction) Pos() Span { return i.Span }
func (i *Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Mnemonic.String()
	}
	ops := make([]string, len(i.Operands))
	for n, op := range i.Operands {
		ops[n] = op.String()
	}
	return i.Mnemonic.String() + " " + strings.Join(ops, ", ")
}

// Operand is a RegisterOperand, an Immediate or a LabelRef.
type Operand interface {
	operandNode()
	Pos() Span
	String() string
}

// RegisterOperand names a VM register.
type RegisterOperand struct {
	Reg  isa.Register
	Span Span
}

func (*RegisterOperand) operandNode()     {}
func (r *RegisterOperand) Pos() Span      { return r.Span }
func (r *RegisterOperand) String() string { return r.Reg.String() }

// Immediate is a literal integer operand.
type Immediate struct {
	Value int64
	Span  Span
}

func (*Immediate) operandNode()     {}
func (i *Immediate) Pos() Span      { return i.Span }
func (i *Immediate) String() string { return fmt.Sprintf("%d", i.Value) }

// LabelRef is a symbolic reference resolved by the assembler.
type LabelRef struct {
	Name string
	Span Span
}

func (*LabelRef) operandNode()     {}
func (l *LabelRef) Pos() Span      { return l.Span }
func (l *LabelRef) String() string { return l.Name }

// DataValue is one element of a .byte/.word/.short/.long/.quad list.
type DataValue struct {
	Label string // non-empty for a symbolic value
	Value int64
}

// Imm returns an immediate data value.
func Imm(v int64) DataValue { return DataValue{Value: v} }

// Sym returns a symbolic data value.
func Sym(name string) DataValue { return DataValue{Label: name} }

// IsLabel reports whether the value must be resolved through the symbol table.
func (v DataValue) IsLabel() bool { return v.Label != "" }

func (v DataValue) String() string {
	if v.IsLabel() {
		return v.Label
	}
	return fmt.Sprintf("%d", v.Value)
}
