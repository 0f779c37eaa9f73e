// Package isa holds the static instruction-set and register tables of the
// Sayo script VM. Nothing in here has state; both tables are total over
// their enumerations.
package isa

import "fmt"

// OperandType is the encoding class of one instruction operand slot.
type OperandType int

const (
	TypeNone OperandType = iota
	TypeRegister
	TypeLabel
	TypeU8
	TypeI8
	TypeU16
	TypeI16
	TypeU32
	TypeI32
	TypeRgb888
)

var operandTypeNames = [...]string{
	TypeNone:     "None",
	TypeRegister: "Register",
	TypeLabel:    "Label",
	TypeU8:       "U8",
	TypeI8:       "I8",
	TypeU16:      "U16",
	TypeI16:      "I16",
	TypeU32:      "U32",
	TypeI32:      "I32",
	TypeRgb888:   "Rgb888",
}

func (t OperandType) String() string {
	if int(t) >= 0 && int(t) < len(operandTypeNames) {
		return operandTypeNames[t]
	}
	return fmt.Sprintf("OperandType(%d)", int(t))
}

// Width is the number of bytes an operand of this type occupies after the opcode.
func (t OperandType) Width() int {
	switch t {
	case TypeRegister, TypeU8, TypeI8:
		return 1
	case TypeLabel, TypeU16, TypeI16:
		return 2
	case TypeRgb888:
		return 3
	case TypeU32, TypeI32:
		return 4
	default:
		return 0
	}
}

// Bits is the value width used for range checks. Register and None slots report 0.
func (t OperandType) Bits() int {
	switch t {
	case TypeU8, TypeI8:
		return 8
	case TypeLabel, TypeU16, TypeI16:
		return 16
	case TypeRgb888:
		return 24
	case TypeU32, TypeI32:
		return 32
	default:
		return 0
	}
}

// Signed reports whether immediates for this slot are two's complement.
func (t OperandType) Signed() bool {
	return t == TypeI8 || t == TypeI16 || t == TypeI32
}

// Range returns the inclusive bounds an immediate must fall in for this slot.
func (t OperandType) Range() (lo, hi int64) {
	bits := t.Bits()
	if bits == 0 {
		return 0, 0
	}
	if t.Signed() {
		return -(int64(1) << (bits - 1)), int64(1)<<(bits-1) - 1
	}
	return 0, int64(1)<<bits - 1
}

// Fits reports whether v is representable in the slot.
func (t OperandType) Fits(v int64) bool {
	lo, hi := t.Range()
	return v >= lo && v <= hi
}

// OperandDesc describes one operand slot of an instruction.
type OperandDesc struct {
	Type    OperandType
	IsWrite bool
}

func (d OperandDesc) String() string {
	if d.IsWrite {
		return "w" + d.Type.String()
	}
	return d.Type.String()
}

func r(t OperandType) OperandDesc { return OperandDesc{Type: t} }
func w(t OperandType) OperandDesc { return OperandDesc{Type: t, IsWrite: true} }
