package asm

import (
	"errors"
	"fmt"
)

var (
	ErrLocalLabelWithoutGlobal = errors.New("local label without a preceding global label")
	ErrDuplicateLabel          = errors.New("duplicate label")
	ErrInvalidAlignment        = errors.New("invalid alignment")
	ErrOrgBackwards            = errors.New("cannot move origin backward")

	ErrUndefinedLabel        = errors.New("undefined label")
	ErrImmediateOutOfRange   = errors.New("immediate out of range")
	ErrOperandCountMismatch  = errors.New("operand count mismatch")
	ErrInvalidOperandType    = errors.New("invalid operand type")
	ErrPcRelOffsetOutOfRange = errors.New("pc-relative offset out of range")
	ErrNoMainLabel           = errors.New("no main label")
	ErrTextSectionTooLarge   = errors.New("text section too large")

	ErrHeaderTooShort     = errors.New("header too short")
	ErrBadMagic           = errors.New("bad magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// LayoutError aborts the layout pass. Item is the index of the offending item.
type LayoutError struct {
	Kind  error
	Item  int
	Label string
	Value int64
}

func (e *LayoutError) Error() string {
	switch e.Kind {
	case ErrLocalLabelWithoutGlobal, ErrDuplicateLabel:
		return fmt.Sprintf("%v '%s'", e.Kind, e.Label)
	case ErrInvalidAlignment:
		return fmt.Sprintf("%v %d", e.Kind, e.Value)
	case ErrOrgBackwards:
		return fmt.Sprintf("%v to 0x%04x", e.Kind, e.Value)
	case ErrImmediateOutOfRange:
		return fmt.Sprintf("%v: address 0x%x exceeds the 32-bit address space", e.Kind, e.Value)
	}
	return e.Kind.Error()
}

func (e *LayoutError) Unwrap() error { return e.Kind }

// EncodeError aborts the encoding pass. Item is -1 for whole-image
// failures such as a missing main label.
type EncodeError struct {
	Kind     error
	Item     int
	Operand  int
	Label    string
	Value    int64
	Bits     int
	Expected int
	Found    int
}

func (e *EncodeError) Error() string {
	switch e.Kind {
	case ErrUndefinedLabel:
		return fmt.Sprintf("%v '%s'", e.Kind, e.Label)
	case ErrImmediateOutOfRange:
		if e.Label != "" {
			return fmt.Sprintf("%v: '%s' = %d does not fit in %d bits", e.Kind, e.Label, e.Value, e.Bits)
		}
		return fmt.Sprintf("%v: %d does not fit in %d bits", e.Kind, e.Value, e.Bits)
	case ErrPcRelOffsetOutOfRange:
		return fmt.Sprintf("%v: '%s' is %d bytes away", e.Kind, e.Label, e.Value)
	case ErrOperandCountMismatch:
		return fmt.Sprintf("%v: expected %d, found %d", e.Kind, e.Expected, e.Found)
	case ErrInvalidOperandType:
		return fmt.Sprintf("%v for operand %d", e.Kind, e.Operand+1)
	case ErrTextSectionTooLarge:
		return fmt.Sprintf("%v: %d bytes", e.Kind, e.Value)
	}
	return e.Kind.Error()
}

func (e *EncodeError) Unwrap() error { return e.Kind }
