package asm

import (
	"encoding/binary"

	"github.com/golang/glog"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/isa"
)

// Encoder turns a laid-out program into bytes. It only reads the Layout.
type Encoder struct {
	layout *Layout
}

func NewEncoder(layout *Layout) *Encoder {
	return &Encoder{layout: layout}
}

// Encode produces a complete image: header, text, data.
func (e *Encoder) Encode(prog *ast.Program) ([]byte, error) {
	img, _, err := e.encodeImage(prog, true)
	return img, err
}

// EncodeRaw produces text followed by data, with no header and no main requirement.
func (e *Encoder) EncodeRaw(prog *ast.Program) ([]byte, error) {
	img, _, err := e.encodeImage(prog, false)
	return img, err
}

// encodeImage also returns the bytes of every item, indexed like prog.Items.
func (e *Encoder) encodeImage(prog *ast.Program, withHeader bool) ([]byte, [][]byte, error) {
	var hdr []byte
	if withHeader {
		main, ok := e.layout.Symbols.Resolve("main")
		if !ok {
			return nil, nil, &EncodeError{Kind: ErrNoMainLabel, Item: -1, Label: "main"}
		}
		if e.layout.Sizes.Text > 0xFFFF {
			return nil, nil, &EncodeError{Kind: ErrTextSectionTooLarge, Item: -1, Value: int64(e.layout.Sizes.Text)}
		}
		if main > 0xFFFF {
			return nil, nil, &EncodeError{Kind: ErrImmediateOutOfRange, Item: -1, Label: "main", Value: int64(main), Bits: 16}
		}
		hdr = GenerateHeader(uint16(main), uint16(e.layout.Sizes.Text))
	}

	text := make([]byte, e.layout.Sizes.Text)
	data := make([]byte, e.layout.Sizes.Data)
	items := make([][]byte, len(prog.Items))
	for i := range prog.Items {
		b, err := e.EncodeItem(prog, i)
		if err != nil {
			return nil, nil, err
		}
		items[i] = b
		if len(b) == 0 {
			continue
		}
		addr := e.layout.ItemAddresses[i]
		if e.layout.ItemSections[i] == SectionData {
			copy(data[addr-e.layout.DataStart():], b)
		} else {
			copy(text[addr-HeaderSize:], b)
		}
	}

	out := make([]byte, 0, len(hdr)+len(text)+len(data))
	out = append(out, hdr...)
	out = append(out, text...)
	out = append(out, data...)
	glog.V(1).Infof("encode: %d bytes (header %d, text %d, data %d)", len(out), len(hdr), len(text), len(data))
	return out, items, nil
}

// EncodeItem returns the bytes item i emits in place. Labels and
// non-data directives emit nothing.
func (e *Encoder) EncodeItem(prog *ast.Program, i int) ([]byte, error) {
	switch it := prog.Items[i].(type) {
	case *ast.Instruction:
		return e.encodeInstruction(i, it)
	case *ast.Directive:
		if it.IsData() {
			return e.encodeData(i, it)
		}
	}
	return nil, nil
}

func (e *Encoder) encodeInstruction(idx int, inst *ast.Instruction) ([]byte, error) {
	desc := inst.Mnemonic.Descriptor()
	if len(inst.Operands) != len(desc.Operands) {
		return nil, &EncodeError{Kind: ErrOperandCountMismatch, Item: idx, Expected: len(desc.Operands), Found: len(inst.Operands)}
	}

	out := make([]byte, 0, desc.Length)
	out = append(out, desc.Opcode)
	for n, slot := range desc.Operands {
		op := inst.Operands[n]
		if slot.Type == isa.TypeNone {
			continue
		}
		if slot.Type == isa.TypeRegister {
			reg, ok := op.(*ast.RegisterOperand)
			if !ok {
				return nil, &EncodeError{Kind: ErrInvalidOperandType, Item: idx, Operand: n}
			}
			out = append(out, reg.Reg.Index())
			continue
		}

		v, label, err := e.operandValue(idx, n, op)
		if err != nil {
			return nil, err
		}
		outOfRange := func(bits int) error {
			return &EncodeError{Kind: ErrImmediateOutOfRange, Item: idx, Operand: n, Label: label, Value: v, Bits: bits}
		}

		switch {
		case inst.Mnemonic == isa.OpSJMP && label != "":
			next := int64(e.layout.ItemAddresses[idx]) + int64(desc.Length)
			off := v - next
			if off < -128 || off > 127 {
				return nil, &EncodeError{Kind: ErrPcRelOffsetOutOfRange, Item: idx, Operand: n, Label: label, Value: off, Bits: 8}
			}
			out = append(out, byte(int8(off)))
		case slot.Type == isa.TypeLabel:
			if v < 0 || v > 0xFFFF {
				return nil, outOfRange(16)
			}
			out = binary.BigEndian.AppendUint16(out, uint16(v))
		default:
			if !slot.Type.Fits(v) {
				return nil, outOfRange(slot.Type.Bits())
			}
			out = appendLE(out, uint64(v), slot.Type.Width())
		}
	}
	return out, nil
}

// operandValue yields the integer of an immediate or label operand. label
// is set when the value came from the symbol table.
func (e *Encoder) operandValue(idx, n int, op ast.Operand) (v int64, label string, err error) {
	switch o := op.(type) {
	case *ast.Immediate:
		return o.Value, "", nil
	case *ast.LabelRef:
		addr, err := e.resolve(idx, o.Name)
		if err != nil {
			err.(*EncodeError).Operand = n
			return 0, o.Name, err
		}
		return int64(addr), o.Name, nil
	}
	return 0, "", &EncodeError{Kind: ErrInvalidOperandType, Item: idx, Operand: n}
}

// resolve looks name up in the scope that was active when item idx was laid out.
func (e *Encoder) resolve(idx int, name string) (uint32, error) {
	addr, ok := e.layout.Symbols.ResolveWithScope(name, e.layout.ItemScopes[idx])
	if !ok {
		return 0, &EncodeError{Kind: ErrUndefinedLabel, Item: idx, Label: name}
	}
	return addr, nil
}

func (e *Encoder) encodeData(idx int, d *ast.Directive) ([]byte, error) {
	switch d.Kind {
	case ast.DirAscii:
		return []byte(d.Str), nil
	case ast.DirAsciz:
		return append([]byte(d.Str), 0), nil
	case ast.DirZero, ast.DirSkip:
		return make([]byte, d.DataSize()), nil
	}

	width := d.ElementWidth()
	out := make([]byte, 0, len(d.Values)*width)
	for _, val := range d.Values {
		v := val.Value
		if val.IsLabel() {
			addr, err := e.resolve(idx, val.Label)
			if err != nil {
				return nil, err
			}
			v = int64(addr)
		}
		out = appendLE(out, uint64(v), width)
	}
	return out, nil
}

// appendLE appends the low width bytes of v, least significant first.
func appendLE(b []byte, v uint64, width int) []byte {
	for i := 0; i < width; i++ {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}
