// Package disasm decodes Sayo images back into readable assembly.
package disasm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/svr2kos2/sayo-asm/pkg/asm"
	"github.com/svr2kos2/sayo-asm/pkg/isa"
)

var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrTruncated     = errors.New("truncated instruction")
)

var (
	byOpcode   = isa.ByOpcode()
	regByIndex = func() map[byte]isa.Register {
		m := make(map[byte]isa.Register)
		for _, r := range isa.Registers() {
			if _, dup := m[r.Index()]; !dup {
				m[r.Index()] = r
			}
		}
		return m
	}()
)

// Instruction is one decoded instruction.
type Instruction struct {
	Addr      uint32
	Raw       []byte
	Mnemonic  isa.Mnemonic
	Operands  []string
	Target    uint32 // branch destination, valid when HasTarget
	HasTarget bool
}

func (in Instruction) String() string {
	if len(in.Operands) == 0 {
		return in.Mnemonic.String()
	}
	return in.Mnemonic.String() + " " + strings.Join(in.Operands, ", ")
}

// RegisterName names the register with the given index byte.
func RegisterName(idx byte) string {
	if r, ok := regByIndex[idx]; ok {
		return r.String()
	}
	if n := int(idx) - 0x80; n >= 0 && n < isa.GlCount {
		return isa.GL(n).String()
	}
	return fmt.Sprintf("?0x%02x", idx)
}

// Decode decodes the instruction at the start of data, which sits at addr.
func Decode(data []byte, addr uint32) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, ErrTruncated
	}
	m, ok := byOpcode[data[0]]
	if !ok {
		return Instruction{}, fmt.Errorf("%w 0x%02x at 0x%04x", ErrUnknownOpcode, data[0], addr)
	}
	desc := m.Descriptor()
	if len(data) < desc.Length {
		return Instruction{}, fmt.Errorf("%w: %s needs %d bytes at 0x%04x", ErrTruncated, desc.Name, desc.Length, addr)
	}

	in := Instruction{Addr: addr, Raw: data[:desc.Length], Mnemonic: m}
	p := 1
	for _, slot := range desc.Operands {
		b := data[p : p+slot.Type.Width()]
		p += len(b)
		switch slot.Type {
		case isa.TypeRegister:
			in.Operands = append(in.Operands, RegisterName(b[0]))
		case isa.TypeLabel:
			in.Target = uint32(binary.BigEndian.Uint16(b))
			in.HasTarget = true
			in.Operands = append(in.Operands, fmt.Sprintf("0x%04x", in.Target))
		case isa.TypeI8:
			v := int8(b[0])
			if m == isa.OpSJMP {
				in.Target = uint32(int64(addr) + int64(desc.Length) + int64(v))
				in.HasTarget = true
			}
			in.Operands = append(in.Operands, fmt.Sprintf("%d", v))
		case isa.TypeU8:
			in.Operands = append(in.Operands, fmt.Sprintf("%d", b[0]))
		case isa.TypeU16:
			in.Operands = append(in.Operands, fmt.Sprintf("%d", binary.LittleEndian.Uint16(b)))
		case isa.TypeI16:
			in.Operands = append(in.Operands, fmt.Sprintf("%d", int16(binary.LittleEndian.Uint16(b))))
		case isa.TypeU32:
			in.Operands = append(in.Operands, fmt.Sprintf("%d", binary.LittleEndian.Uint32(b)))
		case isa.TypeI32:
			in.Operands = append(in.Operands, fmt.Sprintf("%d", int32(binary.LittleEndian.Uint32(b))))
		case isa.TypeRgb888:
			rgb := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
			in.Operands = append(in.Operands, fmt.Sprintf("0x%06x", rgb))
		}
	}
	return in, nil
}

// Disassemble decodes a complete image: header, text, then data as bytes.
func Disassemble(image []byte) ([]string, error) {
	h, err := asm.ParseHeader(image)
	if err != nil {
		return nil, err
	}
	if h.DataStart() > len(image) {
		return nil, fmt.Errorf("%w: text section of %d bytes runs past the %d-byte image", ErrTruncated, h.TextSize, len(image))
	}

	lines := []string{
		fmt.Sprintf("; entry 0x%04x, text %d bytes, data %d bytes, version %d",
			h.MainAddress, h.TextSize, len(image)-h.DataStart(), h.Version),
		"    .text",
	}
	lines = append(lines, disassembleText(image[h.TextStart():h.DataStart()], uint32(h.TextStart()), uint32(h.MainAddress))...)
	if h.DataStart() < len(image) {
		lines = append(lines, "    .data")
		lines = append(lines, dumpBytes(image[h.DataStart():], uint32(h.DataStart()))...)
	}
	return lines, nil
}

// DisassembleRaw decodes headerless code placed at base.
func DisassembleRaw(code []byte, base uint32) []string {
	return disassembleText(code, base, 0xFFFFFFFF)
}

func disassembleText(code []byte, base, entry uint32) []string {
	var lines []string
	for off := 0; off < len(code); {
		addr := base + uint32(off)
		if addr == entry {
			lines = append(lines, "main:")
		}
		in, err := Decode(code[off:], addr)
		if err != nil {
			lines = append(lines, formatLine(addr, code[off:off+1], fmt.Sprintf(".byte 0x%02x", code[off]), "; "+err.Error()))
			off++
			continue
		}
		comment := ""
		if in.Mnemonic == isa.OpSJMP {
			comment = fmt.Sprintf("; -> 0x%04x", in.Target)
		}
		lines = append(lines, formatLine(addr, in.Raw, in.String(), comment))
		off += len(in.Raw)
	}
	return lines
}

func dumpBytes(data []byte, base uint32) []string {
	var lines []string
	for off := 0; off < len(data); off += 8 {
		end := min(off+8, len(data))
		vals := make([]string, 0, end-off)
		for _, b := range data[off:end] {
			vals = append(vals, fmt.Sprintf("0x%02x", b))
		}
		lines = append(lines, formatLine(base+uint32(off), data[off:end], ".byte "+strings.Join(vals, ", "), ""))
	}
	return lines
}

func formatLine(addr uint32, raw []byte, text, comment string) string {
	hex := make([]string, len(raw))
	for i, b := range raw {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	line := fmt.Sprintf("$%04X: %-23s    %s", addr, strings.Join(hex, " "), text)
	if comment != "" {
		line += "  " + comment
	}
	return line
}
