package disasm

import (
	"errors"
	"strings"
	"testing"

	"github.com/svr2kos2/sayo-asm/pkg/asm"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"no operands", []byte{0x55}, "RET"},
		{"mov8", []byte{0x6F, 0x04, 0x03}, "MOV8 R0, 3"},
		{"sign extended", []byte{0x8C, 0x04, 0xFF}, "MOV8SX R0, -1"},
		{"u32 little endian", []byte{0x71, 0x05, 0x78, 0x56, 0x34, 0x12}, "MOV32 R1, 305419896"},
		{"rgb888", []byte{0xE1, 0x56, 0x34, 0x12}, "LED_COL 0x123456"},
		{"global register", []byte{0x6F, 0x81, 0x01}, "MOV8 GL_1, 1"},
		{"unknown register", []byte{0x6F, 0x7E, 0x01}, "MOV8 ?0x7e, 1"},
		{"u8 and i8", []byte{0x21, 0x01, 0xFE}, "MO_XYZ 1, -2"},
		{"label big endian", []byte{0x54, 0x01, 0x20}, "CALL 0x0120"},
		{"trailing bytes ignored", []byte{0x55, 0x55}, "RET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode(tt.raw, 0x0C)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := in.String(); got != tt.want {
				t.Errorf("got %q; want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeTargets(t *testing.T) {
	in, err := Decode([]byte{0x03, 0xFA}, 0x13)
	if err != nil {
		t.Fatal(err)
	}
	if !in.HasTarget || in.Target != 0x0F {
		t.Errorf("SJMP target = %v 0x%x; want 0x0f", in.HasTarget, in.Target)
	}
	in, err = Decode([]byte{0x02, 0x00, 0x0C}, 0x20)
	if err != nil {
		t.Fatal(err)
	}
	if !in.HasTarget || in.Target != 0x0C {
		t.Errorf("JMP target = %v 0x%x; want 0x0c", in.HasTarget, in.Target)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"unknown opcode", []byte{0x0F}, ErrUnknownOpcode},
		{"short operand", []byte{0x6F, 0x04}, ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw, 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestDisassemble(t *testing.T) {
	src := `main:
    MOV8 R0, 3
.l:
    DJNZ R0, .l
    SJMP .l
    RET
    .data
    .byte 1, 2
`
	out, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	lines, err := Disassemble(out.MachineCode)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	text := strings.Join(lines, "\n")

	t.Run("summary", func(t *testing.T) {
		if lines[0] != "; entry 0x000c, text 10 bytes, data 2 bytes, version 1" {
			t.Errorf("summary = %q", lines[0])
		}
	})
	t.Run("instructions", func(t *testing.T) {
		for _, want := range []string{
			"main:",
			"$000C: 6F 04 03",
			"MOV8 R0, 3",
			"$000F: 52 04 00 0F",
			"DJNZ R0, 0x000f",
			"SJMP -6  ; -> 0x000f",
			"$0015: 55",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("missing %q in:\n%s", want, text)
			}
		}
	})
	t.Run("data", func(t *testing.T) {
		last := lines[len(lines)-1]
		if !strings.HasPrefix(last, "$0016: 01 02") || !strings.HasSuffix(last, ".byte 0x01, 0x02") {
			t.Errorf("data line = %q", last)
		}
	})
}

func TestDisassembleUnknownOpcodeInText(t *testing.T) {
	image := append(asm.GenerateHeader(12, 2), 0x0F, 0x55)
	lines, err := Disassemble(image)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Join(lines, "\n")
	if !strings.Contains(text, ".byte 0x0f  ; unknown opcode") || !strings.Contains(text, "$000D: 55") {
		t.Errorf("got:\n%s", text)
	}
}

func TestDisassembleErrors(t *testing.T) {
	if _, err := Disassemble([]byte{0x54}); !errors.Is(err, asm.ErrHeaderTooShort) {
		t.Errorf("short image: %v", err)
	}
	if _, err := Disassemble(asm.GenerateHeader(12, 4)); !errors.Is(err, ErrTruncated) {
		t.Errorf("text past end: %v", err)
	}
}

func TestDisassembleRaw(t *testing.T) {
	lines := DisassembleRaw([]byte{0x6F, 0x04, 0x01, 0x55}, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "$0000: 6F 04 01") || !strings.HasSuffix(lines[1], "RET") {
		t.Errorf("got %v", lines)
	}
}
