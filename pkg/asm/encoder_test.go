package asm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/isa"
)

func inst(m isa.Mnemonic, ops ...ast.Operand) *ast.Instruction {
	return &ast.Instruction{Mnemonic: m, Operands: ops}
}

func reg(k isa.RegKind) *ast.RegisterOperand { return &ast.RegisterOperand{Reg: isa.Reg(k)} }
func imm(v int64) *ast.Immediate            { return &ast.Immediate{Value: v} }
func ref(name string) *ast.LabelRef         { return &ast.LabelRef{Name: name} }

func TestEncodeItem(t *testing.T) {
	tests := []struct {
		name    string
		item    ast.Item
		want    []byte
		wantErr error
	}{
		{"no operands", inst(isa.OpNOP), []byte{0x01}, nil},
		{"register only", inst(isa.OpINC, reg(isa.RegA)), []byte{0x5F, 0x10}, nil},
		{"register pair", inst(isa.OpMOV, reg(isa.RegR0), &ast.RegisterOperand{Reg: isa.GL(63)}), []byte{0x6E, 0x04, 0xBF}, nil},
		{"u16", inst(isa.OpSLEEP_U16, imm(0xABCD)), []byte{0x0D, 0xCD, 0xAB}, nil},
		{"u8 and i8", inst(isa.OpMO_XYZ, imm(1), imm(-1)), []byte{0x21, 0x01, 0xFF}, nil},
		{"i16 pair", inst(isa.OpTB_XY, imm(-32768), imm(32767)), []byte{0x25, 0x00, 0x80, 0xFF, 0x7F}, nil},
		{"u32 max", inst(isa.OpMOV32, reg(isa.RegR1), imm(0xFFFFFFFF)), []byte{0x71, 0x05, 0xFF, 0xFF, 0xFF, 0xFF}, nil},
		{"label", inst(isa.OpCALL, ref("main")), []byte{0x54, 0x00, 0x0C}, nil},
		{"label slot takes an immediate", inst(isa.OpJMP, imm(0x0102)), []byte{0x02, 0x01, 0x02}, nil},
		{"label in u16 slot", inst(isa.OpMOV16, reg(isa.RegR0), ref("main")), []byte{0x70, 0x04, 0x0C, 0x00}, nil},
		{"data byte truncates", &ast.Directive{Kind: ast.DirByte, Values: []ast.DataValue{ast.Imm(0x1FF), ast.Imm(-1)}}, []byte{0xFF, 0xFF}, nil},
		{"data short label", &ast.Directive{Kind: ast.DirShort, Values: []ast.DataValue{ast.Sym("main")}}, []byte{0x0C, 0x00}, nil},
		{"ascii", &ast.Directive{Kind: ast.DirAscii, Str: "ab"}, []byte{'a', 'b'}, nil},
		{"skip", &ast.Directive{Kind: ast.DirSkip, N: 3}, []byte{0, 0, 0}, nil},
		{"label emits nothing", &ast.Label{Name: "x"}, nil, nil},
		{"align emits nothing", &ast.Directive{Kind: ast.DirAlign, N: 4}, nil, nil},

		{"i8 too small", inst(isa.OpMO_XYZ, imm(0), imm(-129)), nil, ErrImmediateOutOfRange},
		{"i16 too large", inst(isa.OpTB_XY, imm(0), imm(32768)), nil, ErrImmediateOutOfRange},
		{"u32 too large", inst(isa.OpMOV32, reg(isa.RegR1), imm(0x100000000)), nil, ErrImmediateOutOfRange},
		{"label slot negative", inst(isa.OpJMP, imm(-1)), nil, ErrImmediateOutOfRange},
		{"label slot too large", inst(isa.OpJMP, imm(0x10000)), nil, ErrImmediateOutOfRange},
		{"register in label slot", inst(isa.OpJMP, reg(isa.RegR0)), nil, ErrInvalidOperandType},
		{"undefined data label", &ast.Directive{Kind: ast.DirLong, Values: []ast.DataValue{ast.Sym("nope")}}, nil, ErrUndefinedLabel},
		{"count mismatch", inst(isa.OpMOV8, reg(isa.RegR0)), nil, ErrOperandCountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := &ast.Program{Items: []ast.Item{&ast.Label{Name: "main"}, tt.item}}
			l, err := ComputeLayout(prog)
			if err != nil {
				t.Fatalf("ComputeLayout() error = %v", err)
			}
			got, err := NewEncoder(l).EncodeItem(prog, 1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EncodeItem() error = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EncodeItem() unexpected error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeItem() = % x; want % x", got, tt.want)
			}
		})
	}
}

func TestEncodeFrozenScope(t *testing.T) {
	// The .word under f2 must see f2's .x even though encoding happens after
	// every label, including main, has been defined.
	src := `f1:
.x:
    NOP
f2:
.x:
    NOP
    .data
    .word .x
    .text
main:
    RET
`
	prog := mustParse(t, src)
	l, err := ComputeLayout(prog)
	if err != nil {
		t.Fatal(err)
	}
	img, err := NewEncoder(l).EncodeRaw(prog)
	if err != nil {
		t.Fatalf("EncodeRaw() error = %v", err)
	}
	want := []byte{0x01, 0x01, 0x55, 0x0D, 0x00}
	if !bytes.Equal(img, want) {
		t.Errorf("EncodeRaw() = % x; want % x", img, want)
	}
}

func TestEncodeNoMainWritesNothing(t *testing.T) {
	prog := &ast.Program{Items: []ast.Item{inst(isa.OpRET)}}
	l, err := ComputeLayout(prog)
	if err != nil {
		t.Fatal(err)
	}
	img, err := NewEncoder(l).Encode(prog)
	if !errors.Is(err, ErrNoMainLabel) {
		t.Fatalf("Encode() error = %v; want %v", err, ErrNoMainLabel)
	}
	if img != nil {
		t.Errorf("Encode() = % x; want nil", img)
	}
	raw, err := NewEncoder(l).EncodeRaw(prog)
	if err != nil || !bytes.Equal(raw, []byte{0x55}) {
		t.Errorf("EncodeRaw() = % x, %v", raw, err)
	}
}

func TestEncodeOffsetsMatchLabels(t *testing.T) {
	src := `main:
    NOP
    .p2align 3
aligned:
    RET
    .data
    .byte 1
    .align 4
word:
    .word 0xBEEF
`
	prog := mustParse(t, src)
	l, err := ComputeLayout(prog)
	if err != nil {
		t.Fatal(err)
	}
	img, err := NewEncoder(l).Encode(prog)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		label string
		want  []byte
	}{
		{"aligned", []byte{0x55}},
		{"word", []byte{0xEF, 0xBE}},
	} {
		addr, _ := l.Symbols.Resolve(tc.label)
		if got := img[addr : int(addr)+len(tc.want)]; !bytes.Equal(got, tc.want) {
			t.Errorf("image at %s (0x%x) = % x; want % x", tc.label, addr, got, tc.want)
		}
	}
}
