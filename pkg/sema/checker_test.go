package sema

import (
	"reflect"
	"strings"
	"testing"

	"github.com/svr2kos2/sayo-asm/pkg/parser"
)

func check(t *testing.T, src string) []Diagnostic {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Check(src, prog)
}

func categories(diags []Diagnostic) []Category {
	var out []Category
	for _, d := range diags {
		out = append(out, d.Category)
	}
	return out
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Category
	}{
		{"clean", "main:\n    MOV8 R0, 1\n.l:\n    DJNZ R0, .l\n    RET\n", nil},
		{"write to ZERO", "main:\n    MOV8 ZERO, 5\n", []Category{WriteToReadOnlyRegister}},
		{"write to KEY_IO", "main:\n    INC KEY_IO\n", []Category{WriteToReadOnlyRegister}},
		{"read from ZERO is fine", "main:\n    MOV R0, ZERO\n", nil},
		{"u8 out of range", "main:\n    SLEEP 300\n", []Category{ImmediateOutOfRange}},
		{"i8 out of range", "main:\n    MO_XYZ 0, 200\n", []Category{ImmediateOutOfRange}},
		{"rgb888 out of range", "main:\n    LED_COL 0x1000000\n", []Category{ImmediateOutOfRange}},
		{"address out of range", "main:\n    JMP 70000\n", []Category{ImmediateOutOfRange}},
		{"too many operands", "main:\n    RET 1\n", []Category{OperandCountMismatch}},
		{"too few operands", "main:\n    MOV8 R0\n", []Category{OperandCountMismatch}},
		{"immediate in register slot", "main:\n    INC 1\n", []Category{InvalidOperandType}},
		{"register in immediate slot", "main:\n    SLEEP R0\n", []Category{InvalidOperandType}},
		{"label in register slot", "main:\n    INC main\n", []Category{InvalidOperandType}},
		{"undefined", "main:\n    JMP nowhere\n", []Category{UndefinedLabel}},
		{"undefined data label", "main:\n    RET\n    .data\n    .word nowhere\n", []Category{UndefinedLabel}},
		{"duplicate global", "main:\nmain:\n    RET\n", []Category{DuplicateLabel}},
		{"duplicate local", "main:\n.a:\n.a:\n    RET\n", []Category{DuplicateLabel}},
		{"same local in two scopes", "f:\n.a:\n    JMP .a\nmain:\n.a:\n    JMP .a\n", nil},
		{"local from another scope", "f:\n.a:\n    RET\nmain:\n    JMP .a\n", []Category{UndefinedLabel}},
		{"local before global", ".a:\n    RET\nmain:\n    RET\n", []Category{LocalLabelWithoutGlobal}},
		{"local reference before global", "    JMP .a\nmain:\n.a:\n    RET\n", []Category{LocalLabelWithoutGlobal}},
		{"file static before global", ".L.s:\n    .ascii \"x\"\nmain:\n    MOV16 R0, .L.s\n", nil},
		{"forward reference", "main:\n    CALL later\n    RET\nlater:\n    RET\n", nil},
		{"align zero", "main:\n    .align 0\n", []Category{InvalidAlignment}},
		{"metadata is not mixing", "main:\n    .globl main\n    RET\n    .size main, 1\n", nil},
		{"mixed", "main:\n    RET\n    .byte 1\n    .byte 2\n    NOP\n", []Category{MixedDirectivesAndInstructions}},
		{"many findings", "main:\n    MOV8 ZERO, 300\n    JMP x\n", []Category{UndefinedLabel, WriteToReadOnlyRegister, ImmediateOutOfRange}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categories(check(t, tt.src))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("categories = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCheckSeverityAndPosition(t *testing.T) {
	diags := check(t, "main:\n    RET\n    .byte 1\n    MOV8 ZERO, 1\n")
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics: %v", len(diags), diags)
	}
	mixed, ro := diags[0], diags[1]
	if mixed.Severity != SeverityWarning || mixed.Line != 2 {
		t.Errorf("mixed = %+v", mixed)
	}
	if ro.Severity != SeverityError || ro.Line != 4 || ro.Column != 10 {
		t.Errorf("read-only = %+v", ro)
	}
	if !HasErrors(diags) || HasErrors(diags[:1]) {
		t.Errorf("HasErrors mismatch")
	}
}

func TestCheckUndefinedHint(t *testing.T) {
	diags := check(t, "main:\n.loop:\n    JMP .lop\n")
	if len(diags) != 1 {
		t.Fatalf("got %v", diags)
	}
	if diags[0].Hint != "did you mean .loop?" {
		t.Errorf("Hint = %q", diags[0].Hint)
	}
	if s := diags[0].String(); !strings.HasPrefix(s, "line 3, column 9: error: undefined label '.lop'") {
		t.Errorf("String() = %q", s)
	}
}
