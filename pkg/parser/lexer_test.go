package parser

import (
	"reflect"
	"strings"
	"testing"
)

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexTokenTypes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenType
	}{
		{"label and instruction", "main: RET", []TokenType{IDENT, COLON, IDENT, EOF}},
		{"operands", "MOV8 R0, 0x10", []TokenType{IDENT, IDENT, COMMA, INTEGER, EOF}},
		{"directive", ".byte 1, 2", []TokenType{DIRECTIVE, INTEGER, COMMA, INTEGER, EOF}},
		{"local label is not a directive", ".loop:", []TokenType{IDENT, COLON, EOF}},
		{"file static label", ".L.str.1:", []TokenType{IDENT, COLON, EOF}},
		{"star register", "MOV *R0_16b, R1", []TokenType{IDENT, IDENT, COMMA, IDENT, EOF}},
		{"semicolon comment", "NOP ; c", []TokenType{IDENT, EOF}},
		{"hash comment", "# whole line\nNOP", []TokenType{NEWLINE, IDENT, EOF}},
		{"slash comment", "NOP // c", []TokenType{IDENT, EOF}},
		{"string", `.asciz "hi"`, []TokenType{DIRECTIVE, STRING, EOF}},
		{"punctuation", ".size f, .Lend-f", []TokenType{DIRECTIVE, IDENT, COMMA, IDENT, PUNCT, IDENT, EOF}},
		{"newlines", "a:\n\nb:", []TokenType{IDENT, COLON, NEWLINE, NEWLINE, IDENT, COLON, EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.src)
			if err != nil {
				t.Fatalf("Lex() error = %v", err)
			}
			if got := types(toks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lex(%q) types = %v; want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestLexIntegers(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"-42", -42},
		{"0x1F", 31},
		{"0xff", 255},
		{"0b1010", 10},
		{"0o17", 15},
		{"-0x80", -128},
		{"010", 10},
		{"09", 9},
		{"-0", 0},
		{"0X1F", 31},
		{"0B11", 3},
		{"0O17", 15},
		{"9223372036854775807", 9223372036854775807},
	}
	for _, tc := range tests {
		toks, err := Lex(tc.src)
		if err != nil {
			t.Errorf("Lex(%q) error = %v", tc.src, err)
			continue
		}
		if toks[0].Type != INTEGER || toks[0].Value != tc.want {
			t.Errorf("Lex(%q) = %v %d; want INTEGER %d", tc.src, toks[0].Type, toks[0].Value, tc.want)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"bad digits", "MOV8 R0, 12ab", "invalid integer literal"},
		{"bare hex prefix", "MOV8 R0, 0x", "invalid integer literal"},
		{"bad hex digits", "MOV8 R0, 0xZZ", "invalid integer literal"},
		{"unterminated", `.ascii "abc`, "unterminated string"},
		{"newline in string", ".ascii \"ab\ncd\"", "unterminated string"},
		{"octal too large", `.ascii "\777"`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.src)
			if err == nil {
				t.Fatalf("Lex(%q) expected error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q; want it to contain %q", err, tt.wantMsg)
			}
			if _, ok := err.(*Error); !ok {
				t.Errorf("error type = %T; want *Error", err)
			}
		})
	}
}

func TestLexStringEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"a\nb"`, "a\nb"},
		{`"\t\r"`, "\t\r"},
		{`"\"q\""`, `"q"`},
		{`"\\"`, `\`},
		{`"\e[0m"`, "\x1b[0m"},
		{`"\0"`, "\x00"},
		{`"\101\102"`, "AB"},
		{`"\377"`, "\xff"},
		{`"\q"`, `\q`},
		{`"é"`, "é"},
	}
	for _, tc := range tests {
		toks, err := Lex(tc.src)
		if err != nil {
			t.Errorf("Lex(%s) error = %v", tc.src, err)
			continue
		}
		if toks[0].Lexeme != tc.want {
			t.Errorf("Lex(%s) = %q; want %q", tc.src, toks[0].Lexeme, tc.want)
		}
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := Lex("main:\n  MOV8 R0, 1")
	if err != nil {
		t.Fatal(err)
	}
	mov := toks[3]
	if mov.Lexeme != "MOV8" || mov.Line != 2 || mov.Col != 3 || mov.Start != 8 || mov.End != 12 {
		t.Errorf("MOV8 token = %+v", mov)
	}
	one := toks[6]
	if one.Value != 1 || one.Col != 12 {
		t.Errorf("immediate token = %+v", one)
	}
}

func TestLexInvalidUTF8Offsets(t *testing.T) {
	src := "\xff\xfe MOV8 R0, 0"
	toks, err := Lex(src)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Start != 0 || toks[0].End != 1 || toks[1].Start != 1 || toks[1].End != 2 {
		t.Errorf("invalid bytes = %+v %+v; want one byte each", toks[0], toks[1])
	}
	mov := toks[2]
	if mov.Lexeme != "MOV8" || mov.Start != 3 || mov.End != 7 || src[mov.Start:mov.End] != "MOV8" {
		t.Errorf("MOV8 token = %+v", mov)
	}

	toks, err = Lex("\"a\xffb\"")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Lexeme != "a\xffb" || toks[0].End != 5 {
		t.Errorf("string token = %+v", toks[0])
	}
}
