package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		in, ext, want string
	}{
		{"prog.s", ".bin", "prog.bin"},
		{"dir/prog.asm", ".lst", "dir/prog.lst"},
		{"prog", ".bin", "prog.bin"},
		{"a.b.s", ".bin", "a.b.bin"},
	}
	for _, tc := range tests {
		if got := ReplaceExt(tc.in, tc.ext); got != tc.want {
			t.Errorf("ReplaceExt(%q, %q) = %q; want %q", tc.in, tc.ext, got, tc.want)
		}
	}
	if got := OutputPath("src/prog.s", "out", ".bin"); got != filepath.Join("out", "prog.bin") {
		t.Errorf("OutputPath = %q", got)
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"MOV", "MOV8", "MOV16", "RET", "CALL", "JMP"}
	got := Suggest("MOVE", candidates, 2)
	want := []string{"MOV", "MOV8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(MOVE) = %v; want %v", got, want)
	}
	if got := Suggest("RET", candidates, 3); len(got) != 0 && got[0] == "RET" {
		t.Errorf("Suggest returned an exact match: %v", got)
	}
	if d := Levenshtein("kitten", "sitting"); d != 3 {
		t.Errorf("Levenshtein(kitten, sitting) = %d; want 3", d)
	}
}

func TestDecodeSource(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"plain", []byte("main: RET\n"), "main: RET\n"},
		{"utf8 bom", []byte("\xEF\xBB\xBFmain: RET\n"), "main: RET\n"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'R', 0, 'E', 0, 'T', 0}, "RET"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'R', 0, 'E', 0, 'T'}, "RET"},
		{"crlf", []byte("main:\r\n RET\r\n"), "main:\n RET\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeSource(tc.raw)
			if err != nil {
				t.Fatalf("DecodeSource: %v", err)
			}
			if got != tc.want {
				t.Errorf("DecodeSource = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestReadSourceAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "prog.s")
	if err := WriteFile(path, []byte("main: RET\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	src, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src != "main: RET\n" {
		t.Errorf("ReadSource = %q", src)
	}
	if _, err := ReadSource(filepath.Join(dir, "missing.s")); !os.IsNotExist(err) {
		t.Errorf("ReadSource(missing) err = %v; want not-exist", err)
	}
}
