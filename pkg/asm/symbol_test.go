package asm

import (
	"errors"
	"reflect"
	"testing"
)

func TestSymbolTableScoping(t *testing.T) {
	s := NewSymbolTable()
	steps := []struct {
		name string
		addr uint32
	}{
		{"f1", 0x10},
		{".loop", 0x12},
		{".L.str", 0x40},
		{"f2", 0x20},
		{".loop", 0x24},
	}
	for _, st := range steps {
		if err := s.Define(st.name, st.addr); err != nil {
			t.Fatalf("Define(%q) error = %v", st.name, err)
		}
	}

	tests := []struct {
		name   string
		scope  string
		want   uint32
		wantOK bool
	}{
		{".loop", "f1", 0x12, true},
		{".loop", "f2", 0x24, true},
		{".loop", "", 0, false},
		{".loop", "f3", 0, false},
		{".L.str", "", 0x40, true},
		{".L.str", "f2", 0x40, true},
		{"f1", "f2", 0x10, true},
		{"f3", "f1", 0, false},
	}
	for _, tc := range tests {
		got, ok := s.ResolveWithScope(tc.name, tc.scope)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ResolveWithScope(%q, %q) = 0x%x, %v; want 0x%x, %v", tc.name, tc.scope, got, ok, tc.want, tc.wantOK)
		}
	}

	if s.Scope() != "f2" {
		t.Errorf("Scope() = %q; want f2", s.Scope())
	}
	if got, ok := s.Resolve(".loop"); !ok || got != 0x24 {
		t.Errorf("Resolve(.loop) = 0x%x, %v; want 0x24 from the current scope", got, ok)
	}
}

func TestSymbolTableErrors(t *testing.T) {
	s := NewSymbolTable()
	if err := s.DefineLocal(".x", 0); !errors.Is(err, ErrLocalLabelWithoutGlobal) {
		t.Errorf("local without global error = %v", err)
	}
	if err := s.DefineLocal(".L.early", 0); err != nil {
		t.Errorf("file-static label without global error = %v", err)
	}
	if err := s.DefineGlobal("main", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.DefineGlobal("main", 2); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("duplicate global error = %v", err)
	}
	if err := s.Define(".a", 3); err != nil {
		t.Fatal(err)
	}
	if err := s.Define(".a", 4); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("duplicate local error = %v", err)
	}
	if err := s.Define(".L.early", 5); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("duplicate file-static error = %v", err)
	}
}

func TestSymbolTableListing(t *testing.T) {
	s := NewSymbolTable()
	_ = s.Define("main", 0x0C)
	_ = s.Define(".loop", 0x0F)
	_ = s.Define("data", 0x20)

	want := []Symbol{
		{Name: "main", Address: 0x0C},
		{Name: ".loop", Address: 0x0F, Local: true, Scope: "main"},
		{Name: "data", Address: 0x20},
	}
	if got := s.Symbols(); !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols() = %+v; want %+v", got, want)
	}
	if got := s.Globals(); !reflect.DeepEqual(got, []string{"main", "data"}) {
		t.Errorf("Globals() = %v", got)
	}
	wantStr := "0x000c  main\n0x000f  main.loop\n0x0020  data\n"
	if got := s.String(); got != wantStr {
		t.Errorf("String() = %q; want %q", got, wantStr)
	}
}
