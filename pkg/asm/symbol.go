package asm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
)

// Symbol is one resolved label.
type Symbol struct {
	Name    string
	Address uint32
	Local   bool
	Scope   string // enclosing global for scoped locals
}

// SymbolTable maps global labels and, per global, the local labels defined
// under it. File-static .L. names live in the global map.
type SymbolTable struct {
	globals map[string]uint32
	locals  map[string]map[string]uint32
	current string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		globals: make(map[string]uint32),
		locals:  make(map[string]map[string]uint32),
	}
}

// Define routes name to DefineLocal or DefineGlobal by its spelling.
func (s *SymbolTable) Define(name string, addr uint32) error {
	if ast.IsLocal(name) {
		return s.DefineLocal(name, addr)
	}
	return s.DefineGlobal(name, addr)
}

// DefineGlobal records name and makes it the current scope.
func (s *SymbolTable) DefineGlobal(name string, addr uint32) error {
	if _, exists := s.globals[name]; exists {
		return ErrDuplicateLabel
	}
	s.globals[name] = addr
	s.current = name
	if s.locals[name] == nil {
		s.locals[name] = make(map[string]uint32)
	}
	return nil
}

// DefineLocal records name under the current scope. It does not change the scope.
func (s *SymbolTable) DefineLocal(name string, addr uint32) error {
	if ast.IsFileStatic(name) {
		if _, exists := s.globals[name]; exists {
			return ErrDuplicateLabel
		}
		s.globals[name] = addr
		return nil
	}
	if s.current == "" {
		return ErrLocalLabelWithoutGlobal
	}
	scope := s.locals[s.current]
	if _, exists := scope[name]; exists {
		return ErrDuplicateLabel
	}
	scope[name] = addr
	return nil
}

// Scope is the global label most recently defined, or "".
func (s *SymbolTable) Scope() string { return s.current }

// Resolve looks name up from the current scope.
func (s *SymbolTable) Resolve(name string) (uint32, bool) {
	return s.ResolveWithScope(name, s.current)
}

// ResolveWithScope looks name up as if scope were the current global.
// Globals win over locals of the same spelling.
func (s *SymbolTable) ResolveWithScope(name, scope string) (uint32, bool) {
	if addr, ok := s.globals[name]; ok {
		return addr, true
	}
	if !ast.IsLocal(name) || scope == "" {
		return 0, false
	}
	addr, ok := s.locals[scope][name]
	return addr, ok
}

// Globals returns the global names in address order.
func (s *SymbolTable) Globals() []string {
	names := make([]string, 0, len(s.globals))
	for name := range s.globals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := s.globals[names[i]], s.globals[names[j]]
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return names
}

// Symbols returns every symbol, sorted by address then name.
func (s *SymbolTable) Symbols() []Symbol {
	var out []Symbol
	for name, addr := range s.globals {
		out = append(out, Symbol{Name: name, Address: addr, Local: ast.IsLocal(name)})
	}
	for scope, m := range s.locals {
		for name, addr := range m {
			out = append(out, Symbol{Name: name, Address: addr, Local: true, Scope: scope})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *SymbolTable) String() string {
	var sb strings.Builder
	for _, sym := range s.Symbols() {
		name := sym.Name
		if sym.Scope != "" {
			name = sym.Scope + name
		}
		fmt.Fprintf(&sb, "0x%04x  %s\n", sym.Address, name)
	}
	return sb.String()
}
