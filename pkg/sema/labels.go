package sema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/svr2kos2/sayo-asm/pkg/asm"
	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/utils"
)

// checkLabels defines every label in source order, then resolves every
// reference with the scope active at the referencing item.
func (c *Checker) checkLabels(prog *ast.Program) {
	table := asm.NewSymbolTable()
	scopes := make([]string, len(prog.Items))
	for i, item := range prog.Items {
		scopes[i] = table.Scope()
		l, ok := item.(*ast.Label)
		if !ok {
			continue
		}
		err := table.Define(l.Name, 0)
		switch {
		case errors.Is(err, asm.ErrDuplicateLabel):
			c.errorf(l.Span, DuplicateLabel, "duplicate label '%s'", l.Name)
		case errors.Is(err, asm.ErrLocalLabelWithoutGlobal):
			c.errorf(l.Span, LocalLabelWithoutGlobal, "local label '%s' defined before any global label", l.Name)
		}
	}

	for i, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Instruction:
			for _, op := range it.Operands {
				if ref, ok := op.(*ast.LabelRef); ok {
					c.checkRef(table, scopes[i], ref.Name, ref.Span)
				}
			}
		case *ast.Directive:
			for _, v := range it.Values {
				if v.IsLabel() {
					c.checkRef(table, scopes[i], v.Label, it.Span)
				}
			}
		}
	}
}

func (c *Checker) checkRef(table *asm.SymbolTable, scope, name string, span ast.Span) {
	if _, ok := table.ResolveWithScope(name, scope); ok {
		return
	}
	if ast.IsScoped(name) && scope == "" {
		c.errorf(span, LocalLabelWithoutGlobal, "local label '%s' referenced outside any global label", name)
		return
	}
	d := c.diag(span, SeverityError, UndefinedLabel, fmt.Sprintf("undefined label '%s'", name))
	if s := utils.Suggest(name, visibleNames(table, scope), 1); len(s) > 0 {
		d.Hint = "did you mean " + s[0] + "?"
	}
	c.add(d)
}

// visibleNames lists every label resolvable from scope.
func visibleNames(table *asm.SymbolTable, scope string) []string {
	var names []string
	for _, sym := range table.Symbols() {
		if sym.Scope == "" || sym.Scope == scope {
			names = append(names, sym.Name)
		}
	}
	sort.Strings(names)
	return names
}
