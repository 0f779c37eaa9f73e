// Package sema validates a parsed program without encoding it. Unlike the
// assembler it does not stop at the first problem: Check returns every
// finding so an editor or the CLI can show them together.
package sema

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/isa"
)

type Checker struct {
	lines *ast.LineIndex
	diags []Diagnostic
}

func NewChecker(source string) *Checker {
	return &Checker{lines: ast.NewLineIndex(source)}
}

// Check runs every rule over prog. source must be the text prog was parsed from.
func Check(source string, prog *ast.Program) []Diagnostic {
	return NewChecker(source).Check(prog)
}

func (c *Checker) Check(prog *ast.Program) []Diagnostic {
	c.diags = nil
	c.checkLabels(prog)
	c.checkMixed(prog)
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Instruction:
			c.checkInstruction(it)
		case *ast.Directive:
			c.checkDirective(it)
		}
	}
	glog.V(1).Infof("sema: %d items, %d diagnostics", len(prog.Items), len(c.diags))
	return c.diags
}

func (c *Checker) diag(span ast.Span, sev Severity, cat Category, msg string) Diagnostic {
	line, col := c.lines.Position(span.Start)
	return Diagnostic{Severity: sev, Category: cat, Line: line, Column: col, Message: msg}
}

func (c *Checker) add(d Diagnostic) { c.diags = append(c.diags, d) }

func (c *Checker) errorf(span ast.Span, cat Category, format string, args ...any) {
	c.add(c.diag(span, SeverityError, cat, fmt.Sprintf(format, args...)))
}

func (c *Checker) warnf(span ast.Span, cat Category, format string, args ...any) {
	c.add(c.diag(span, SeverityWarning, cat, fmt.Sprintf(format, args...)))
}

func (c *Checker) checkInstruction(in *ast.Instruction) {
	desc := in.Mnemonic.Descriptor()
	if len(in.Operands) != len(desc.Operands) {
		c.errorf(in.Span, OperandCountMismatch, "%s requires %d operand(s), but %d provided",
			desc.Name, len(desc.Operands), len(in.Operands))
	}
	for i, op := range in.Operands {
		if i >= len(desc.Operands) {
			break
		}
		c.checkOperand(desc.Name, desc.Operands[i], op)
	}
}

func (c *Checker) checkOperand(name string, slot isa.OperandDesc, op ast.Operand) {
	switch o := op.(type) {
	case *ast.RegisterOperand:
		if slot.Type != isa.TypeRegister {
			c.errorf(o.Span, InvalidOperandType, "%s: expected %s, got register %s", name, expected(slot.Type), o.Reg)
			return
		}
		if slot.IsWrite && !o.Reg.Access().Writable() {
			c.errorf(o.Span, WriteToReadOnlyRegister, "cannot write to read-only register %s", o.Reg)
		}
	case *ast.Immediate:
		switch slot.Type {
		case isa.TypeRegister, isa.TypeNone:
			c.errorf(o.Span, InvalidOperandType, "%s: expected %s, got immediate", name, expected(slot.Type))
		case isa.TypeLabel:
			if o.Value < 0 || o.Value > 0xFFFF {
				c.errorf(o.Span, ImmediateOutOfRange, "address %d out of range 0..65535", o.Value)
			}
		default:
			if !slot.Type.Fits(o.Value) {
				lo, hi := slot.Type.Range()
				c.errorf(o.Span, ImmediateOutOfRange, "immediate %d out of range for %s (%d..%d)", o.Value, slot.Type, lo, hi)
			}
		}
	case *ast.LabelRef:
		if slot.Type == isa.TypeRegister || slot.Type == isa.TypeNone {
			c.errorf(o.Span, InvalidOperandType, "%s: expected %s, got label %s", name, expected(slot.Type), o.Name)
		}
	}
}

func expected(t isa.OperandType) string {
	switch t {
	case isa.TypeRegister:
		return "register"
	case isa.TypeLabel:
		return "label or address (0..65535)"
	case isa.TypeNone:
		return "no operand"
	}
	return t.String() + " immediate"
}

func (c *Checker) checkDirective(d *ast.Directive) {
	switch d.Kind {
	case ast.DirAlign:
		if d.N == 0 {
			c.errorf(d.Span, InvalidAlignment, ".align 0 is not a valid alignment")
		}
	case ast.DirP2align:
		if d.N > 31 {
			c.errorf(d.Span, InvalidAlignment, ".p2align %d exceeds 31", d.N)
		}
	}
}

// checkMixed warns once per label-delimited run that holds both
// instructions and data or alignment directives.
func (c *Checker) checkMixed(prog *ast.Program) {
	var firstInst, firstDir ast.Item
	reported := false
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Label:
			firstInst, firstDir, reported = nil, nil, false
			continue
		case *ast.Instruction:
			if firstInst == nil {
				firstInst = it
			}
		case *ast.Directive:
			if ignoredForMixing(it.Kind) {
				continue
			}
			if firstDir == nil {
				firstDir = it
			}
		}
		if firstInst != nil && firstDir != nil && !reported {
			at := firstInst
			if firstDir.Pos().Start < at.Pos().Start {
				at = firstDir
			}
			c.warnf(at.Pos(), MixedDirectivesAndInstructions, "directives and instructions are mixed between labels")
			reported = true
		}
	}
}

// ignoredForMixing reports section switches and symbol metadata.
func ignoredForMixing(k ast.DirectiveKind) bool {
	switch k {
	case ast.DirText, ast.DirData, ast.DirBss, ast.DirSection,
		ast.DirGlobl, ast.DirLocal, ast.DirType, ast.DirSize, ast.DirFile,
		ast.DirIdent, ast.DirLoc, ast.DirAddrsig, ast.DirAddrsigSym:
		return true
	}
	return false
}
