package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DirectiveKind tags the variant held by a Directive.
type DirectiveKind int

const (
	DirText DirectiveKind = iota
	DirData
	DirBss
	DirSection
	DirGlobl
	DirLocal
	DirType
	DirSize
	DirFile
	DirIdent
	DirLoc
	DirByte
	DirWord
	DirShort
	DirLong
	DirQuad
	DirAscii
	DirAsciz
	DirZero
	DirAlign
	DirP2align
	DirOrg
	DirSkip
	DirAddrsig
	DirAddrsigSym
)

var directiveNames = [...]string{
	DirText:       "text",
	DirData:       "data",
	DirBss:        "bss",
	DirSection:    "section",
	DirGlobl:      "globl",
	DirLocal:      "local",
	DirType:       "type",
	DirSize:       "size",
	DirFile:       "file",
	DirIdent:      "ident",
	DirLoc:        "loc",
	DirByte:       "byte",
	DirWord:       "word",
	DirShort:      "short",
	DirLong:       "long",
	DirQuad:       "quad",
	DirAscii:      "ascii",
	DirAsciz:      "asciz",
	DirZero:       "zero",
	DirAlign:      "align",
	DirP2align:    "p2align",
	DirOrg:        "org",
	DirSkip:       "skip",
	DirAddrsig:    "addrsig",
	DirAddrsigSym: "addrsig_sym",
}

func (k DirectiveKind) String() string {
	if int(k) >= 0 && int(k) < len(directiveNames) {
		return "." + directiveNames[k]
	}
	return fmt.Sprintf("DirectiveKind(%d)", int(k))
}

// directiveAliases maps every accepted spelling (without the dot) to its kind.
var directiveAliases = map[string]DirectiveKind{
	"global": DirGlobl,
	"string": DirAsciz,
}

// LookupDirective resolves a directive name written without its leading dot.
// Directive names are lowercase; anything else is not a directive.
func LookupDirective(name string) (DirectiveKind, bool) {
	if k, ok := directiveAliases[name]; ok {
		return k, true
	}
	for k, n := range directiveNames {
		if n == name {
			return DirectiveKind(k), true
		}
	}
	return 0, false
}

// Directive is an assembler directive. Which fields are set depends on Kind:
//
//	Name    section name, or the symbol of globl/local/type/size/addrsig_sym
//	Arg     type kind, size expression, or the raw text of file/ident/loc
//	Values  byte/word/short/long/quad
//	Str     ascii/asciz, escapes already decoded
//	N       zero/skip count, align/p2align argument, org address
type Directive struct {
	Kind   DirectiveKind
	Name   string
	Arg    string
	Values []DataValue
	Str    string
	N      int64
	Span   Span
}

func (*Directive) itemNode()   {}
func (d *Directive) Pos() Span { return d.Span }

func (d *Directive) String() string {
	switch d.Kind {
	case DirSection, DirGlobl, DirLocal, DirAddrsigSym:
		return d.Kind.String() + " " + d.Name
	case DirType, DirSize:
		return fmt.Sprintf("%s %s, %s", d.Kind, d.Name, d.Arg)
	case DirFile, DirIdent, DirLoc:
		return d.Kind.String() + " " + d.Arg
	case DirByte, DirWord, DirShort, DirLong, DirQuad:
		vals := make([]string, len(d.Values))
		for i, v := range d.Values {
			vals[i] = v.String()
		}
		return d.Kind.String() + " " + strings.Join(vals, ", ")
	case DirAscii, DirAsciz:
		return d.Kind.String() + " " + strconv.Quote(d.Str)
	case DirZero, DirAlign, DirP2align, DirSkip:
		return fmt.Sprintf("%s %d", d.Kind, d.N)
	case DirOrg:
		return fmt.Sprintf("%s 0x%x", d.Kind, d.N)
	}
	return d.Kind.String()
}

// ElementWidth is the byte width of one value of a data-list directive, 0 otherwise.
func (d *Directive) ElementWidth() int {
	switch d.Kind {
	case DirByte:
		return 1
	case DirWord, DirShort:
		return 2
	case DirLong:
		return 4
	case DirQuad:
		return 8
	}
	return 0
}

// DataSize is the number of bytes the directive emits in place. Section
// switches and alignment are handled by layout and report 0.
func (d *Directive) DataSize() int64 {
	switch d.Kind {
	case DirByte, DirWord, DirShort, DirLong, DirQuad:
		return int64(len(d.Values) * d.ElementWidth())
	case DirAscii:
		return int64(len(d.Str))
	case DirAsciz:
		return int64(len(d.Str)) + 1
	case DirZero, DirSkip:
		if d.N < 0 {
			return 0
		}
		return d.N
	}
	return 0
}

// IsData reports whether the directive contributes bytes to the image.
func (d *Directive) IsData() bool {
	switch d.Kind {
	case DirByte, DirWord, DirShort, DirLong, DirQuad, DirAscii, DirAsciz, DirZero, DirSkip:
		return true
	}
	return false
}
