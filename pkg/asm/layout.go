package asm

import (
	"math"
	"strings"

	"github.com/golang/glog"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
)

// Section is the output section an item belongs to.
type Section int

const (
	SectionText Section = iota
	SectionData
)

func (s Section) String() string {
	if s == SectionData {
		return "data"
	}
	return "text"
}

// SectionSizes are byte counts, excluding the header.
type SectionSizes struct {
	Text uint32
	Data uint32
}

// Layout is the result of the address-assignment pass. The per-item
// slices are parallel to Program.Items.
type Layout struct {
	Symbols       *SymbolTable
	ItemAddresses []uint32
	ItemScopes    []string
	ItemSections  []Section
	Sizes         SectionSizes
}

// DataStart is the address of the first data byte.
func (l *Layout) DataStart() uint32 { return HeaderSize + l.Sizes.Text }

type layoutPass struct {
	symbols *SymbolTable
	define  bool
	section Section
	cursor  [2]uint32
}

func (p *layoutPass) addr() uint32 { return p.cursor[p.section] }

// moveTo sets the cursor, refusing addresses past the 32-bit space.
func (p *layoutPass) moveTo(idx int, next uint64) error {
	if next > math.MaxUint32 {
		return &LayoutError{Kind: ErrImmediateOutOfRange, Item: idx, Value: int64(min(next, math.MaxInt64))}
	}
	p.cursor[p.section] = uint32(next)
	return nil
}

func (p *layoutPass) advance(idx int, n int64) error {
	if n > math.MaxUint32 {
		return &LayoutError{Kind: ErrImmediateOutOfRange, Item: idx, Value: n}
	}
	return p.moveTo(idx, uint64(p.addr())+uint64(n))
}

func (p *layoutPass) alignTo(idx int, n uint64) error {
	if n > math.MaxUint32 {
		return &LayoutError{Kind: ErrImmediateOutOfRange, Item: idx, Value: int64(n)}
	}
	cur := uint64(p.addr())
	return p.moveTo(idx, (cur+n-1)/n*n)
}

// step applies one item to the cursors. Labels are only recorded when
// p.define is set.
func (p *layoutPass) step(idx int, item ast.Item) error {
	switch it := item.(type) {
	case *ast.Label:
		if !p.define {
			return nil
		}
		if err := p.symbols.Define(it.Name, p.addr()); err != nil {
			return &LayoutError{Kind: err, Item: idx, Label: it.Name}
		}
	case *ast.Instruction:
		return p.advance(idx, int64(it.Mnemonic.Descriptor().Length))
	case *ast.Directive:
		return p.directive(idx, it)
	}
	return nil
}

func (p *layoutPass) directive(idx int, d *ast.Directive) error {
	switch d.Kind {
	case ast.DirText:
		p.section = SectionText
	case ast.DirData:
		p.section = SectionData
	case ast.DirSection:
		p.section = sectionFor(d.Name, p.section)
	case ast.DirAlign:
		if d.N <= 0 {
			return &LayoutError{Kind: ErrInvalidAlignment, Item: idx, Value: d.N}
		}
		return p.alignTo(idx, uint64(d.N))
	case ast.DirP2align:
		if d.N < 0 || d.N > 31 {
			return &LayoutError{Kind: ErrInvalidAlignment, Item: idx, Value: d.N}
		}
		return p.alignTo(idx, uint64(1)<<d.N)
	case ast.DirOrg:
		if d.N > math.MaxUint32 {
			return &LayoutError{Kind: ErrImmediateOutOfRange, Item: idx, Value: d.N}
		}
		if uint32(d.N) < p.addr() {
			return &LayoutError{Kind: ErrOrgBackwards, Item: idx, Value: d.N}
		}
		p.cursor[p.section] = uint32(d.N)
	default:
		return p.advance(idx, d.DataSize())
	}
	return nil
}

// sectionFor maps a .section name onto one of the two output sections.
// Names that mention neither leave the section unchanged.
func sectionFor(name string, cur Section) Section {
	switch {
	case strings.Contains(name, "data"): // .data, .rodata, .rodata.str1.1
		return SectionData
	case strings.Contains(name, "text"):
		return SectionText
	}
	return cur
}

// ComputeLayout assigns an address, scope and section to every item.
//
// The data section is placed directly after the final text section, so a
// pre-scan sizes the text section before any data address is handed out.
func ComputeLayout(prog *ast.Program) (*Layout, error) {
	pre := &layoutPass{cursor: [2]uint32{HeaderSize, HeaderSize}}
	for i, item := range prog.Items {
		if err := pre.step(i, item); err != nil {
			return nil, err
		}
	}
	textEnd := pre.cursor[SectionText]

	p := &layoutPass{
		symbols: NewSymbolTable(),
		define:  true,
		cursor:  [2]uint32{HeaderSize, textEnd},
	}
	n := len(prog.Items)
	l := &Layout{
		ItemAddresses: make([]uint32, n),
		ItemScopes:    make([]string, n),
		ItemSections:  make([]Section, n),
	}
	for i, item := range prog.Items {
		l.ItemAddresses[i] = p.addr()
		l.ItemScopes[i] = p.symbols.Scope()
		l.ItemSections[i] = p.section
		if err := p.step(i, item); err != nil {
			return nil, err
		}
		if glog.V(2) {
			glog.Infof("layout %4d %s 0x%04x %s", i, l.ItemSections[i], l.ItemAddresses[i], item)
		}
	}

	l.Symbols = p.symbols
	l.Sizes.Text = p.cursor[SectionText] - HeaderSize
	l.Sizes.Data = p.cursor[SectionData] - textEnd
	glog.V(1).Infof("layout: %d items, text %d bytes, data %d bytes", n, l.Sizes.Text, l.Sizes.Data)
	return l, nil
}
