// Package asm lays out and encodes Sayo assembly into a loadable image.
//
// Assembly runs in two passes over an immutable ast.Program: ComputeLayout
// assigns every item an address, a section and the global label scope it
// was written under, then the Encoder emits bytes from that Layout alone.
package asm

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/parser"
)

// Output is everything one assembly run produces.
type Output struct {
	MachineCode []byte
	Layout      *Layout
	Listing     string
	SourceMap   map[uint32]int // address of each emitting item -> 1-based line
	Items       [][]byte       // encoded bytes per program item
}

type Assembler struct {
	source  string
	program *ast.Program

	// Raw drops the header and the main requirement.
	Raw bool
}

func NewAssembler(source string, prog *ast.Program) *Assembler {
	return &Assembler{source: source, program: prog}
}

// Assemble parses source and assembles it with a header.
func Assemble(source string) (*Output, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return NewAssembler(source, prog).Assemble()
}

func (a *Assembler) Assemble() (*Output, error) {
	lines := ast.NewLineIndex(a.source)

	layout, err := ComputeLayout(a.program)
	if err != nil {
		return nil, a.atLine(lines, err)
	}

	img, items, err := NewEncoder(layout).encodeImage(a.program, !a.Raw)
	if err != nil {
		return nil, a.atLine(lines, err)
	}

	var header []byte
	if !a.Raw {
		header = img[:HeaderSize]
	}
	out := &Output{
		MachineCode: img,
		Layout:      layout,
		Listing:     GenerateListing(a.source, a.program, layout, header, items),
		SourceMap:   make(map[uint32]int),
		Items:       items,
	}
	for i, b := range items {
		if len(b) == 0 {
			continue
		}
		out.SourceMap[layout.ItemAddresses[i]] = lines.Line(a.program.Items[i].Pos().Start)
	}
	glog.V(1).Infof("assembled %d items into %d bytes", len(a.program.Items), len(img))
	return out, nil
}

// atLine prefixes err with the source line of the item it names.
func (a *Assembler) atLine(lines *ast.LineIndex, err error) error {
	item := -1
	var le *LayoutError
	var ee *EncodeError
	switch {
	case errors.As(err, &le):
		item = le.Item
	case errors.As(err, &ee):
		item = ee.Item
	}
	if item < 0 || item >= len(a.program.Items) {
		return err
	}
	return fmt.Errorf("line %d: %w", lines.Line(a.program.Items[item].Pos().Start), err)
}
