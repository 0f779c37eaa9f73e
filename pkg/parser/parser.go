// Package parser turns Sayo assembly text into an ast.Program.
//
// Grammar (one statement per line, labels may share a line with a statement):
//
//	line        = { label } [ directive | instruction ] [ comment ] NEWLINE
//	label       = IDENT ":"
//	directive   = "." name { argument [ "," ] }
//	instruction = MNEMONIC [ operand { "," operand } ]
//	operand     = register | INTEGER | IDENT
//	comment     = ( ";" | "#" | "//" ) { any }
package parser

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/image/colornames"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
	"github.com/svr2kos2/sayo-asm/pkg/isa"
	"github.com/svr2kos2/sayo-asm/pkg/utils"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// Parse lexes and parses src. It stops at the first error.
func Parse(src string) (*ast.Program, error) {
	tokens, err := Lex(src)
	if err != nil {
		if pe, ok := err.(*Error); ok {
			pe.Snippet = snippet(strings.Split(src, "\n"), pe.Line)
		}
		return nil, err
	}
	return NewParser(tokens, src).ParseProgram()
}

func snippet(lines []string, line int) string {
	if line-1 >= 0 && line-1 < len(lines) {
		return strings.TrimSpace(lines[line-1])
	}
	return ""
}

// fmtError wraps a message with the position and source line of tok.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	return &Error{
		Line:    tok.Line,
		Column:  tok.Col,
		Msg:     fmt.Sprintf(format, args...),
		Snippet: snippet(p.sourceLines, tok.Line),
	}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// peekNext returns the token immediately after the current one.
func (p *Parser) peekNext() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos+1]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) atLineEnd() bool {
	tt := p.peek().Type
	return tt == NEWLINE || tt == EOF
}

// restOfLine consumes the remaining tokens of the current line.
func (p *Parser) restOfLine() []Token {
	var toks []Token
	for !p.atLineEnd() {
		toks = append(toks, p.advance())
	}
	return toks
}

// ParseProgram parses every line until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for {
		tok := p.peek()
		switch tok.Type {
		case EOF:
			glog.V(2).Infof("parsed %d items", len(prog.Items))
			return prog, nil
		case NEWLINE:
			p.advance()
		case IDENT, DIRECTIVE:
			if p.peekNext().Type == COLON {
				p.advance()
				colon := p.advance()
				name := tok.Lexeme
				if tok.Type == DIRECTIVE {
					name = "." + name
				}
				prog.Items = append(prog.Items, &ast.Label{Name: name, Span: ast.Span{Start: tok.Start, End: colon.End}})
				continue
			}
			item, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			if item != nil {
				prog.Items = append(prog.Items, item)
			}
			if !p.atLineEnd() {
				extra := p.peek()
				return nil, p.fmtError(extra, "unexpected %s %q after statement", extra.Type, extra.Lexeme)
			}
		default:
			return nil, p.fmtError(tok, "unexpected %s %q", tok.Type, tok.Lexeme)
		}
	}
}

func (p *Parser) parseStatement() (ast.Item, error) {
	tok := p.peek()
	if tok.Type == DIRECTIVE {
		return p.parseDirective()
	}
	if ast.IsLocal(tok.Lexeme) {
		// Unknown directive: skip to end of line.
		p.advance()
		p.restOfLine()
		glog.V(1).Infof("line %d: ignoring unknown directive %s", tok.Line, tok.Lexeme)
		return nil, nil
	}
	return p.parseInstruction()
}

func (p *Parser) parseInstruction() (ast.Item, error) {
	name := p.advance()
	m, ok := isa.Lookup(name.Lexeme)
	if !ok {
		hint := ""
		if s := utils.Suggest(strings.ToUpper(name.Lexeme), isa.Names(), 1); len(s) > 0 {
			hint = fmt.Sprintf(" (did you mean %s?)", s[0])
		}
		return nil, p.fmtError(name, "unknown instruction %s%s", name.Lexeme, hint)
	}

	inst := &ast.Instruction{Mnemonic: m, Span: ast.Span{Start: name.Start, End: name.End}}
	slots := m.Descriptor().Operands
	for !p.atLineEnd() {
		if len(inst.Operands) > 0 {
			if p.peek().Type != COMMA {
				tok := p.peek()
				return nil, p.fmtError(tok, "expected ',' between operands, got %q", tok.Lexeme)
			}
			p.advance()
		}
		slot := isa.TypeNone
		if n := len(inst.Operands); n < len(slots) {
			slot = slots[n].Type
		}
		op, err := p.parseOperand(slot)
		if err != nil {
			return nil, err
		}
		inst.Operands = append(inst.Operands, op)
		inst.Span.End = op.Pos().End
	}
	return inst, nil
}

// parseOperand reads one operand. slot is the descriptor type of the
// position being filled and only steers how bare names are read.
func (p *Parser) parseOperand(slot isa.OperandType) (ast.Operand, error) {
	tok := p.advance()
	span := ast.Span{Start: tok.Start, End: tok.End}
	switch tok.Type {
	case INTEGER:
		return &ast.Immediate{Value: tok.Value, Span: span}, nil
	case IDENT:
		if reg, ok := isa.ParseRegister(tok.Lexeme); ok {
			return &ast.RegisterOperand{Reg: reg, Span: span}, nil
		}
		if slot == isa.TypeRgb888 {
			if c, ok := colornames.Map[strings.ToLower(tok.Lexeme)]; ok {
				return &ast.Immediate{Value: rgb888(c), Span: span}, nil
			}
		}
		return &ast.LabelRef{Name: tok.Lexeme, Span: span}, nil
	case DIRECTIVE:
		return &ast.LabelRef{Name: "." + tok.Lexeme, Span: span}, nil
	case COMMA:
		return nil, p.fmtError(tok, "missing operand before ','")
	}
	return nil, p.fmtError(tok, "unexpected %s %q in operand list", tok.Type, tok.Lexeme)
}

// rgb888 packs a colour as 0xRRGGBB.
func rgb888(c color.RGBA) int64 {
	return int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)
}

func (p *Parser) parseDirective() (ast.Item, error) {
	tok := p.advance()
	kind, _ := ast.LookupDirective(tok.Lexeme)
	d := &ast.Directive{Kind: kind, Span: ast.Span{Start: tok.Start, End: tok.End}}

	var err error
	switch kind {
	case ast.DirText, ast.DirData, ast.DirBss, ast.DirAddrsig:
		p.restOfLine()
	case ast.DirSection:
		rest := p.restOfLine()
		if len(rest) == 0 {
			return nil, p.fmtError(tok, ".section expects a section name")
		}
		d.Name = symbolText(rest[0])
		d.Arg = joinTokens(rest[1:], " ")
	case ast.DirGlobl, ast.DirLocal, ast.DirAddrsigSym:
		rest := p.restOfLine()
		if len(rest) > 0 {
			d.Name = symbolText(rest[0])
		}
	case ast.DirType:
		var names []string
		for _, t := range p.restOfLine() {
			if t.Type == IDENT || t.Type == DIRECTIVE {
				names = append(names, symbolText(t))
			}
		}
		if len(names) > 0 {
			d.Name = names[0]
		}
		if len(names) > 1 {
			d.Arg = names[1]
		}
	case ast.DirSize:
		rest := p.restOfLine()
		if len(rest) > 0 {
			d.Name = symbolText(rest[0])
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0].Type == COMMA {
			rest = rest[1:]
		}
		d.Arg = joinTokens(rest, "")
	case ast.DirFile, ast.DirIdent, ast.DirLoc:
		d.Arg = joinTokens(p.restOfLine(), " ")
	case ast.DirByte, ast.DirWord, ast.DirShort, ast.DirLong, ast.DirQuad:
		d.Values, err = p.parseDataValues()
	case ast.DirAscii, ast.DirAsciz:
		str := p.advance()
		if str.Type != STRING {
			return nil, p.fmtError(str, "%s expects a string literal", kind)
		}
		d.Str = str.Lexeme
	case ast.DirZero, ast.DirSkip, ast.DirAlign, ast.DirP2align, ast.DirOrg:
		n := p.advance()
		if n.Type != INTEGER {
			return nil, p.fmtError(n, "%s expects an integer", kind)
		}
		if n.Value < 0 {
			return nil, p.fmtError(n, "%s expects a non-negative value, got %d", kind, n.Value)
		}
		d.N = n.Value
		// Fill values (".p2align 4, 0x90") are accepted and ignored.
		p.restOfLine()
	}
	if err != nil {
		return nil, err
	}
	if last := p.tokens[p.pos-1]; last.Type != NEWLINE && last.Type != EOF {
		d.Span.End = last.End
	}
	return d, nil
}

func (p *Parser) parseDataValues() ([]ast.DataValue, error) {
	var vals []ast.DataValue
	for !p.atLineEnd() {
		tok := p.advance()
		switch tok.Type {
		case COMMA:
		case INTEGER:
			vals = append(vals, ast.Imm(tok.Value))
		case IDENT, DIRECTIVE:
			vals = append(vals, ast.Sym(symbolText(tok)))
		default:
			return nil, p.fmtError(tok, "unexpected %s %q in data list", tok.Type, tok.Lexeme)
		}
	}
	return vals, nil
}

// symbolText restores the dot the lexer strips from directive-like names.
func symbolText(tok Token) string {
	if tok.Type == DIRECTIVE {
		return "." + tok.Lexeme
	}
	return tok.Lexeme
}

func joinTokens(toks []Token, sep string) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Type == COMMA && sep != "" {
			continue
		}
		parts = append(parts, symbolText(t))
	}
	return strings.Join(parts, sep)
}
