package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/japanoise/numparse"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
)

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  string
	pos  int // byte offset of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
// An invalid byte reads as utf8.RuneError and is one byte wide.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

// peek2 returns the rune after the current one.
func (l *Lexer) peek2() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	_, n := utf8.DecodeRuneInString(l.src[l.pos:])
	if l.pos+n >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+n:])
	return r
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, n := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += n
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) errorf(line, col int, format string, args ...any) error {
	return &Error{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

// skipBlank skips spaces, tabs and carriage returns but stops at '\n'.
func (l *Lexer) skipBlank() {
	for l.pos < len(l.src) {
		r := l.peek()
		if r == '\n' || !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '*' || r == '$' || r == '@' || r == '%'
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '.'
}

// scanIdent collects an identifier. A leading '.' is kept; if the name
// after the dot is a known directive the token is a DIRECTIVE instead.
func (l *Lexer) scanIdent() Token {
	tok := Token{Line: l.line, Col: l.col, Start: l.pos}
	start := l.pos
	if l.peek() == '.' {
		l.advance()
	}
	for l.pos < len(l.src) && isIdentChar(l.peek()) {
		l.advance()
	}
	tok.Lexeme = l.src[start:l.pos]
	tok.End = l.pos
	tok.Type = IDENT
	if name, ok := strings.CutPrefix(tok.Lexeme, "."); ok {
		if _, known := ast.LookupDirective(name); known {
			tok.Type = DIRECTIVE
			tok.Lexeme = name
		}
	}
	return tok
}

// scanInt collects an integer literal. 0x, 0o and 0b prefixes (either
// case) go through numparse; everything else is decimal, so 010 is ten.
// A leading '-' is handled here.
func (l *Lexer) scanInt() (Token, error) {
	tok := Token{Type: INTEGER, Line: l.line, Col: l.col, Start: l.pos}
	start := l.pos
	neg := false
	if l.peek() == '-' {
		neg = true
		l.advance()
	}
	digits := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if r > unicode.MaxASCII || !(unicode.IsDigit(r) || unicode.IsLetter(r)) {
			break
		}
		l.advance()
	}
	tok.Lexeme = l.src[start:l.pos]
	tok.End = l.pos

	mag, err := parseMagnitude(l.src[digits:l.pos])
	if err != nil {
		return Token{}, l.errorf(tok.Line, tok.Col, "invalid integer literal %q", tok.Lexeme)
	}
	switch {
	case neg && mag <= 1<<63:
		tok.Value = -int64(mag)
	case !neg && mag <= math.MaxInt64:
		tok.Value = int64(mag)
	default:
		return Token{}, l.errorf(tok.Line, tok.Col, "integer literal %s out of range", tok.Lexeme)
	}
	return tok, nil
}

func parseMagnitude(lit string) (uint64, error) {
	if len(lit) > 2 && lit[0] == '0' {
		switch prefix := strings.ToLower(lit[:2]); prefix {
		case "0x", "0o", "0b":
			u, err := numparse.UNumParse(prefix + lit[2:])
			return uint64(u), err
		}
	}
	return strconv.ParseUint(lit, 10, 64)
}

// scanString collects a string literal "...". The returned Lexeme holds raw
// bytes, so octal escapes above 0x7f stay single bytes.
func (l *Lexer) scanString() (Token, error) {
	tok := Token{Type: STRING, Line: l.line, Col: l.col, Start: l.pos}
	l.advance() // consume opening "
	var val []byte

	for l.pos < len(l.src) {
		r := l.peek()
		if r == '"' {
			break
		}
		if r == '\n' {
			return Token{}, l.errorf(tok.Line, tok.Col, "unterminated string literal")
		}
		if r == '\\' {
			l.advance() // consume backslash
			escStart := l.pos
			next := l.advance()
			switch {
			case next == 'n':
				val = append(val, '\n')
			case next == 'r':
				val = append(val, '\r')
			case next == 't':
				val = append(val, '\t')
			case next == 'e' || next == 'E':
				val = append(val, 0x1b)
			case next == '"':
				val = append(val, '"')
			case next == '\\':
				val = append(val, '\\')
			case next >= '0' && next <= '7':
				code := int(next - '0')
				for i := 0; i < 2 && l.peek() >= '0' && l.peek() <= '7'; i++ {
					code = code*8 + int(l.advance()-'0')
				}
				if code > 0xff {
					return Token{}, l.errorf(l.line, l.col, "octal escape \\%o out of range", code)
				}
				val = append(val, byte(code))
			case next == 0:
				return Token{}, l.errorf(tok.Line, tok.Col, "unterminated string literal")
			default:
				val = append(val, '\\')
				val = append(val, l.src[escStart:l.pos]...)
			}
			continue
		}
		start := l.pos
		l.advance()
		val = append(val, l.src[start:l.pos]...)
	}

	if l.pos >= len(l.src) {
		return Token{}, l.errorf(tok.Line, tok.Col, "unterminated string literal")
	}
	l.advance() // consume closing "
	tok.Lexeme = string(val)
	tok.End = l.pos
	return tok, nil
}

// nextToken skips blanks and comments and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	for {
		l.skipBlank()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Line: l.line, Col: l.col, Start: l.pos, End: l.pos}, nil
		}
		ch := l.peek()
		if ch == ';' || ch == '#' || (ch == '/' && l.peek2() == '/') {
			l.skipLineComment()
			continue
		}
		break
	}

	ch := l.peek()
	switch {
	case ch == '.' && isIdentChar(l.peek2()):
		return l.scanIdent(), nil
	case isIdentStart(ch):
		return l.scanIdent(), nil
	case unicode.IsDigit(ch), ch == '-' && unicode.IsDigit(l.peek2()):
		return l.scanInt()
	case ch == '"':
		return l.scanString()
	}

	tok := Token{Line: l.line, Col: l.col, Start: l.pos}
	l.advance()
	tok.End = l.pos
	tok.Lexeme = l.src[tok.Start:l.pos]
	switch ch {
	case '\n':
		tok.Type = NEWLINE
	case ',':
		tok.Type = COMMA
	case ':':
		tok.Type = COLON
	default:
		tok.Type = PUNCT
	}
	return tok, nil
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It stops at the first malformed literal.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
