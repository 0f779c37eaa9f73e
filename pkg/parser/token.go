package parser

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	NEWLINE   // end of a source line; statements never span lines
	IDENT     // mnemonic, register, label or symbol: main, R0, *R1_16b, .loop, .L.str.1
	DIRECTIVE // known directive; Lexeme holds the name without the dot
	INTEGER   // decimal or prefixed integer, possibly negative; see Token.Value
	STRING    // "..." with escapes decoded

	COMMA // ,
	COLON // :
	PUNCT // any other single character, e.g. the '-' in .size main, .Lend-main
)

var tokenNames = [...]string{
	EOF:       "EOF",
	NEWLINE:   "NEWLINE",
	IDENT:     "IDENT",
	DIRECTIVE: "DIRECTIVE",
	INTEGER:   "INTEGER",
	STRING:    "STRING",
	COMMA:     "COMMA",
	COLON:     "COLON",
	PUNCT:     "PUNCT",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // source text, or the decoded contents of a STRING
	Value  int64  // INTEGER only
	Line   int    // 1-based source line
	Col    int    // 1-based column in runes
	Start  int    // byte offset of the first character
	End    int    // byte offset just past the token
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}
