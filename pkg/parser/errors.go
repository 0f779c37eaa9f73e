package parser

import "fmt"

// Error is a lexing or parsing failure at a 1-based line and column.
type Error struct {
	Line    int
	Column  int
	Msg     string
	Snippet string // trimmed source line, when available
}

func (e *Error) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("line %d, column %d: %s\n  |> %s", e.Line, e.Column, e.Msg, e.Snippet)
}
