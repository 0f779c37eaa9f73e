package sema

import "fmt"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Category names the rule a Diagnostic comes from.
type Category int

const (
	DuplicateLabel Category = iota
	LocalLabelWithoutGlobal
	UndefinedLabel
	OperandCountMismatch
	InvalidOperandType
	ImmediateOutOfRange
	WriteToReadOnlyRegister
	MixedDirectivesAndInstructions
	InvalidAlignment
)

var categoryNames = [...]string{
	DuplicateLabel:                 "DuplicateLabel",
	LocalLabelWithoutGlobal:        "LocalLabelWithoutGlobal",
	UndefinedLabel:                 "UndefinedLabel",
	OperandCountMismatch:           "OperandCountMismatch",
	InvalidOperandType:             "InvalidOperandType",
	ImmediateOutOfRange:            "ImmediateOutOfRange",
	WriteToReadOnlyRegister:        "WriteToReadOnlyRegister",
	MixedDirectivesAndInstructions: "MixedDirectivesAndInstructions",
	InvalidAlignment:               "InvalidAlignment",
}

func (c Category) String() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Diagnostic is one finding. Line and Column are 1-based.
type Diagnostic struct {
	Severity Severity
	Category Category
	Line     int
	Column   int
	Message  string
	Hint     string
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("line %d, column %d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
	if d.Hint != "" {
		s += " (" + d.Hint + ")"
	}
	return s
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
