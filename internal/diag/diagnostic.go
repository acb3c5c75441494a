package diag

import (
	"fmt"

	"github.com/gecko-lang/gecko/internal/source"
)

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageGrammar   Stage = "grammar"
	StageParser    Stage = "parser"
	StageTypeCheck Stage = "typecheck"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Kind is the user-facing error category.
type Kind string

const (
	KindParse               Kind = "ParseError"
	KindStructuralAssertion Kind = "StructuralAssertionError"
	KindType                Kind = "TypeError"
	KindName                Kind = "NameError"
	KindUninitialized       Kind = "UninitializedError"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Grammar and parser errors
	CodeSyntax              Code = "PARSE_SYNTAX"
	CodeUnexpectedRule      Code = "PARSE_UNEXPECTED_RULE"
	CodeNotAnOperator       Code = "PARSE_NOT_AN_OPERATOR"
	CodeMissingDelimiter    Code = "PARSE_MISSING_DELIMITER"
	CodeInvalidLiteral      Code = "PARSE_INVALID_LITERAL"
	CodeStructuralAssertion Code = "PARSE_STRUCTURAL_ASSERTION"

	// Type checker errors
	CodeTypeUndefinedIdentifier   Code = "TYPE_UNDEFINED_IDENTIFIER"
	CodeTypeUninitialized         Code = "TYPE_UNINITIALIZED"
	CodeTypeNotAVariable          Code = "TYPE_NOT_A_VARIABLE"
	CodeTypeMismatch              Code = "TYPE_MISMATCH"
	CodeTypeInvalidOperation      Code = "TYPE_INVALID_OPERATION"
	CodeTypeExpectedTypeSpecifier Code = "TYPE_EXPECTED_TYPE_SPECIFIER"
	CodeTypeInvalidAssignment     Code = "TYPE_INVALID_ASSIGNMENT"
	CodeTypeRedeclared            Code = "TYPE_REDECLARED"
	CodeTypeReturnOutsideFunction Code = "TYPE_RETURN_OUTSIDE_FUNCTION"
	CodeTypeReturnMismatch        Code = "TYPE_RETURN_MISMATCH"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  source.Span
	Label string // Optional label (e.g., "expected `int`, found `str`")
	Style string // "primary" or "secondary" - primary spans are emphasized
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Kind     Kind
	Code     Code
	Name     string // offending identifier or operator, if any
	Message  string
	Span     source.Span
	// LabeledSpans allows multiple spans with labels.
	// The first span is treated as primary, others as secondary
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// Error implements error so a diagnostic can travel through error returns.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span source.Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span source.Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span source.Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError || d.Severity == "" {
			return true
		}
	}
	return false
}
