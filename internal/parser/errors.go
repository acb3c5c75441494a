package parser

import (
	"fmt"
	"strings"

	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/grammar"
	"github.com/gecko-lang/gecko/internal/source"
)

// ErrorKind distinguishes user syntax errors from violated builder invariants.
type ErrorKind int

const (
	// ParseError is malformed input: an unexpected rule or a rule the
	// builder cannot turn into a node.
	ParseError ErrorKind = iota
	// StructuralAssertionError means the pair tree does not have the shape
	// the grammar promises, such as a block without its closing brace.
	StructuralAssertionError
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case StructuralAssertionError:
		return "StructuralAssertionError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a fatal failure while turning source into an AST. Building stops at
// the first one.
type Error struct {
	Kind     ErrorKind
	Code     diag.Code
	Rule     grammar.Rule // rule being built
	Expected []string
	Found    string
	Message  string
	Span     source.Span
}

func (e *Error) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ToDiagnostic converts the error into a diagnostic for reporting.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	stage := diag.StageParser
	kind := diag.KindParse
	if e.Kind == StructuralAssertionError {
		kind = diag.KindStructuralAssertion
	}
	if e.Code == diag.CodeSyntax {
		stage = diag.StageGrammar
	}

	d := diag.Diagnostic{
		Stage:    stage,
		Severity: diag.SeverityError,
		Kind:     kind,
		Code:     e.Code,
		Message:  e.Message,
		Span:     e.Span,
	}
	if len(e.Expected) > 0 {
		d = d.WithPrimarySpan(e.Span, "expected "+strings.Join(e.Expected, " or "))
	}
	if e.Kind == StructuralAssertionError {
		d = d.WithNote("the grammar and the AST builder disagree about this construct")
	}
	return d
}

func (b *builder) fail(kind ErrorKind, code diag.Code, rule grammar.Rule, span source.Span, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// unexpected reports a pair whose rule does not fit the shape being built.
func (b *builder) unexpected(parent grammar.Rule, found *grammar.Pair, expected ...grammar.Rule) *Error {
	names := make([]string, 0, len(expected))
	for _, r := range expected {
		names = append(names, r.String())
	}
	return &Error{
		Kind:     ParseError,
		Code:     diag.CodeUnexpectedRule,
		Rule:     parent,
		Expected: names,
		Found:    found.Rule().String(),
		Message: fmt.Sprintf("in %s: expected %s, found %s",
			parent, strings.Join(names, " or "), found.Rule()),
		Span: b.span(found),
	}
}

// missing reports a required child that is absent altogether.
func (b *builder) missing(parent *grammar.Pair, want grammar.Rule) *Error {
	end := b.idx.Span(parent.End(), parent.End())
	return &Error{
		Kind:     StructuralAssertionError,
		Code:     diag.CodeMissingDelimiter,
		Rule:     parent.Rule(),
		Expected: []string{want.String()},
		Found:    "nothing",
		Message:  fmt.Sprintf("%s is missing its %s", parent.Rule(), want),
		Span:     end,
	}
}

// fromSyntaxError lifts a grammar failure into a parse error with a span.
func fromSyntaxError(idx *source.Index, err *grammar.SyntaxError) *Error {
	return &Error{
		Kind:     ParseError,
		Code:     diag.CodeSyntax,
		Rule:     err.Rule,
		Expected: err.Expected,
		Found:    err.Found,
		Message:  err.Error(),
		Span:     idx.Span(err.Offset, err.End),
	}
}
