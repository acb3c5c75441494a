package types

import (
	"fmt"
	"strings"

	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/source"
)

// ErrorKind classifies semantic errors.
type ErrorKind int

const (
	TypeError ErrorKind = iota
	NameError
	UninitializedError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case NameError:
		return "NameError"
	case UninitializedError:
		return "UninitializedError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is one semantic error. Name holds the offending identifier or
// operator when there is one.
type Error struct {
	Kind    ErrorKind
	Code    diag.Code
	Name    string
	Message string
	Span    source.Span
}

func newError(kind ErrorKind, code diag.Code, name string, span source.Span, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

func (e *Error) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ToDiagnostic converts the error into a diagnostic for reporting.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	kind := diag.KindType
	switch e.Kind {
	case NameError:
		kind = diag.KindName
	case UninitializedError:
		kind = diag.KindUninitialized
	}

	d := diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Kind:     kind,
		Code:     e.Code,
		Name:     e.Name,
		Message:  e.Message,
		Span:     e.Span,
	}
	if e.Span.IsValid() {
		d = d.WithPrimarySpan(e.Span, "")
	}
	switch e.Code {
	case diag.CodeTypeUndefinedIdentifier:
		d = d.WithHelp(fmt.Sprintf("declare '%s' with `let` before using it", e.Name))
	case diag.CodeTypeUninitialized:
		d = d.WithHelp(fmt.Sprintf("assign a value to '%s' first", e.Name))
	}
	return d
}

// ErrorList collects the errors of a checking pass in report order.
type ErrorList []*Error

func (l ErrorList) Error() string {
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Diagnostics converts every error in l.
func (l ErrorList) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(l))
	for _, e := range l {
		out = append(out, e.ToDiagnostic())
	}
	return out
}

// add appends err, flattening nested lists.
func (l *ErrorList) add(err error) {
	switch err := err.(type) {
	case nil:
	case *Error:
		*l = append(*l, err)
	case ErrorList:
		*l = append(*l, err...)
	default:
		*l = append(*l, &Error{Kind: TypeError, Message: err.Error()})
	}
}

// join combines independent failures into one error.
func join(errs ...error) error {
	var l ErrorList
	for _, err := range errs {
		l.add(err)
	}
	if len(l) == 1 {
		return l[0]
	}
	return l.Err()
}
