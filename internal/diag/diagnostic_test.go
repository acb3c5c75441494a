package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/source"
	"gopkg.in/yaml.v3"
)

const sample = "let x: int = 1;\nlet y: int = \"hi\";\n"

func sampleDiagnostic() diag.Diagnostic {
	idx := source.NewIndex("main.gk", sample)
	span := idx.Span(29, 33) // "hi" literal on line 2
	return diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Kind:     diag.KindType,
		Code:     diag.CodeTypeMismatch,
		Name:     "y",
		Message:  "expected int, found str",
		Span:     span,
	}.WithPrimarySpan(span, "found str").WithHelp("remove the quotes")
}

func TestDiagnosticError(t *testing.T) {
	d := sampleDiagnostic()
	want := "main.gk:2:14: TypeError: expected int, found str"
	if got := d.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestHasErrors(t *testing.T) {
	if diag.HasErrors(nil) {
		t.Fatalf("expected no errors for empty list")
	}
	note := diag.Diagnostic{Severity: diag.SeverityNote}
	if diag.HasErrors([]diag.Diagnostic{note}) {
		t.Fatalf("notes must not count as errors")
	}
	if !diag.HasErrors([]diag.Diagnostic{note, sampleDiagnostic()}) {
		t.Fatalf("expected error to be detected")
	}
}

func TestFormatterSnippet(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf, false)
	f.AddSource("main.gk", sample)
	f.Format(sampleDiagnostic())

	out := buf.String()
	for _, want := range []string{
		"error[TYPE_MISMATCH]: TypeError: expected int, found str",
		"--> main.gk:2:14",
		"2 | let y: int = \"hi\";",
		"^^^^ found str",
		"help: remove the quotes",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatterWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf, false)
	d := sampleDiagnostic()
	d.Span.Filename = "missing/does-not-exist.gk"
	d.LabeledSpans = nil
	f.Format(d)

	out := buf.String()
	if !strings.Contains(out, "--> missing/does-not-exist.gk:2:14") {
		t.Fatalf("expected fallback location, got:\n%s", out)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := diag.WriteYAML(&buf, []diag.Diagnostic{sampleDiagnostic()}); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var decoded struct {
		Diagnostics []map[string]any `yaml:"diagnostics"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(decoded.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(decoded.Diagnostics))
	}
	got := decoded.Diagnostics[0]
	if got["kind"] != "TypeError" || got["name"] != "y" || got["line"] != 2 {
		t.Fatalf("unexpected yaml entry: %#v", got)
	}
}
