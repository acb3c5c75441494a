package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{args[0], "--no-color", "--log-level", "error"}, args[1:]...))
	err := root.Execute()
	return out.String(), err
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestCheckClean(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"main.gk":     "func main() -> int { return 0; }",
		"lib/math.gk": "func sq(x: float) -> float { return x * x; }",
		"README.md":   "not gecko",
	})

	out, err := execute(t, "check", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok: 2 file(s)") {
		t.Fatalf("expected success summary, got:\n%s", out)
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"bad.gk": "let a = b;\n",
	})

	out, err := execute(t, "check", filepath.Join(dir, "bad.gk"))
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	for _, want := range []string{
		"error[TYPE_UNDEFINED_IDENTIFIER]: NameError: undefined name 'b'",
		"1 | let a = b;",
		"1 error(s) in 1 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCheckYAML(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"bad.gk": "let x: int = \"s\";",
	})

	out, err := execute(t, "check", "--format", "yaml", dir)
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	if !strings.Contains(out, "kind: TypeError") || !strings.Contains(out, "code: TYPE_MISMATCH") {
		t.Fatalf("expected yaml diagnostics, got:\n%s", out)
	}
}

func TestParseDump(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"main.gk": "func main() -> int { return undefined; }",
	})

	out, err := execute(t, "parse", "--dump", dir)
	if err != nil {
		t.Fatalf("parse must not type-check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "FunctionDefinition main") || !strings.Contains(out, "Ident undefined") {
		t.Fatalf("expected AST outline, got:\n%s", out)
	}
}

func TestParseSyntaxError(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"broken.gk": "let x = (1 + 2;",
	})

	out, err := execute(t, "parse", dir)
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	if !strings.Contains(out, "ParseError: expected ')', found ';'") {
		t.Fatalf("expected syntax error, got:\n%s", out)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := execute(t, "version", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "gecko v"+Version) {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestLSPShutdown(t *testing.T) {
	shutdown := `{"jsonrpc":"2.0","id":1,"method":"shutdown"}`
	exit := `{"jsonrpc":"2.0","method":"exit"}`
	in := fmt.Sprintf("Content-Length: %d\r\n\r\n%sContent-Length: %d\r\n\r\n%s",
		len(shutdown), shutdown, len(exit), exit)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(in))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"lsp", "--log-level", "error"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Content-Length: ") || !strings.Contains(out.String(), `"id":1`) {
		t.Fatalf("expected a framed shutdown response, got %q", out.String())
	}
}

func TestCollectFiles(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"b.gk":         "",
		"a.gk":         "",
		".hidden/c.gk": "",
		"nested/d.gk":  "",
		"nested/e.txt": "",
	})

	files, err := collectFiles([]string{dir})
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if got := strings.Join(rel, ","); got != "a.gk,b.gk,nested/d.gk" {
		t.Fatalf("unexpected files %s", got)
	}

	if _, err := collectFiles([]string{t.TempDir()}); err == nil {
		t.Fatalf("expected error for a directory without sources")
	}
}
