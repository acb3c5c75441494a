package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/driver"
)

const sample = "func add(a: int, b: int) -> int {\n" +
	"\tlet sum = a + b;\n" +
	"\treturn sum;\n" +
	"}\n" +
	"let total: float = 1.5;\n"

const sampleURI = "file:///work/main.gk"

func openDoc(t *testing.T, src string) *Document {
	t.Helper()
	s := NewServer(driver.New(driver.Options{}), nil, "test")
	doc := &Document{URI: sampleURI, Content: src}
	s.updateDocument(context.Background(), doc)
	return doc
}

func frame(t *testing.T, msg map[string]any) string {
	t.Helper()
	msg["jsonrpc"] = "2.0"
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data)
}

func readFrames(t *testing.T, out *bytes.Buffer) []jsonrpcMessage {
	t.Helper()
	r := bufio.NewReader(out)
	var msgs []jsonrpcMessage
	for {
		body, err := readMessage(r)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func TestHover(t *testing.T) {
	doc := openDoc(t, sample)
	if diag.HasErrors(doc.Diagnostics) {
		t.Fatalf("unexpected diagnostics: %v", doc.Diagnostics)
	}

	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"function name", Position{0, 6}, "func add(a: int, b: int) -> int"},
		{"parameter use", Position{1, 11}, "a: int"},
		{"inferred local", Position{2, 9}, "let sum: int"},
		{"binary operator", Position{1, 13}, "int"},
		{"annotated global", Position{4, 5}, "let total: float"},
		{"float literal", Position{4, 20}, "float"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := getHover(doc, tt.pos)
			if h == nil {
				t.Fatalf("expected hover at %v", tt.pos)
			}
			want := "```gecko\n" + tt.want + "\n```"
			if h.Contents.Value != want {
				t.Fatalf("expected %q, got %q", want, h.Contents.Value)
			}
		})
	}
}

func TestHoverOnTypeSpecifier(t *testing.T) {
	doc := openDoc(t, sample)
	// `int` in the parameter list names a type, not a binding.
	h := getHover(doc, Position{0, 13})
	if h == nil || h.Contents.Value != "```gecko\nint\n```" {
		t.Fatalf("expected the resolved type, got %+v", h)
	}
	if loc := findDefinition(doc, Position{0, 13}); loc != nil {
		t.Fatalf("type names have no definition, got %+v", loc)
	}
}

func TestFindDefinition(t *testing.T) {
	doc := openDoc(t, sample)

	tests := []struct {
		name string
		pos  Position
		want Range
	}{
		{"local", Position{2, 9}, Range{Position{1, 5}, Position{1, 8}}},
		{"parameter", Position{1, 15}, Range{Position{0, 17}, Position{0, 18}}},
		{"declaration itself", Position{4, 6}, Range{Position{4, 4}, Position{4, 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := findDefinition(doc, tt.pos)
			if loc == nil {
				t.Fatalf("expected a definition at %v", tt.pos)
			}
			if loc.URI != sampleURI {
				t.Fatalf("expected uri %s, got %s", sampleURI, loc.URI)
			}
			if loc.Range != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, loc.Range)
			}
		})
	}
}

func TestFindDefinitionHoistedFunction(t *testing.T) {
	doc := openDoc(t, "let g = f;\nfunc f() -> int { return 1; }\n")
	if doc.File == nil {
		t.Fatalf("expected the document to parse: %v", doc.Diagnostics)
	}
	loc := findDefinition(doc, Position{0, 8})
	if loc == nil {
		t.Fatalf("expected the hoisted function")
	}
	want := Range{Position{1, 5}, Position{1, 6}}
	if loc.Range != want {
		t.Fatalf("expected %+v, got %+v", want, loc.Range)
	}
}

func TestFindDefinitionSkipsLaterVariables(t *testing.T) {
	// A use before its declaration has nothing to jump to.
	doc := openDoc(t, "let b: int = late;\nlet late: int = 1;\n")
	if loc := findDefinition(doc, Position{0, 14}); loc != nil {
		t.Fatalf("expected no definition, got %+v", loc)
	}
}

func TestCompletions(t *testing.T) {
	doc := openDoc(t, sample)

	list := completions(doc, Position{2, 1})
	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}

	for _, want := range []string{"sum", "a", "b", "add", "let", "int", "str"} {
		if !slices.Contains(labels, want) {
			t.Errorf("expected completion %q in %v", want, labels)
		}
	}
	if slices.Contains(labels, "total") {
		t.Errorf("total is declared after the cursor and should not be offered")
	}
	// Innermost names come first.
	if labels[0] != "sum" {
		t.Errorf("expected sum first, got %v", labels)
	}
}

func TestCompletionsWithoutTree(t *testing.T) {
	doc := openDoc(t, "let x = ;")
	if doc.File != nil {
		t.Fatalf("expected the document not to parse")
	}
	list := completions(doc, Position{0, 8})
	if len(list.Items) != len(keywords)+len(builtinTypes) {
		t.Fatalf("expected only keywords and types, got %d items", len(list.Items))
	}
}

func TestServerSession(t *testing.T) {
	src := sample + "let bad: int = true;\n"

	var in strings.Builder
	in.WriteString(frame(t, map[string]any{"id": 1, "method": "initialize", "params": map[string]any{"rootUri": "file:///work"}}))
	in.WriteString(frame(t, map[string]any{"method": "initialized", "params": map[string]any{}}))
	in.WriteString(frame(t, map[string]any{"method": "textDocument/didOpen", "params": map[string]any{
		"textDocument": map[string]any{"uri": sampleURI, "languageId": "gecko", "version": 1, "text": src},
	}}))
	in.WriteString(frame(t, map[string]any{"id": 2, "method": "textDocument/hover", "params": map[string]any{
		"textDocument": map[string]any{"uri": sampleURI},
		"position":     map[string]any{"line": 2, "character": 9},
	}}))
	in.WriteString(frame(t, map[string]any{"id": 3, "method": "textDocument/rename", "params": map[string]any{}}))
	in.WriteString(frame(t, map[string]any{"id": 4, "method": "shutdown"}))
	in.WriteString(frame(t, map[string]any{"method": "exit"}))

	s := NewServer(driver.New(driver.Options{}), nil, "1.2.3")
	var out bytes.Buffer
	if err := s.Run(context.Background(), strings.NewReader(in.String()), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.rootPath != "/work" {
		t.Fatalf("expected root path /work, got %q", s.rootPath)
	}

	msgs := readFrames(t, &out)
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}

	raw, _ := json.Marshal(msgs[0].Result)
	var initResult InitializeResult
	if err := json.Unmarshal(raw, &initResult); err != nil {
		t.Fatalf("decode initialize result: %v", err)
	}
	if !initResult.Capabilities.HoverProvider || initResult.ServerInfo.Version != "1.2.3" {
		t.Fatalf("unexpected initialize result: %+v", initResult)
	}

	if msgs[1].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected diagnostics notification, got %q", msgs[1].Method)
	}
	var published PublishDiagnosticsParams
	if err := json.Unmarshal(msgs[1].Params, &published); err != nil {
		t.Fatalf("decode diagnostics: %v", err)
	}
	if len(published.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", published.Diagnostics)
	}
	d := published.Diagnostics[0]
	if d.Code != string(diag.CodeTypeMismatch) || d.Severity != 1 || d.Range.Start.Line != 5 {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}

	hover, _ := json.Marshal(msgs[2].Result)
	if !strings.Contains(string(hover), "let sum: int") {
		t.Fatalf("unexpected hover: %s", hover)
	}

	if msgs[3].Error == nil || msgs[3].Error.Code != codeMethodNotFound {
		t.Fatalf("expected method not found, got %+v", msgs[3])
	}
	if msgs[4].Error != nil {
		t.Fatalf("unexpected shutdown error: %+v", msgs[4].Error)
	}
}

func TestDidChangeRechecks(t *testing.T) {
	s := NewServer(driver.New(driver.Options{}), nil, "test")
	var out bytes.Buffer
	s.out = &out
	ctx := context.Background()

	open, _ := json.Marshal(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{URI: sampleURI, Text: "let x: int = 1;"}})
	s.handleMessage(ctx, &jsonrpcMessage{Method: "textDocument/didOpen", Params: open})

	change, _ := json.Marshal(DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: sampleURI, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "let x: int = 1;\ny;"}},
	})
	s.handleMessage(ctx, &jsonrpcMessage{Method: "textDocument/didChange", Params: change})

	doc := s.document(sampleURI)
	if doc == nil || doc.Version != 2 {
		t.Fatalf("expected version 2 document, got %+v", doc)
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Code != diag.CodeTypeUndefinedIdentifier {
		t.Fatalf("expected an undefined identifier, got %v", doc.Diagnostics)
	}

	closeParams, _ := json.Marshal(map[string]any{"textDocument": map[string]any{"uri": sampleURI}})
	s.handleMessage(ctx, &jsonrpcMessage{Method: "textDocument/didClose", Params: closeParams})
	if s.document(sampleURI) != nil {
		t.Fatalf("expected document to be closed")
	}

	if got := len(readFrames(t, &out)); got != 2 {
		t.Fatalf("expected two diagnostics notifications, got %d", got)
	}
}

func TestOffsetOf(t *testing.T) {
	content := "ab\nçd\n"
	tests := []struct {
		pos  Position
		want int
	}{
		{Position{0, 0}, 0},
		{Position{0, 1}, 1},
		{Position{0, 9}, 2},
		{Position{1, 1}, 5}, // ç is two bytes
		{Position{7, 0}, len(content)},
	}
	for _, tt := range tests {
		if got := offsetOf(content, tt.pos); got != tt.want {
			t.Errorf("offsetOf(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestURIToPath(t *testing.T) {
	tests := map[string]string{
		"file:///home/a.gk": "/home/a.gk",
		"file:///C:/a.gk":   "C:/a.gk",
		"untitled:1":        "untitled:1",
	}
	for in, want := range tests {
		if got := uriToPath(in); got != want {
			t.Errorf("uriToPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadMessageRejectsBadLength(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Length: nope\r\n\r\n{}"))
	if _, err := readMessage(r); err == nil {
		t.Fatalf("expected an error for a bad Content-Length")
	}
}
