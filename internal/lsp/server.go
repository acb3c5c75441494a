// Package lsp serves gecko diagnostics, hover, go-to-definition and
// completion over the Language Server Protocol on a byte stream.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/textproto"
	"strconv"
	"strings"
	"sync"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/driver"
	"github.com/gecko-lang/gecko/internal/logs"
	"github.com/gecko-lang/gecko/internal/source"
)

// Server represents the LSP server.
type Server struct {
	// Documents tracks open files by URI
	Documents map[string]*Document
	mu        sync.RWMutex

	driver  *driver.Driver
	logger  *slog.Logger
	version string

	out   io.Writer
	outMu sync.Mutex

	rootPath string
}

// Document is an open file and the outcome of its last compilation. File is
// nil while the text does not parse.
type Document struct {
	URI         string
	Content     string
	Version     int
	File        *ast.File
	Diagnostics []diag.Diagnostic
}

// NewServer creates a server compiling documents with d. version is reported
// to the client in the initialize response.
func NewServer(d *driver.Driver, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = logs.Discard()
	}
	return &Server{
		Documents: make(map[string]*Document),
		driver:    d,
		logger:    logger.With("component", "lsp"),
		version:   version,
	}
}

// Run reads framed JSON-RPC messages from in and writes responses and
// notifications to out until in is exhausted, the client sends exit, or ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.out = out
	reader := bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := readMessage(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			s.logger.Warn("malformed message", "error", err)
			continue
		}
		if msg.Method == "exit" {
			return nil
		}

		if response := s.handleMessage(ctx, &msg); response != nil {
			if err := s.send(response); err != nil {
				return err
			}
		}
	}
}

// readMessage reads one Content-Length framed message body.
func readMessage(r *bufio.Reader) ([]byte, error) {
	header, err := textproto.NewReader(r).ReadMIMEHeader()
	if err != nil {
		if errors.Is(err, io.EOF) && len(header) == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	length, err := strconv.Atoi(strings.TrimSpace(header.Get("Content-Length")))
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid Content-Length header %q", header.Get("Content-Length"))
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	return body, nil
}

// send writes msg with its Content-Length header.
func (s *Server) send(msg *jsonrpcMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()

	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// handleMessage processes a JSON-RPC message and returns a response, or nil
// for notifications.
func (s *Server) handleMessage(ctx context.Context, msg *jsonrpcMessage) *jsonrpcMessage {
	s.logger.Debug("message", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "textDocument/didOpen":
		s.handleDidOpen(ctx, msg)
		return nil
	case "textDocument/didChange":
		s.handleDidChange(ctx, msg)
		return nil
	case "textDocument/didClose":
		s.handleDidClose(msg)
		return nil
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "shutdown":
		return result(msg, nil)
	default:
		if msg.ID != nil {
			return failure(msg, codeMethodNotFound, "Method not found: %s", msg.Method)
		}
		return nil
	}
}

func result(msg *jsonrpcMessage, v any) *jsonrpcMessage {
	return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID, Result: v}
}

func failure(msg *jsonrpcMessage, code int, format string, args ...any) *jsonrpcMessage {
	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Error: &jsonrpcError{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		},
	}
}

func (s *Server) handleInitialize(msg *jsonrpcMessage) *jsonrpcMessage {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return failure(msg, codeInvalidParams, "Invalid params: %v", err)
	}

	if params.RootURI != "" {
		s.rootPath = uriToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.rootPath = params.RootPath
	}
	s.logger.Info("initialize", "root", s.rootPath)

	return result(msg, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:   1, // full
			CompletionProvider: map[string]any{},
			HoverProvider:      true,
			DefinitionProvider: true,
		},
		ServerInfo: ServerInfo{
			Name:    "gecko-lsp",
			Version: s.version,
		},
	})
}

func (s *Server) handleDidOpen(ctx context.Context, msg *jsonrpcMessage) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("failed to parse didOpen params", "error", err)
		return
	}

	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}
	s.updateDocument(ctx, doc)

	s.mu.Lock()
	s.Documents[doc.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(doc)
}

func (s *Server) handleDidChange(ctx context.Context, msg *jsonrpcMessage) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("failed to parse didChange params", "error", err)
		return
	}
	if len(params.ContentChanges) == 0 {
		return
	}

	s.mu.RLock()
	old, ok := s.Documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok {
		return
	}

	doc := &Document{
		URI:     old.URI,
		Content: params.ContentChanges[len(params.ContentChanges)-1].Text,
		Version: params.TextDocument.Version,
	}
	s.updateDocument(ctx, doc)

	s.mu.Lock()
	s.Documents[doc.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(doc)
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("failed to parse didClose params", "error", err)
		return
	}

	s.mu.Lock()
	delete(s.Documents, params.TextDocument.URI)
	s.mu.Unlock()
}

// document returns the open document for uri, or nil.
func (s *Server) document(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Documents[uri]
}

// updateDocument parses and type checks doc.
func (s *Server) updateDocument(ctx context.Context, doc *Document) {
	res := s.driver.Compile(ctx, driver.Unit{
		Name:   uriToPath(doc.URI),
		Source: doc.Content,
	})
	if res.Err != nil {
		s.logger.Error("compile failed", "uri", doc.URI, "error", res.Err)
	}
	doc.File = res.File
	doc.Diagnostics = res.Diagnostics
}

// publishDiagnostics sends doc's diagnostics to the client.
func (s *Server) publishDiagnostics(doc *Document) {
	params := PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     doc.Version,
		Diagnostics: make([]Diagnostic, 0, len(doc.Diagnostics)),
	}
	for _, d := range doc.Diagnostics {
		params.Diagnostics = append(params.Diagnostics, Diagnostic{
			Range:    toRange(d.Span),
			Severity: diagnosticSeverity(d.Severity),
			Code:     string(d.Code),
			Source:   "gecko",
			Message:  fmt.Sprintf("%s: %s", d.Kind, d.Message),
		})
	}

	raw, err := json.Marshal(params)
	if err != nil {
		s.logger.Error("failed to marshal diagnostics", "error", err)
		return
	}
	notification := &jsonrpcMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  raw,
	}
	if err := s.send(notification); err != nil {
		s.logger.Error("failed to publish diagnostics", "uri", doc.URI, "error", err)
	}
}

func diagnosticSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SeverityWarning:
		return 2
	case diag.SeverityNote:
		return 3
	default:
		return 1
	}
}

// toRange converts a span to a zero-based LSP range.
func toRange(span source.Span) Range {
	return Range{
		Start: toPosition(span.Start),
		End:   toPosition(span.End),
	}
}

func toPosition(lc source.LineColumn) Position {
	return Position{
		Line:      max(lc.Line-1, 0),
		Character: max(lc.Column-1, 0),
	}
}

// offsetOf converts an LSP position into a byte offset into content.
// Positions past the end of a line clamp to its newline.
func offsetOf(content string, pos Position) int {
	line, col := 0, 0
	for i, r := range content {
		if line == pos.Line && (col == pos.Character || r == '\n') {
			return i
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return len(content)
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	path, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return uri
	}
	// file:///C:/x on Windows
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return path
}
