package lsp

import (
	"encoding/json"

	"github.com/gecko-lang/gecko/internal/ast"
)

func (s *Server) handleDefinition(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return failure(msg, codeInvalidParams, "Invalid params: %v", err)
	}

	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.File == nil {
		return result(msg, nil)
	}
	return result(msg, findDefinition(doc, params.Position))
}

// findDefinition locates the name bound by the declaration of the identifier
// under pos. Everything lives in one file, so the location is always in doc.
func findDefinition(doc *Document, pos Position) *Location {
	path := pathTo(doc.File, offsetOf(doc.Content, pos))
	id, ok := path[len(path)-1].(*ast.Ident)
	if !ok {
		return nil
	}

	d, ok := resolve(path, id)
	if !ok {
		return nil
	}
	return &Location{
		URI:   doc.URI,
		Range: toRange(d.ident.Span()),
	}
}
