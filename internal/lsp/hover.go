package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/gecko-lang/gecko/internal/ast"
)

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return failure(msg, codeInvalidParams, "Invalid params: %v", err)
	}

	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.File == nil {
		return result(msg, nil)
	}
	return result(msg, getHover(doc, params.Position))
}

// getHover describes the identifier or expression under pos. Identifiers show
// their declaration; other expressions show the type the checker gave them.
func getHover(doc *Document, pos Position) *Hover {
	path := pathTo(doc.File, offsetOf(doc.Content, pos))
	node := path[len(path)-1]

	var text string
	if id, ok := node.(*ast.Ident); ok {
		if d, found := resolve(path, id); found {
			text = d.detail()
		}
	}
	if text == "" {
		expr, ok := node.(ast.Expr)
		if !ok {
			return nil
		}
		t, ok := expr.ResolvedType()
		if !ok {
			return nil
		}
		text = t.String()
	}

	r := toRange(node.Span())
	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("```gecko\n%s\n```", text),
		},
		Range: &r,
	}
}
