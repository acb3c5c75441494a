package lsp

import (
	"encoding/json"

	"github.com/gecko-lang/gecko/internal/ast"
)

var keywords = []string{"func", "let", "return", "as", "true", "false"}

var builtinTypes = []ast.Type{ast.TypeBool, ast.TypeChar, ast.TypeInt, ast.TypeFloat, ast.TypeString}

func (s *Server) handleCompletion(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return failure(msg, codeInvalidParams, "Invalid params: %v", err)
	}

	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return result(msg, CompletionList{Items: []CompletionItem{}})
	}
	return result(msg, completions(doc, params.Position))
}

// completions offers the names in scope at pos, then keywords and built-in
// types. Scope information is only available while the document parses.
func completions(doc *Document, pos Position) CompletionList {
	var items []CompletionItem

	if doc.File != nil {
		offset := offsetOf(doc.Content, pos)
		for _, d := range visible(pathTo(doc.File, offset), offset) {
			items = append(items, CompletionItem{
				Label:  d.ident.Name,
				Kind:   d.completionKind(),
				Detail: d.detail(),
			})
		}
	}

	for _, kw := range keywords {
		items = append(items, CompletionItem{Label: kw, Kind: completionKindKeyword})
	}
	for _, t := range builtinTypes {
		items = append(items, CompletionItem{Label: t.String(), Kind: completionKindStruct, Detail: "built-in type"})
	}

	return CompletionList{Items: items}
}
