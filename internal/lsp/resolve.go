package lsp

import (
	"fmt"
	"strings"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/source"
)

// declaration is the node that binds a name: a *ast.Parameter,
// *ast.VariableDeclaration, *ast.VariableInitialisation or
// *ast.FunctionDefinition.
type declaration struct {
	ident *ast.Ident
	node  ast.Node
}

// pathTo returns the nodes from root down to the innermost node covering
// offset.
func pathTo(root ast.Node, offset int) []ast.Node {
	path := []ast.Node{root}
	for node := root; ; {
		var next ast.Node
		for _, child := range ast.Children(node) {
			if covers(child.Span(), offset) {
				next = child
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		node = next
	}
}

func covers(span source.Span, offset int) bool {
	return span.Start.Offset <= offset && offset < span.End.Offset
}

// resolve finds the declaration id refers to. path must end in id.
func resolve(path []ast.Node, id *ast.Ident) (declaration, bool) {
	if len(path) >= 2 {
		switch n := path[len(path)-2].(type) {
		case *ast.Parameter:
			if n.Ident == id {
				return declaration{id, n}, true
			}
		case *ast.VariableDeclaration:
			if n.Ident == id {
				return declaration{id, n}, true
			}
		case *ast.VariableInitialisation:
			if n.Ident == id {
				return declaration{id, n}, true
			}
		case *ast.Signature:
			if n.Ident == id && len(path) >= 3 {
				return declaration{id, path[len(path)-3]}, true
			}
		case *ast.TypeSpecifier:
			return declaration{}, false
		}
	}

	for _, d := range visible(path, id.Span().Start.Offset) {
		if d.ident.Name == id.Name {
			return d, true
		}
	}
	return declaration{}, false
}

// visible lists the declarations in scope at offset, innermost first. A name
// shadowed by an inner declaration is listed once.
func visible(path []ast.Node, offset int) []declaration {
	var out []declaration
	seen := make(map[string]bool)
	add := func(d declaration) {
		if !seen[d.ident.Name] {
			seen[d.ident.Name] = true
			out = append(out, d)
		}
	}

	for i := len(path) - 1; i >= 0; i-- {
		switch n := path[i].(type) {
		case *ast.File:
			stmtDeclarations(n.Stmts, offset, add)
		case *ast.Block:
			stmtDeclarations(n.Stmts, offset, add)
		case *ast.FunctionDefinition:
			for _, p := range n.Signature.Params.Params() {
				add(declaration{p.Ident, p})
			}
		}
	}
	return out
}

// stmtDeclarations reports the names a statement list binds before offset.
// Functions are hoisted and always visible; variables only once their
// statement has ended.
func stmtDeclarations(stmts []ast.Stmt, offset int, add func(declaration)) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDefinition:
			add(declaration{s.Signature.Ident, s})
		case *ast.VariableDeclaration:
			if s.Span().End.Offset <= offset {
				add(declaration{s.Ident, s})
			}
		case *ast.VariableInitialisation:
			if s.Span().End.Offset <= offset {
				add(declaration{s.Ident, s})
			}
		}
	}
}

// detail renders the declaration the way it would be written.
func (d declaration) detail() string {
	switch n := d.node.(type) {
	case *ast.Parameter:
		return fmt.Sprintf("%s: %s", n.Ident.Name, n.Type.Ident.Name)
	case *ast.VariableDeclaration:
		return fmt.Sprintf("let %s: %s", n.Ident.Name, n.Type.Ident.Name)
	case *ast.VariableInitialisation:
		if n.Type != nil {
			return fmt.Sprintf("let %s: %s", n.Ident.Name, n.Type.Ident.Name)
		}
		if t, ok := n.Value.ResolvedType(); ok {
			return fmt.Sprintf("let %s: %s", n.Ident.Name, t)
		}
		return "let " + n.Ident.Name
	case *ast.FunctionDefinition:
		return signature(n.Signature)
	default:
		return d.ident.Name
	}
}

func (d declaration) completionKind() int {
	if _, ok := d.node.(*ast.FunctionDefinition); ok {
		return completionKindFunction
	}
	return completionKindVariable
}

func signature(sig *ast.Signature) string {
	params := sig.Params.Params()
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Ident.Name, p.Type.Ident.Name)
	}
	return fmt.Sprintf("func %s(%s) -> %s",
		sig.Ident.Name, strings.Join(parts, ", "), sig.Output.Type.Ident.Name)
}
