package ast

import "fmt"

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch. Tokens are not
// visited.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns the direct child nodes of node in source order, leaving
// out tokens. It panics on a node type outside this package.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *File:
		return stmtNodes(n.Stmts)

	case *Block:
		return stmtNodes(n.Stmts)

	case *FunctionDefinition:
		return []Node{n.Signature, n.Body}

	case *Signature:
		return []Node{n.Ident, n.Params, n.Output}

	case *ParameterList:
		nodes := make([]Node, 0, len(n.Entries))
		for _, entry := range n.Entries {
			nodes = append(nodes, entry.Param)
		}
		return nodes

	case *Parameter:
		return []Node{n.Ident, n.Type}

	case *Output:
		return []Node{n.Type}

	case *TypeSpecifier:
		return []Node{n.Ident}

	case *ReturnStatement:
		return []Node{n.Value}

	case *ExpressionStatement:
		return []Node{n.Expr}

	case *VariableDeclaration:
		return []Node{n.Ident, n.Type}

	case *VariableInitialisation:
		if n.Type != nil {
			return []Node{n.Ident, n.Type, n.Value}
		}
		return []Node{n.Ident, n.Value}

	case *BinaryOperator:
		return []Node{n.Left, n.Right}

	case *Term:
		return []Node{n.Expr}

	case *Ident, *BoolLit, *CharLit, *IntegerLit, *FloatLit, *StringLit, *Token:
		return nil

	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", node))
	}
}

func stmtNodes(stmts []Stmt) []Node {
	nodes := make([]Node, 0, len(stmts))
	for _, stmt := range stmts {
		nodes = append(nodes, stmt)
	}
	return nodes
}

// Inspect returns every node under root in pre-order.
func Inspect(root Node) []Node {
	var nodes []Node
	Walk(root, func(n Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
