package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of the tree rooted at node, one node per
// line with its span and, for checked expressions, its type.
func Fprint(w io.Writer, node Node) error {
	return fprint(w, node, 0)
}

func fprint(w io.Writer, node Node, depth int) error {
	line := strings.Repeat("  ", depth) + describe(node)
	if e, ok := node.(Expr); ok {
		if t, ok := e.ResolvedType(); ok {
			line += " : " + t.String()
		}
	}
	if _, err := fmt.Fprintf(w, "%s @%s-%s\n", line, node.Span().Start, node.Span().End); err != nil {
		return err
	}
	for _, child := range Children(node) {
		if err := fprint(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func describe(node Node) string {
	switch n := node.(type) {
	case *File:
		return "File"
	case *Block:
		return "Block"
	case *FunctionDefinition:
		return "FunctionDefinition " + n.Name()
	case *Signature:
		return "Signature"
	case *ParameterList:
		return fmt.Sprintf("ParameterList (%d)", len(n.Entries))
	case *Parameter:
		return "Parameter"
	case *Output:
		return "Output"
	case *TypeSpecifier:
		return "TypeSpecifier"
	case *ReturnStatement:
		return "ReturnStatement"
	case *ExpressionStatement:
		return "ExpressionStatement"
	case *VariableDeclaration:
		return "VariableDeclaration"
	case *VariableInitialisation:
		return "VariableInitialisation"
	case *BinaryOperator:
		return "BinaryOperator " + n.Op.Value
	case *Term:
		return "Term"
	case *Ident:
		return "Ident " + n.Name
	case *BoolLit:
		return fmt.Sprintf("Boolean %t", n.Value)
	case *CharLit:
		return "Character " + n.Raw
	case *IntegerLit:
		return "Integer " + n.Text
	case *FloatLit:
		return "Float " + n.Text
	case *StringLit:
		return "String " + n.Raw
	case *Token:
		return "Token " + n.Value
	default:
		return fmt.Sprintf("%T", node)
	}
}
