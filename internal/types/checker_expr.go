package types

import (
	"fmt"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
)

// checkExpr computes the type of expr and records it on the node.
func (c *Checker) checkExpr(scope *Scope, expr ast.Expr) (Type, error) {
	t, err := c.exprType(scope, expr)
	if err != nil {
		return Type{}, err
	}
	expr.SetResolvedType(t)
	return t, nil
}

func (c *Checker) exprType(scope *Scope, expr ast.Expr) (Type, error) {
	switch e := expr.(type) {
	case *ast.BoolLit:
		return ast.TypeBool, nil
	case *ast.CharLit:
		return ast.TypeChar, nil
	case *ast.IntegerLit:
		return ast.TypeInt, nil
	case *ast.FloatLit:
		return ast.TypeFloat, nil
	case *ast.StringLit:
		return ast.TypeString, nil
	case *ast.Ident:
		return scope.LookupVariableType(e)
	case *ast.Term:
		return c.checkExpr(scope, e.Expr)
	case *ast.BinaryOperator:
		return c.checkBinary(scope, e)
	default:
		panic(fmt.Sprintf("types: unexpected expression %T", expr))
	}
}

// numericRank orders the numeric types for promotion. Zero means the type
// does not promote.
func numericRank(t Type) int {
	switch t.Fundamental {
	case ast.Float:
		return 3
	case ast.Integer:
		return 2
	case ast.Character:
		return 1
	default:
		return 0
	}
}

// promote returns the wider of two numeric types; ties keep the left.
func promote(left, right Type) (Type, bool) {
	l, r := numericRank(left), numericRank(right)
	if l == 0 || r == 0 {
		return Type{}, false
	}
	if r > l {
		return right, true
	}
	return left, true
}

func isString(t Type) bool { return t.Fundamental == ast.String }
func isBool(t Type) bool   { return t.Fundamental == ast.Boolean }

func (c *Checker) checkBinary(scope *Scope, e *ast.BinaryOperator) (Type, error) {
	op := e.Op.Value
	switch op {
	case "as":
		return c.checkCast(scope, e)
	case "=":
		return c.checkAssign(scope, e)
	}

	left, lerr := c.checkExpr(scope, e.Left)
	right, rerr := c.checkExpr(scope, e.Right)
	if lerr != nil || rerr != nil {
		return Type{}, join(lerr, rerr)
	}

	switch op {
	case "+", "-":
		if t, ok := promote(left, right); ok {
			return t, nil
		}
		if op == "+" && (isString(left) || isString(right)) {
			return ast.TypeString, nil
		}
	case "*", "/", ">", "<", ">=", "<=":
		if t, ok := promote(left, right); ok {
			return t, nil
		}
		// TODO: decide whether `*` with a string operand should require the
		// other side to be an integer repeat count.
		if op == "*" && (isString(left) || isString(right)) {
			return ast.TypeString, nil
		}
	case "&&", "||", "==", "!=":
		if isBool(left) && isBool(right) {
			return ast.TypeBool, nil
		}
	default:
		if t, ok := promote(left, right); ok {
			return t, nil
		}
	}

	return Type{}, newError(TypeError, diag.CodeTypeInvalidOperation, op, e.Op.Span(),
		"operator '%s' cannot be applied to %s and %s", op, left, right)
}

// checkCast handles `expr as type`. The target is taken verbatim; no
// representability check is made.
func (c *Checker) checkCast(scope *Scope, e *ast.BinaryOperator) (Type, error) {
	_, err := c.checkExpr(scope, e.Left)

	id, ok := e.Right.(*ast.Ident)
	if !ok {
		return Type{}, join(err, newError(TypeError, diag.CodeTypeExpectedTypeSpecifier, "as", e.Right.Span(),
			"type specifier expected after 'as'"))
	}
	if err != nil {
		return Type{}, err
	}

	target := ast.TypeFromName(id.Name)
	id.SetResolvedType(target)
	return target, nil
}

// checkAssign handles `name = expr`. The target only has to be declared;
// assigning initialises it when it belongs to the current function body.
func (c *Checker) checkAssign(scope *Scope, e *ast.BinaryOperator) (Type, error) {
	id, ok := e.Left.(*ast.Ident)
	if !ok {
		_, err := c.checkExpr(scope, e.Right)
		return Type{}, join(newError(TypeError, diag.CodeTypeInvalidAssignment, "=", e.Left.Span(),
			"left side of '=' must be a variable"), err)
	}

	var target *Variable
	sym, owner := scope.Lookup(id.Name)
	var lerr error
	switch sym := sym.(type) {
	case nil:
		lerr = newError(NameError, diag.CodeTypeUndefinedIdentifier, id.Name, id.Span(),
			"undefined name '%s'", id.Name)
	case *Function:
		lerr = newError(TypeError, diag.CodeTypeNotAVariable, id.Name, id.Span(),
			"cannot assign to '%s': it is a function and is not a variable", id.Name)
	case *Variable:
		target = sym
	}

	value, rerr := c.checkExpr(scope, e.Right)
	if lerr != nil || rerr != nil {
		return Type{}, join(lerr, rerr)
	}

	if !value.Equal(target.Type) {
		return Type{}, newError(TypeError, diag.CodeTypeMismatch, id.Name, e.Right.Span(),
			"cannot assign %s to '%s' of type %s", value, id.Name, target.Type)
	}
	if scope.owns(owner) {
		target.Initialized = true
	}
	id.SetResolvedType(target.Type)
	return target.Type, nil
}
