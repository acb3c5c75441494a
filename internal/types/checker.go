// Package types implements gecko's symbol scopes and type checker.
package types

import (
	"github.com/gecko-lang/gecko/internal/ast"
)

// Checker performs type checking on the AST.
type Checker struct {
	GlobalScope *Scope
	Errors      ErrorList
}

// NewChecker creates a new type checker.
func NewChecker() *Checker {
	return &Checker{
		GlobalScope: NewScope(nil),
	}
}

// Check validates the types in the given file. Independent statements are
// all checked; the returned list holds every error found, or nil.
func (c *Checker) Check(file *ast.File) ErrorList {
	c.checkStmts(c.GlobalScope, file.Stmts)
	if len(c.Errors) == 0 {
		return nil
	}
	return c.Errors
}

// CheckExpr type-checks a single expression against scope and annotates it.
func CheckExpr(scope *Scope, expr ast.Expr) (Type, error) {
	c := &Checker{GlobalScope: scope}
	return c.checkExpr(scope, expr)
}

func (c *Checker) report(err error) {
	c.Errors.add(err)
}

// checkStmts hoists the function signatures in stmts and then checks each
// statement in order, collecting errors.
func (c *Checker) checkStmts(scope *Scope, stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if fn, ok := stmt.(*ast.FunctionDefinition); ok {
			c.report(c.hoist(scope, fn))
		}
	}
	for _, stmt := range stmts {
		c.report(c.checkStmt(scope, stmt))
	}
}

func (c *Checker) resolveType(spec *ast.TypeSpecifier) Type {
	t := ast.TypeFromName(spec.Ident.Name)
	spec.Ident.SetResolvedType(t)
	return t
}
