package types

import (
	"fmt"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
)

func (c *Checker) checkStmt(scope *Scope, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.FunctionDefinition:
		return c.checkFunctionDefinition(scope, s)
	case *ast.ReturnStatement:
		return c.checkReturn(scope, s)
	case *ast.ExpressionStatement:
		_, err := c.checkExpr(scope, s.Expr)
		return err
	case *ast.VariableDeclaration:
		return c.checkVariableDeclaration(scope, s)
	case *ast.VariableInitialisation:
		return c.checkVariableInitialisation(scope, s)
	default:
		panic(fmt.Sprintf("types: unexpected statement %T", stmt))
	}
}

func redeclared(id *ast.Ident) *Error {
	return newError(TypeError, diag.CodeTypeRedeclared, id.Name, id.Span(),
		"'%s' is already declared in this scope", id.Name)
}

func (c *Checker) signature(sig *ast.Signature) ([]Param, Type) {
	params := make([]Param, 0, len(sig.Params.Entries))
	for _, p := range sig.Params.Params() {
		params = append(params, Param{Name: p.Ident.Name, Type: c.resolveType(p.Type)})
	}
	return params, c.resolveType(sig.Output.Type)
}

// hoist declares the signature of fn so that statements before the
// definition can see the name.
func (c *Checker) hoist(scope *Scope, fn *ast.FunctionDefinition) error {
	id := fn.Signature.Ident
	if scope.LookupLocal(id.Name) != nil {
		return redeclared(id)
	}
	params, ret := c.signature(fn.Signature)
	scope.DeclareFunction(id, params, ret)
	return nil
}

func (c *Checker) checkFunctionDefinition(scope *Scope, def *ast.FunctionDefinition) error {
	id := def.Signature.Ident
	params, ret := c.signature(def.Signature)

	// A definition that lost the hoisting race to an earlier binding of the
	// same name is checked in isolation and not bound.
	fn := &Function{Ident: id, Params: params, Return: ret}
	hoisted, _ := scope.LookupLocal(id.Name).(*Function)
	owned := hoisted != nil && hoisted.Ident == id
	if owned {
		fn = hoisted
	}

	body := NewFunctionScope(scope, fn)
	var errs ErrorList
	for _, p := range def.Signature.Params.Params() {
		if body.LookupLocal(p.Ident.Name) != nil {
			errs.add(newError(TypeError, diag.CodeTypeRedeclared, p.Ident.Name, p.Ident.Span(),
				"duplicate parameter '%s'", p.Ident.Name))
			continue
		}
		t, _ := p.Type.Ident.ResolvedType()
		body.InitialiseVariable(p.Ident, t)
	}

	c.checkStmts(body, def.Body.Stmts)

	if owned {
		scope.DefineFunction(id, params, ret)
	}
	return errs.Err()
}

func (c *Checker) checkReturn(scope *Scope, ret *ast.ReturnStatement) error {
	t, err := c.checkExpr(scope, ret.Value)
	fn := scope.Function()
	if fn == nil {
		return join(err, newError(TypeError, diag.CodeTypeReturnOutsideFunction, "return", ret.Return.Span(),
			"return statement outside of a function"))
	}
	if err != nil {
		return err
	}
	if !t.Equal(fn.Return) {
		return newError(TypeError, diag.CodeTypeReturnMismatch, fn.Name(), ret.Value.Span(),
			"return type mismatch: function '%s' returns %s, found %s", fn.Name(), fn.Return, t)
	}
	return nil
}

func (c *Checker) checkVariableDeclaration(scope *Scope, decl *ast.VariableDeclaration) error {
	t := c.resolveType(decl.Type)
	if scope.LookupLocal(decl.Ident.Name) != nil {
		return redeclared(decl.Ident)
	}
	scope.DeclareVariable(decl.Ident, t)
	return nil
}

func (c *Checker) checkVariableInitialisation(scope *Scope, init *ast.VariableInitialisation) error {
	var (
		annotated bool
		declared  Type
	)
	if init.Type != nil {
		annotated = true
		declared = c.resolveType(init.Type)
	}

	// The initializer is checked before the name is bound, so it sees any
	// outer binding the new variable shadows.
	t, err := c.checkExpr(scope, init.Value)
	if err != nil {
		if annotated {
			c.bind(scope, init.Ident, declared)
		}
		return err
	}

	if annotated && !declared.Equal(t) {
		c.bind(scope, init.Ident, declared)
		return newError(TypeError, diag.CodeTypeMismatch, init.Ident.Name, init.Value.Span(),
			"type mismatch: '%s' is declared as %s but initialised with %s", init.Ident.Name, declared, t)
	}
	if annotated {
		t = declared
	}

	// Re-binding is only allowed when it completes an uninitialised
	// declaration of the same type.
	if prev := scope.LookupLocal(init.Ident.Name); prev != nil {
		v, ok := prev.(*Variable)
		if !ok || v.Initialized || !v.Type.Equal(t) {
			return redeclared(init.Ident)
		}
	}
	c.bind(scope, init.Ident, t)
	return nil
}

func (c *Checker) bind(scope *Scope, id *ast.Ident, t Type) {
	if prev, ok := scope.LookupLocal(id.Name).(*Variable); ok && prev.Initialized {
		return
	}
	if _, ok := scope.LookupLocal(id.Name).(*Function); ok {
		return
	}
	id.SetResolvedType(t)
	scope.InitialiseVariable(id, t)
}
