package types

import (
	"sort"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
)

// Type is the checker's view of ast.Type.
type Type = ast.Type

// Symbol is a named entity bound in a scope: a *Variable or a *Function.
type Symbol interface {
	Name() string
	symbol()
}

// Variable is a `let` binding or a parameter.
type Variable struct {
	Ident       *ast.Ident
	Type        Type
	Initialized bool
}

func (v *Variable) Name() string { return v.Ident.Name }
func (*Variable) symbol()        {}

// Param is one entry of a function signature.
type Param struct {
	Name string
	Type Type
}

// Function is a function signature. HasBody is false while only the hoisted
// signature is known.
type Function struct {
	Ident   *ast.Ident
	Params  []Param
	Return  Type
	HasBody bool
}

func (f *Function) Name() string { return f.Ident.Name }
func (*Function) symbol()        {}

// Scope represents a lexical scope containing symbols. Lookups walk outward
// through Parent until a binding is found.
type Scope struct {
	Parent  *Scope
	symbols map[string]Symbol

	// fn is set on the outermost scope of a function body.
	fn *Function
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		symbols: make(map[string]Symbol),
	}
}

// NewFunctionScope creates the scope for the body of fn.
func NewFunctionScope(parent *Scope, fn *Function) *Scope {
	s := NewScope(parent)
	s.fn = fn
	return s
}

// DeclareVariable binds id to an uninitialised variable of type t,
// replacing any symbol of the same name in this scope.
func (s *Scope) DeclareVariable(id *ast.Ident, t Type) *Variable {
	v := &Variable{Ident: id, Type: t}
	s.symbols[id.Name] = v
	return v
}

// InitialiseVariable binds id to an initialised variable of type t,
// replacing any symbol of the same name in this scope.
func (s *Scope) InitialiseVariable(id *ast.Ident, t Type) *Variable {
	v := &Variable{Ident: id, Type: t, Initialized: true}
	s.symbols[id.Name] = v
	return v
}

// DefineFunction binds a function with a body.
func (s *Scope) DefineFunction(id *ast.Ident, params []Param, ret Type) *Function {
	fn := &Function{Ident: id, Params: params, Return: ret, HasBody: true}
	s.symbols[id.Name] = fn
	return fn
}

// DeclareFunction binds a function signature whose body has not been
// checked yet.
func (s *Scope) DeclareFunction(id *ast.Ident, params []Param, ret Type) *Function {
	fn := &Function{Ident: id, Params: params, Return: ret}
	s.symbols[id.Name] = fn
	return fn
}

// LookupLocal finds a symbol in this scope only.
func (s *Scope) LookupLocal(name string) Symbol {
	return s.symbols[name]
}

// Lookup finds a symbol in the current scope or any parent scope. It also
// returns the scope that holds the binding.
func (s *Scope) Lookup(name string) (Symbol, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, cur
		}
	}
	return nil, nil
}

// LookupVariableType resolves id to the type of an initialised variable.
func (s *Scope) LookupVariableType(id *ast.Ident) (Type, error) {
	sym, _ := s.Lookup(id.Name)
	switch sym := sym.(type) {
	case nil:
		return Type{}, newError(NameError, diag.CodeTypeUndefinedIdentifier, id.Name, id.Span(),
			"undefined name '%s'", id.Name)
	case *Function:
		return Type{}, newError(TypeError, diag.CodeTypeNotAVariable, id.Name, id.Span(),
			"'%s' is a function and is not a variable", id.Name)
	case *Variable:
		if !sym.Initialized {
			return Type{}, newError(UninitializedError, diag.CodeTypeUninitialized, id.Name, id.Span(),
				"'%s' is used before it is initialised", id.Name)
		}
		return sym.Type, nil
	}
	panic("types: unknown symbol")
}

// Function returns the function whose body s belongs to, or nil at file level.
func (s *Scope) Function() *Function {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.fn != nil {
			return cur.fn
		}
	}
	return nil
}

// owns reports whether other is s or an enclosing scope of s inside the same
// function body.
func (s *Scope) owns(other *Scope) bool {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
		if cur.fn != nil {
			return false
		}
	}
	return false
}

// Symbols returns the symbols bound directly in s, sorted by name.
func (s *Scope) Symbols() []Symbol {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Symbol, 0, len(names))
	for _, name := range names {
		out = append(out, s.symbols[name])
	}
	return out
}
