package types_test

import (
	"errors"
	"testing"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/source"
	"github.com/gecko-lang/gecko/internal/types"
)

func ident(name string) *ast.Ident {
	return ast.NewIdent(name, source.Span{})
}

func lookupErr(t *testing.T, scope *types.Scope, name string) *types.Error {
	t.Helper()

	_, err := scope.LookupVariableType(ident(name))
	var terr *types.Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *types.Error looking up %q, got %v", name, err)
	}
	return terr
}

func TestScopeLookupVariableType(t *testing.T) {
	scope := types.NewScope(nil)
	scope.DeclareVariable(ident("pending"), ast.TypeInt)
	scope.InitialiseVariable(ident("ready"), ast.TypeFloat)
	scope.DefineFunction(ident("f"), nil, ast.TypeInt)

	got, err := scope.LookupVariableType(ident("ready"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(ast.TypeFloat) {
		t.Fatalf("expected float, got %s", got)
	}

	tests := []struct {
		name string
		kind types.ErrorKind
	}{
		{"missing", types.NameError},
		{"pending", types.UninitializedError},
		{"f", types.TypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lookupErr(t, scope, tt.name)
			if err.Kind != tt.kind {
				t.Fatalf("expected %s, got %s (%s)", tt.kind, err.Kind, err.Message)
			}
			if err.Name != tt.name {
				t.Fatalf("expected offending name %q, got %q", tt.name, err.Name)
			}
		})
	}
}

func TestScopeOverwritesSilently(t *testing.T) {
	scope := types.NewScope(nil)
	scope.InitialiseVariable(ident("x"), ast.TypeInt)
	scope.DeclareVariable(ident("x"), ast.TypeString)

	if err := lookupErr(t, scope, "x"); err.Kind != types.UninitializedError {
		t.Fatalf("expected redeclaration to reset initialisation, got %s", err.Kind)
	}

	scope.InitialiseVariable(ident("x"), ast.TypeString)
	got, err := scope.LookupVariableType(ident("x"))
	if err != nil || !got.Equal(ast.TypeString) {
		t.Fatalf("expected str, got %s (%v)", got, err)
	}
}

func TestScopeChain(t *testing.T) {
	global := types.NewScope(nil)
	global.InitialiseVariable(ident("g"), ast.TypeBool)

	fn := global.DeclareFunction(ident("main"), []types.Param{{Name: "a", Type: ast.TypeInt}}, ast.TypeInt)
	if fn.HasBody {
		t.Fatalf("declared function must not have a body yet")
	}
	body := types.NewFunctionScope(global, fn)
	body.InitialiseVariable(ident("g"), ast.TypeChar)

	got, err := body.LookupVariableType(ident("g"))
	if err != nil || !got.Equal(ast.TypeChar) {
		t.Fatalf("expected inner binding to shadow outer, got %s (%v)", got, err)
	}
	got, err = global.LookupVariableType(ident("g"))
	if err != nil || !got.Equal(ast.TypeBool) {
		t.Fatalf("expected outer binding untouched, got %s (%v)", got, err)
	}

	if sym, owner := body.Lookup("main"); sym == nil || owner != global {
		t.Fatalf("expected main to resolve in the global scope")
	}
	if body.LookupLocal("main") != nil {
		t.Fatalf("LookupLocal must not walk outward")
	}
	if body.Function() != fn || global.Function() != nil {
		t.Fatalf("unexpected enclosing function")
	}

	defined := global.DefineFunction(ident("main"), fn.Params, fn.Return)
	if !defined.HasBody {
		t.Fatalf("defined function must have a body")
	}
}

func TestScopeSymbolsSorted(t *testing.T) {
	scope := types.NewScope(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		scope.InitialiseVariable(ident(name), ast.TypeInt)
	}

	var names []string
	for _, sym := range scope.Symbols() {
		names = append(names, sym.Name())
	}
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
