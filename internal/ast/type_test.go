package ast

import "testing"

func TestTypeFromName(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"bool", TypeBool},
		{"char", TypeChar},
		{"int", TypeInt},
		{"float", TypeFloat},
		{"str", TypeString},
		{"Point", DefinedType("Point")},
		{"string", DefinedType("string")},
	}

	for _, tt := range tests {
		got := TypeFromName(tt.name)
		if !got.Equal(tt.want) {
			t.Fatalf("TypeFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if got.String() != tt.name {
			t.Fatalf("round trip of %q produced %q", tt.name, got.String())
		}
	}
}

func TestTypeEqual(t *testing.T) {
	if !TypeInt.Equal(TypeFromName("int")) {
		t.Fatalf("int should equal int")
	}
	if TypeInt.Equal(TypeFloat) {
		t.Fatalf("int should not equal float")
	}
	if !DefinedType("A").Equal(DefinedType("A")) {
		t.Fatalf("defined types with the same name should be equal")
	}
	if DefinedType("A").Equal(DefinedType("B")) {
		t.Fatalf("defined types with different names should differ")
	}
	if (Type{Fundamental: Integer, Name: "ignored"}).Equal(TypeInt) == false {
		t.Fatalf("names are ignored for built-in types")
	}
}
