package ast

// Fundamental is the tag of a built-in type.
type Fundamental int

const (
	Boolean Fundamental = iota
	Character
	Integer
	Float
	String
	Defined
)

// Type is an immutable type value. Name is only meaningful for Defined types.
type Type struct {
	Fundamental Fundamental
	Name        string
}

// Common type instances
var (
	TypeBool   = Type{Fundamental: Boolean}
	TypeChar   = Type{Fundamental: Character}
	TypeInt    = Type{Fundamental: Integer}
	TypeFloat  = Type{Fundamental: Float}
	TypeString = Type{Fundamental: String}
)

// DefinedType returns the type named by a user-visible identifier that is not
// one of the built-in type names.
func DefinedType(name string) Type {
	return Type{Fundamental: Defined, Name: name}
}

// TypeFromName maps a type name as written in source to its Type. Names that
// are not built in become Defined types; the mapping never fails.
func TypeFromName(name string) Type {
	switch name {
	case "bool":
		return TypeBool
	case "char":
		return TypeChar
	case "int":
		return TypeInt
	case "float":
		return TypeFloat
	case "str":
		return TypeString
	default:
		return DefinedType(name)
	}
}

// Equal reports structural equality: same tag, and same name for Defined types.
func (t Type) Equal(other Type) bool {
	if t.Fundamental != other.Fundamental {
		return false
	}
	if t.Fundamental == Defined {
		return t.Name == other.Name
	}
	return true
}

// String returns the source spelling of the type.
func (t Type) String() string {
	switch t.Fundamental {
	case Boolean:
		return "bool"
	case Character:
		return "char"
	case Integer:
		return "int"
	case Float:
		return "float"
	case String:
		return "str"
	default:
		return t.Name
	}
}
