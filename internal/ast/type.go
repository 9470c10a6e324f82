package ast

import (
	"strings"

	"github.com/BurntChromium/IonaLang/internal/source"
)

// TypeKind classifies a type reference.
type TypeKind uint8

const (
	// TypeVoid is the absent type (function without a return value).
	TypeVoid TypeKind = iota
	// TypeInt is the language's 64-bit integer.
	TypeInt
	// TypeFloat is the language's 64-bit float.
	TypeFloat
	// TypeBool is the boolean type.
	TypeBool
	// TypeString is the heap string type.
	TypeString
	// TypeNamed is a user-declared struct or enum reference.
	TypeNamed
	// TypeGeneric is a generic instantiation request: template name plus
	// ordered concrete type arguments.
	TypeGeneric
)

// Type is a type reference as written in source.
type Type struct {
	Kind TypeKind
	Name string // TypeNamed: type name; TypeGeneric: template name
	Args []Type // TypeGeneric only
	Span source.Span
}

// Void returns the zero type used where no type was written.
func Void() Type { return Type{Kind: TypeVoid} }

// primitiveNames maps source spellings to their kinds.
var primitiveNames = map[string]TypeKind{
	"Int":    TypeInt,
	"Float":  TypeFloat,
	"Bool":   TypeBool,
	"String": TypeString,
}

// PrimitiveKind resolves a source type name to a primitive kind.
func PrimitiveKind(name string) (TypeKind, bool) {
	k, ok := primitiveNames[name]
	return k, ok
}

// IsVoid reports whether the type is the absent type.
func (t Type) IsVoid() bool { return t.Kind == TypeVoid }

// String renders the type the way it is written in source.
func (t Type) String() string {
	switch t.Kind {
	case TypeVoid:
		return "Void"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeString:
		return "String"
	case TypeNamed:
		return t.Name
	case TypeGeneric:
		var b strings.Builder
		b.WriteString(t.Name)
		b.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteByte('>')
		return b.String()
	}
	return "?"
}

// Equal reports structural equality, ignoring spans.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.Name != other.Name || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for this type and every type argument, depth-first and
// left-to-right. The traversal order is what makes instantiation emission
// order deterministic.
func (t Type) Walk(fn func(Type)) {
	fn(t)
	for _, arg := range t.Args {
		arg.Walk(fn)
	}
}
