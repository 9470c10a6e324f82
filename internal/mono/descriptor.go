package mono

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
)

// Descriptor is the concrete-type parameter handed to a template function.
// It is everything a template needs to know about its element type: how the
// type is spelled in C, which headers that spelling depends on, and the
// name fragment used to derive the instantiation's own identifiers.
type Descriptor struct {
	// CName is the element type's C representation, e.g. "Integer".
	CName string
	// NameFragment is the CamelCase fragment used in derived type names,
	// e.g. "Int" so that Array<Int> becomes IntArray.
	NameFragment string
	// Includes lists headers the C representation depends on, e.g.
	// "numbers.h" for Integer.
	Includes []string
}

// describe resolves a concrete type argument into a Descriptor. Nested
// generic arguments are resolved through the table first, so an
// Array<Array<Int>> request instantiates IntArray before IntArrayArray.
func (t *Table) describe(typ ast.Type) (Descriptor, bool) {
	switch typ.Kind {
	case ast.TypeInt:
		return Descriptor{CName: "Integer", NameFragment: "Int", Includes: []string{"numbers.h"}}, true
	case ast.TypeFloat:
		return Descriptor{CName: "Float", NameFragment: "Float", Includes: []string{"numbers.h"}}, true
	case ast.TypeBool:
		return Descriptor{CName: "bool", NameFragment: "Bool"}, true
	case ast.TypeString:
		return Descriptor{CName: "String", NameFragment: "String", Includes: []string{"strings.h"}}, true
	case ast.TypeNamed:
		// User types are emitted as plain struct declarations in the
		// module header alongside the instantiations.
		return Descriptor{CName: "struct " + typ.Name, NameFragment: typ.Name}, true
	case ast.TypeGeneric:
		inner, ok := t.request(typ)
		if !ok {
			return Descriptor{}, false
		}
		return Descriptor{
			CName:        inner.Name,
			NameFragment: inner.Name,
			Includes:     []string{inner.Header()},
		}, true
	default:
		return Descriptor{}, false
	}
}
