// Package ast defines the syntax tree for Iona top-level declarations.
// Nodes are built by the parser and consumed read-only by the emitter;
// nothing mutates them after a parse completes.
package ast

import (
	"github.com/BurntChromium/IonaLang/internal/source"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// File is the parsed form of one source file.
type File struct {
	ID    source.FileID
	Path  string
	Items []Item
}

// Item is a top-level declaration. The set is open: emitters switch on the
// concrete type and skip items they do not know.
type Item interface {
	ItemName() string
	ItemSpan() source.Span
	isItem()
}

// Field is a named, typed slot in a struct or parameter list.
type Field struct {
	Name string
	Type Type
	Span source.Span
}

// StructDecl is a product type: an ordered sequence of fields.
type StructDecl struct {
	Name     string
	NameSpan source.Span
	Fields   []Field
	Meta     Metadata
	Span     source.Span
}

func (s *StructDecl) ItemName() string      { return s.Name }
func (s *StructDecl) ItemSpan() source.Span { return s.Span }
func (*StructDecl) isItem()                 {}

// Variant is one alternative of an enum. A nil Payload marks a unit variant.
type Variant struct {
	Name    string
	Payload *Type
	Span    source.Span
}

// EnumDecl is a sum type: an ordered sequence of variants.
type EnumDecl struct {
	Name     string
	NameSpan source.Span
	Variants []Variant
	Meta     Metadata
	Span     source.Span
}

func (e *EnumDecl) ItemName() string      { return e.Name }
func (e *EnumDecl) ItemSpan() source.Span { return e.Span }
func (*EnumDecl) isItem()                 {}

// Contracts carries the raw In/Out condition tokens of a function.
// They are transported, never interpreted, by this front end.
type Contracts struct {
	In  []token.Token
	Out []token.Token
}

// FnDecl is a function declaration. The body is opaque to this front end:
// it is kept as the raw token run between the outermost braces.
type FnDecl struct {
	Name      string
	NameSpan  source.Span
	Params    []Field
	Return    Type
	Meta      Metadata
	Contracts Contracts
	Body      []token.Token
	Span      source.Span
}

func (f *FnDecl) ItemName() string      { return f.Name }
func (f *FnDecl) ItemSpan() source.Span { return f.Span }
func (*FnDecl) isItem()                 {}

// ImportDecl brings items from another module into scope.
type ImportDecl struct {
	Module string
	Names  []string
	Span   source.Span
}

func (i *ImportDecl) ItemName() string      { return i.Module }
func (i *ImportDecl) ItemSpan() source.Span { return i.Span }
func (*ImportDecl) isItem()                 {}
