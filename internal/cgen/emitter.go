// Package cgen lowers parsed Iona declarations into portable C.
//
// Structs become plain C structs, enums become the tag-enum plus union plus
// combined-struct idiom, and functions emit prototypes only. Emitted names
// derive deterministically from source names; a collision is reported as an
// error before anything is written for the offending item.
package cgen

import (
	"sort"
	"strings"

	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/mono"
	"github.com/BurntChromium/IonaLang/internal/source"
)

// Emitter renders one module's declarations. The instantiation table is
// shared across all emitters of a session; everything else is per file.
type Emitter struct {
	table    *mono.Table
	reporter diag.Reporter
}

func New(table *mono.Table, reporter diag.Reporter) *Emitter {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	if table == nil {
		table = mono.NewTable(reporter)
	}
	return &Emitter{table: table, reporter: reporter}
}

// EmitFile renders the module header for one parsed file: a traceability
// comment, the include set, then one lowered declaration per item in source
// order. Items that fail to lower are skipped; ok is false when at least
// one item was skipped.
func (e *Emitter) EmitFile(file *ast.File) (string, bool) {
	u := &unit{Emitter: e, includes: make(map[string]bool)}
	ok := true

	var decls []string
	seen := make(map[string]source.Span)
	for _, item := range file.Items {
		if clash, prev, dup := findCollision(seen, item); dup {
			e.reporter.Report(diag.GenNameCollision, diag.SevError, item.ItemSpan(),
				"\""+item.ItemName()+"\" would emit C name \""+clash+"\" already taken by an earlier declaration",
				[]diag.Note{{Span: prev, Msg: "first declared here"}}, nil)
			ok = false
			continue
		}
		for _, id := range cIdentifiers(item) {
			seen[id] = item.ItemSpan()
		}

		text, itemOK := u.emitItem(item)
		if !itemOK {
			ok = false
			continue
		}
		if text != "" {
			decls = append(decls, text)
		}
	}

	var b strings.Builder
	b.WriteString("// source: " + file.Path + "\n\n")
	b.WriteString("#include <stdbool.h>\n#include <stdint.h>\n")
	for _, inc := range u.sortedIncludes() {
		b.WriteString("#include \"" + inc + "\"\n")
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(decls, "\n\n"))
	if len(decls) > 0 {
		b.WriteString("\n")
	}
	return b.String(), ok
}

// cIdentifiers lists every C identifier an item introduces: the struct tag,
// an enum's typedefs and tag constants, a function's name. Imports
// introduce nothing.
func cIdentifiers(item ast.Item) []string {
	switch it := item.(type) {
	case *ast.StructDecl:
		return []string{it.Name}
	case *ast.EnumDecl:
		ids := []string{it.Name, it.Name + "States", it.Name + "Values"}
		for _, v := range it.Variants {
			ids = append(ids, tagConstant(it.Name, v.Name))
		}
		return ids
	case *ast.FnDecl:
		return []string{it.Name}
	default:
		return nil
	}
}

// findCollision checks an item's emitted identifiers against everything
// emitted so far, including duplicates inside the item itself (two variants
// deriving the same tag constant).
func findCollision(seen map[string]source.Span, item ast.Item) (string, source.Span, bool) {
	local := make(map[string]bool)
	for _, id := range cIdentifiers(item) {
		if prev, dup := seen[id]; dup {
			return id, prev, true
		}
		if local[id] {
			return id, item.ItemSpan(), true
		}
		local[id] = true
	}
	return "", source.Span{}, false
}

// unit tracks per-file emission state, mainly the include set grown while
// resolving field types.
type unit struct {
	*Emitter
	includes map[string]bool
}

func (u *unit) sortedIncludes() []string {
	out := make([]string, 0, len(u.includes))
	for inc := range u.includes {
		out = append(out, inc)
	}
	sort.Strings(out)
	return out
}

func (u *unit) emitItem(item ast.Item) (string, bool) {
	switch it := item.(type) {
	case *ast.StructDecl:
		return u.emitStruct(it)
	case *ast.EnumDecl:
		return u.emitEnum(it)
	case *ast.FnDecl:
		return u.emitPrototype(it)
	case *ast.ImportDecl:
		// Imports resolve at the Iona level; nothing to emit.
		return "", true
	default:
		return "", true
	}
}

// emitStruct lowers a struct one member per field, order preserved.
func (u *unit) emitStruct(s *ast.StructDecl) (string, bool) {
	var b strings.Builder
	b.WriteString("struct " + s.Name + " {\n")
	for _, field := range s.Fields {
		ct, ok := u.cType(field.Type)
		if !ok {
			return "", false
		}
		b.WriteString("\t" + ct + " " + field.Name + ";\n")
	}
	b.WriteString("};")
	return b.String(), true
}

// emitEnum lowers an enum to the tagged-union idiom: a tag enumeration with
// one constant per variant, a union holding only payload-bearing variants,
// and a struct joining the two.
func (u *unit) emitEnum(en *ast.EnumDecl) (string, bool) {
	var b strings.Builder

	b.WriteString("typedef enum {\n")
	for _, v := range en.Variants {
		b.WriteString("\t" + tagConstant(en.Name, v.Name) + ",\n")
	}
	b.WriteString("} " + en.Name + "States;\n\n")

	b.WriteString("typedef union {\n")
	for _, v := range en.Variants {
		if v.Payload == nil {
			continue
		}
		ct, ok := u.cType(*v.Payload)
		if !ok {
			return "", false
		}
		b.WriteString("\t" + ct + " " + v.Name + ";\n")
	}
	b.WriteString("} " + en.Name + "Values;\n\n")

	b.WriteString("struct " + en.Name + " {\n")
	b.WriteString("\t" + en.Name + "States tag;\n")
	b.WriteString("\t" + en.Name + "Values data;\n")
	b.WriteString("};")
	return b.String(), true
}

// tagConstant derives the C constant for one variant: STATUS_ALIVE for
// enum Status, variant Alive.
func tagConstant(enumName, variantName string) string {
	return strings.ToUpper(enumName) + "_" + strings.ToUpper(variantName)
}

// emitPrototype lowers a function signature. Bodies are not lowered here.
func (u *unit) emitPrototype(fn *ast.FnDecl) (string, bool) {
	ret := "void"
	if !fn.Return.IsVoid() {
		ct, ok := u.cType(fn.Return)
		if !ok {
			return "", false
		}
		ret = ct
	}

	var b strings.Builder
	b.WriteString(ret + " " + fn.Name + "(")
	if len(fn.Params) == 0 {
		b.WriteString("void")
	}
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		ct, ok := u.cType(p.Type)
		if !ok {
			return "", false
		}
		b.WriteString(ct + " " + p.Name)
	}
	b.WriteString(");")
	return b.String(), true
}

// cType resolves an Iona type to its C spelling, recording any header the
// spelling depends on. Generic types go through the instantiation table.
func (u *unit) cType(t ast.Type) (string, bool) {
	switch t.Kind {
	case ast.TypeInt:
		u.includes["numbers.h"] = true
		return "Integer", true
	case ast.TypeFloat:
		u.includes["numbers.h"] = true
		return "Float", true
	case ast.TypeBool:
		return "bool", true
	case ast.TypeString:
		u.includes["strings.h"] = true
		return "String", true
	case ast.TypeNamed:
		return "struct " + t.Name, true
	case ast.TypeGeneric:
		entry, ok := u.table.Request(t)
		if !ok {
			return "", false
		}
		u.includes[entry.Header()] = true
		return entry.Name, true
	default:
		u.reporter.Report(diag.GenUnknownType, diag.SevError, t.Span,
			"type "+t.String()+" has no C representation", nil, nil)
		return "", false
	}
}
