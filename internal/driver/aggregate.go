package driver

import (
	"sort"

	"github.com/BurntChromium/IonaLang/internal/ast"
)

// ModuleTable tracks cross-module visibility: what each module imports and
// what it marks public or exported. A name imported somewhere but exported
// nowhere is a link-time problem surfaced by Unresolved.
type ModuleTable struct {
	// ParseStatus marks which referenced modules have been parsed yet.
	ParseStatus map[string]bool

	imported map[string]map[string]bool
	public   map[string]map[string]bool
	exported map[string]map[string]bool
}

func NewModuleTable() *ModuleTable {
	return &ModuleTable{
		ParseStatus: make(map[string]bool),
		imported:    make(map[string]map[string]bool),
		public:      make(map[string]map[string]bool),
		exported:    make(map[string]map[string]bool),
	}
}

// Update records one parsed file's imports and visibility declarations
// under moduleName.
func (t *ModuleTable) Update(file *ast.File, moduleName string) {
	t.ParseStatus[moduleName] = true
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.ImportDecl:
			if _, seen := t.ParseStatus[it.Module]; !seen {
				t.ParseStatus[it.Module] = false
			}
			for _, name := range it.Names {
				insert(t.imported, it.Module, name)
			}
		case *ast.StructDecl:
			t.recordVisibility(moduleName, it.Name, it.Meta)
		case *ast.EnumDecl:
			t.recordVisibility(moduleName, it.Name, it.Meta)
		case *ast.FnDecl:
			t.recordVisibility(moduleName, it.Name, it.Meta)
		}
	}
}

func (t *ModuleTable) recordVisibility(module, name string, meta ast.Metadata) {
	if meta.Export {
		insert(t.exported, module, name)
	}
	if meta.Visibility == ast.VisibilityPublic {
		insert(t.public, module, name)
	}
}

// Pending returns the modules that were imported but not parsed yet, sorted.
func (t *ModuleTable) Pending() []string {
	var out []string
	for module, parsed := range t.ParseStatus {
		if !parsed {
			out = append(out, module)
		}
	}
	sort.Strings(out)
	return out
}

// Exports returns whether module marks name as exported.
func (t *ModuleTable) Exports(module, name string) bool {
	return t.exported[module][name]
}

// Unresolved returns every (module, name) pair that some file imported but
// the named module never exported. Sorted for stable reporting.
func (t *ModuleTable) Unresolved() []ImportRef {
	var out []ImportRef
	for module, names := range t.imported {
		for name := range names {
			if !t.exported[module][name] {
				out = append(out, ImportRef{Module: module, Name: name})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Module != out[j].Module {
			return out[i].Module < out[j].Module
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ImportRef names one item imported from one module.
type ImportRef struct {
	Module string
	Name   string
}

// TypeTable tracks every type declared or referenced across the program,
// plus which types each module uses in its signatures and fields.
type TypeTable struct {
	types   map[string]bool
	byUse   map[string]map[string]bool
	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl
}

func NewTypeTable() *TypeTable {
	return &TypeTable{
		types:   make(map[string]bool),
		byUse:   make(map[string]map[string]bool),
		structs: make(map[string]*ast.StructDecl),
		enums:   make(map[string]*ast.EnumDecl),
	}
}

// Update walks one parsed file and records declared and used types under
// moduleName. Nested generic arguments are recorded too.
func (t *TypeTable) Update(file *ast.File, moduleName string) {
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.StructDecl:
			t.structs[it.Name] = it
			t.types[it.Name] = true
			for _, f := range it.Fields {
				t.recordUse(moduleName, f.Type)
			}
		case *ast.EnumDecl:
			t.enums[it.Name] = it
			t.types[it.Name] = true
			for _, v := range it.Variants {
				if v.Payload != nil {
					t.recordUse(moduleName, *v.Payload)
				}
			}
		case *ast.FnDecl:
			if !it.Return.IsVoid() {
				t.recordUse(moduleName, it.Return)
			}
			for _, p := range it.Params {
				t.recordUse(moduleName, p.Type)
			}
		}
	}
}

func (t *TypeTable) recordUse(module string, typ ast.Type) {
	typ.Walk(func(sub ast.Type) {
		key := sub.String()
		t.types[key] = true
		insert(t.byUse, module, key)
	})
}

// Declared reports whether name was declared as a struct or enum anywhere.
func (t *TypeTable) Declared(name string) bool {
	_, isStruct := t.structs[name]
	_, isEnum := t.enums[name]
	return isStruct || isEnum
}

// UsedBy returns the sorted type keys module references.
func (t *TypeTable) UsedBy(module string) []string {
	var out []string
	for key := range t.byUse[module] {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func insert(m map[string]map[string]bool, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}
	set[value] = true
}

// Tables bundles the per-session aggregation state. Updates must be
// serialized by the caller when files are compiled in parallel.
type Tables struct {
	Modules *ModuleTable
	Types   *TypeTable
}

func NewTables() *Tables {
	return &Tables{
		Modules: NewModuleTable(),
		Types:   NewTypeTable(),
	}
}

func (t *Tables) Update(file *ast.File, moduleName string) {
	t.Modules.Update(file, moduleName)
	t.Types.Update(file, moduleName)
}
