// Package mono deduplicates generic instantiations across a compilation
// session and renders one concrete C translation unit per distinct request.
//
// The table is the only shared state in the compiler: files may be parsed
// and emitted in parallel, so every lookup and insertion is serialized
// behind one mutex. For any fixed request sequence the table is
// deterministic: entries are numbered in first-encounter order and a repeat
// request returns the existing entry without re-rendering.
package mono

import (
	"strconv"
	"strings"
	"sync"

	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
)

// Entry is one monomorphized instantiation: Array<Int> becomes the C type
// IntArray with function prefix int_array, rendered exactly once.
type Entry struct {
	// Key is the canonical request key, e.g. "Array#Int".
	Key string
	// Name is the derived concrete C type name, e.g. "IntArray".
	Name string
	// Prefix is the derived function prefix, e.g. "int_array".
	Prefix string
	// Order is the monotonically assigned first-encounter index.
	Order int
	// Code is the rendered C translation unit.
	Code string
}

// Header returns the file name this entry's translation unit is written to.
func (e *Entry) Header() string { return e.Prefix + ".h" }

// Table maps canonical instantiation requests to their entries.
// Safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ordered []*Entry

	reporter diag.Reporter
}

// NewTable creates an empty instantiation table. Diagnostics produced by
// malformed requests go to reporter.
func NewTable(reporter diag.Reporter) *Table {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Table{
		entries:  make(map[string]*Entry),
		reporter: reporter,
	}
}

// Request resolves a generic type through the table, instantiating it on
// first encounter. A repeat request for the same (template, arguments) pair
// returns the recorded entry without touching the rendered code. Returns
// false when the request is malformed; a diagnostic has been reported.
func (t *Table) Request(typ ast.Type) (*Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.request(typ)
}

// request is Request without the lock, for nested resolution.
func (t *Table) request(typ ast.Type) (*Entry, bool) {
	if typ.Kind != ast.TypeGeneric {
		t.reporter.Report(diag.GenBadInstantiation, diag.SevError, typ.Span,
			"type "+typ.String()+" is not a generic instantiation", nil, nil)
		return nil, false
	}

	tmpl, ok := templates[typ.Name]
	if !ok {
		t.reporter.Report(diag.GenUnknownTemplate, diag.SevError, typ.Span,
			"unknown generic template \""+typ.Name+"\"", nil, nil)
		return nil, false
	}
	if len(typ.Args) != tmpl.arity {
		t.reporter.Report(diag.GenBadInstantiation, diag.SevError, typ.Span,
			"template \""+typ.Name+"\" takes "+strconv.Itoa(tmpl.arity)+" type argument(s), got "+strconv.Itoa(len(typ.Args)),
			nil, nil)
		return nil, false
	}

	// Resolve arguments before keying so nested instantiations land in the
	// table first and the key reflects their concrete names.
	descs := make([]Descriptor, len(typ.Args))
	for i, arg := range typ.Args {
		d, ok := t.describe(arg)
		if !ok {
			return nil, false
		}
		descs[i] = d
	}

	key := requestKey(typ.Name, descs)
	if e, ok := t.entries[key]; ok {
		return e, true
	}

	name := deriveName(typ.Name, descs)
	entry := &Entry{
		Key:    key,
		Name:   name,
		Prefix: snakeCase(name),
		Order:  len(t.ordered),
	}
	entry.Code = tmpl.render(entry, descs)
	t.entries[key] = entry
	t.ordered = append(t.ordered, entry)
	return entry, true
}

// Entries returns all instantiations in first-encounter order.
func (t *Table) Entries() []*Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Entry, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Len returns the number of distinct instantiations recorded so far.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ordered)
}

// requestKey builds the canonical key: template id plus '#'-joined argument
// fragments. Two requests are equal iff their keys are equal.
func requestKey(template string, descs []Descriptor) string {
	var b strings.Builder
	b.WriteString(template)
	for _, d := range descs {
		b.WriteByte('#')
		b.WriteString(d.NameFragment)
	}
	return b.String()
}

// deriveName builds the concrete type name: argument fragments followed by
// the template name, so Array<Int> is IntArray and Array<Array<Int>> is
// IntArrayArray.
func deriveName(template string, descs []Descriptor) string {
	var b strings.Builder
	for _, d := range descs {
		b.WriteString(d.NameFragment)
	}
	b.WriteString(template)
	return b.String()
}

// snakeCase converts a CamelCase name into the lower_snake function prefix:
// IntArray into int_array.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
