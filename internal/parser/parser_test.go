package parser

import (
	"testing"

	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/lexer"
	"github.com/BurntChromium/IonaLang/internal/source"
)

func parseSource(t *testing.T, src string) Result {
	t.Helper()
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("test.iona", []byte(src))
	file := fileSet.Get(id)
	toks := lexer.New(file, diag.NopReporter{}).Tokenize()
	return ParseFile(file, toks, Options{})
}

func TestParseStruct(t *testing.T) {
	res := parseSource(t, `
struct Pair {
    first: Int,
    second: Int,
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.File.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(res.File.Items))
	}
	s, ok := res.File.Items[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("item is %T, want *ast.StructDecl", res.File.Items[0])
	}
	if s.Name != "Pair" {
		t.Errorf("name = %q, want Pair", s.Name)
	}
	if len(s.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(s.Fields))
	}
	for i, want := range []string{"first", "second"} {
		if s.Fields[i].Name != want {
			t.Errorf("field %d = %q, want %q", i, s.Fields[i].Name, want)
		}
		if s.Fields[i].Type.Kind != ast.TypeInt {
			t.Errorf("field %d type = %v, want Int", i, s.Fields[i].Type.Kind)
		}
	}
	if s.Meta.Visibility != ast.VisibilityPrivate {
		t.Errorf("default visibility = %v, want private", s.Meta.Visibility)
	}
}

func TestParseStructMetadata(t *testing.T) {
	res := parseSource(t, `
struct Animal {
    legs: Int,
    @metadata {
        Is: Public, Export;
        Derives: Eq, Show;
    }
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	s := res.File.Items[0].(*ast.StructDecl)
	if s.Meta.Visibility != ast.VisibilityPublic {
		t.Errorf("visibility = %v, want public", s.Meta.Visibility)
	}
	if !s.Meta.Export {
		t.Error("export flag not set")
	}
	if !s.Meta.HasDerive("Eq") || !s.Meta.HasDerive("Show") {
		t.Errorf("derives = %v, want Eq and Show", s.Meta.Derives)
	}
}

func TestParseEnum(t *testing.T) {
	res := parseSource(t, `
enum Status {
    Alive,
    Dead,
    Wounded: Int,
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	e := res.File.Items[0].(*ast.EnumDecl)
	if e.Name != "Status" {
		t.Errorf("name = %q, want Status", e.Name)
	}
	if len(e.Variants) != 3 {
		t.Fatalf("variants = %d, want 3", len(e.Variants))
	}
	if e.Variants[0].Payload != nil || e.Variants[1].Payload != nil {
		t.Error("unit variants must have nil payload")
	}
	if e.Variants[2].Payload == nil || e.Variants[2].Payload.Kind != ast.TypeInt {
		t.Errorf("Wounded payload = %v, want Int", e.Variants[2].Payload)
	}
}

func TestParseFn(t *testing.T) {
	res := parseSource(t, `
fn add(a: Int, b: Int) -> Int
@metadata {
    Is: Public;
}
@contracts {
    In: a > 0;
    Out: result > a;
}
{
    return a + b;
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	f := res.File.Items[0].(*ast.FnDecl)
	if f.Name != "add" {
		t.Errorf("name = %q, want add", f.Name)
	}
	if len(f.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(f.Params))
	}
	if f.Return.Kind != ast.TypeInt {
		t.Errorf("return = %v, want Int", f.Return.Kind)
	}
	if f.Meta.Visibility != ast.VisibilityPublic {
		t.Error("visibility not applied from metadata block")
	}
	if len(f.Contracts.In) == 0 || len(f.Contracts.Out) == 0 {
		t.Error("contract token runs not captured")
	}
	if len(f.Body) == 0 {
		t.Error("body token run not captured")
	}
}

func TestParseFnVoidReturn(t *testing.T) {
	res := parseSource(t, `fn noop() {}`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	f := res.File.Items[0].(*ast.FnDecl)
	if !f.Return.IsVoid() {
		t.Errorf("return = %v, want Void", f.Return)
	}
	if len(f.Params) != 0 {
		t.Errorf("params = %d, want 0", len(f.Params))
	}
}

func TestParseImport(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		mod   string
		names []string
	}{
		{"bare", "import math;", "math", nil},
		{"single", "import npc with Creature;", "npc", []string{"Creature"}},
		{"multiple", "import npc with Creature Monster;", "npc", []string{"Creature", "Monster"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseSource(t, tt.src)
			if res.Bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
			}
			imp := res.File.Items[0].(*ast.ImportDecl)
			if imp.Module != tt.mod {
				t.Errorf("module = %q, want %q", imp.Module, tt.mod)
			}
			if len(imp.Names) != len(tt.names) {
				t.Fatalf("names = %v, want %v", imp.Names, tt.names)
			}
			for i := range tt.names {
				if imp.Names[i] != tt.names[i] {
					t.Errorf("names[%d] = %q, want %q", i, imp.Names[i], tt.names[i])
				}
			}
		})
	}
}

func TestParseGenericType(t *testing.T) {
	res := parseSource(t, `
struct Herd {
    members: Array<Int>,
    nested: Maybe<Array<String>>,
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	s := res.File.Items[0].(*ast.StructDecl)
	members := s.Fields[0].Type
	if members.Kind != ast.TypeGeneric || members.Name != "Array" {
		t.Fatalf("members type = %v", members)
	}
	if len(members.Args) != 1 || members.Args[0].Kind != ast.TypeInt {
		t.Errorf("members args = %v, want [Int]", members.Args)
	}
	nested := s.Fields[1].Type
	if nested.Name != "Maybe" || len(nested.Args) != 1 || nested.Args[0].Name != "Array" {
		t.Errorf("nested type = %v", nested)
	}
}

// A missing return type after '->' must cost exactly one error and must not
// derail the next declaration.
func TestMissingReturnTypeSingleError(t *testing.T) {
	res := parseSource(t, `
fn foo(a: Int) -> {}

struct After {
    x: Int,
}
`)
	if got := res.Bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want exactly 1: %v", got, res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.SynExpectReturnType {
		t.Errorf("code = %v, want SynExpectReturnType", d.Code)
	}
	if d.Primary.Empty() {
		t.Error("diagnostic span must point at the arrow token")
	}
	if len(res.File.Items) != 1 {
		t.Fatalf("items = %d, want recovery to parse the struct", len(res.File.Items))
	}
	if res.File.Items[0].ItemName() != "After" {
		t.Errorf("recovered item = %q, want After", res.File.Items[0].ItemName())
	}
}

func TestMultipleErrorsOnePerDecl(t *testing.T) {
	res := parseSource(t, `
struct Broken1 {
    x Int,
}

enum Broken2 {
    A:
}

struct Fine {
    y: Int,
}
`)
	if got := res.Bag.ErrorCount(); got != 2 {
		t.Fatalf("errors = %d, want 2: %v", got, res.Bag.Items())
	}
	var fine bool
	for _, item := range res.File.Items {
		if item.ItemName() == "Fine" {
			fine = true
		}
	}
	if !fine {
		t.Error("recovery lost the well-formed trailing struct")
	}
}

func TestUnexpectedTopLevel(t *testing.T) {
	res := parseSource(t, `42 struct S { x: Int, }`)
	if got := res.Bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1: %v", got, res.Bag.Items())
	}
	if res.Bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Errorf("code = %v, want SynUnexpectedTopLevel", res.Bag.Items()[0].Code)
	}
	if len(res.File.Items) != 1 || res.File.Items[0].ItemName() != "S" {
		t.Errorf("recovery should reach the struct, got %v", res.File.Items)
	}
}

func TestEmptyTypeArgs(t *testing.T) {
	res := parseSource(t, `
struct Bad {
    xs: Array<>,
}
`)
	if !res.Bag.HasErrors() {
		t.Fatal("expected an error for empty type arguments")
	}
	if res.Bag.Items()[0].Code != diag.SynEmptyTypeArgs {
		t.Errorf("code = %v, want SynEmptyTypeArgs", res.Bag.Items()[0].Code)
	}
}

func TestUnknownMetadataKeyWarns(t *testing.T) {
	res := parseSource(t, `
struct S {
    x: Int,
    @metadata {
        Frobnicate: Yes;
        Is: Public;
    }
}
`)
	if res.Bag.HasErrors() {
		t.Fatalf("unknown metadata key must not be an error: %v", res.Bag.Items())
	}
	if !res.Bag.HasWarnings() {
		t.Fatal("expected a warning for unknown metadata key")
	}
	s := res.File.Items[0].(*ast.StructDecl)
	if s.Meta.Visibility != ast.VisibilityPublic {
		t.Error("entries after the unknown key must still apply")
	}
}

func TestDuplicateFieldWarns(t *testing.T) {
	res := parseSource(t, `
struct S {
    x: Int,
    x: Float,
}
`)
	if res.Bag.HasErrors() {
		t.Fatalf("duplicate field must be a warning, got errors: %v", res.Bag.Items())
	}
	if !res.Bag.HasWarnings() {
		t.Fatal("expected a shadowed-field warning")
	}
	s := res.File.Items[0].(*ast.StructDecl)
	if len(s.Fields) != 2 {
		t.Errorf("both fields must survive, got %d", len(s.Fields))
	}
}

func TestUnterminatedBodyStops(t *testing.T) {
	res := parseSource(t, `fn f() { if x {`)
	if !res.Bag.HasErrors() {
		t.Fatal("expected unclosed-delimiter error")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynUnclosedDelimiter {
			found = true
		}
	}
	if !found {
		t.Errorf("want SynUnclosedDelimiter, got %v", res.Bag.Items())
	}
}

// Parsing the same stream twice must yield identical diagnostics in
// identical order.
func TestDeterministicDiagnostics(t *testing.T) {
	src := `
struct A { x Int }
enum B { , }
fn c( {}
`
	a := parseSource(t, src)
	b := parseSource(t, src)
	if a.Bag.Len() != b.Bag.Len() {
		t.Fatalf("diag counts differ: %d vs %d", a.Bag.Len(), b.Bag.Len())
	}
	for i := range a.Bag.Items() {
		da, db := a.Bag.Items()[i], b.Bag.Items()[i]
		if da.Code != db.Code || da.Primary != db.Primary || da.Message != db.Message {
			t.Errorf("diag %d differs: %+v vs %+v", i, da, db)
		}
	}
}

// Garbage input must terminate; resyncTop always advances.
func TestGarbageTerminates(t *testing.T) {
	res := parseSource(t, `} } ; -> < > 12 "x" @ , , } ;`)
	if !res.Bag.HasErrors() {
		t.Fatal("garbage input should produce errors")
	}
	if len(res.File.Items) != 0 {
		t.Errorf("no items should parse from garbage, got %d", len(res.File.Items))
	}
}

func TestMaxErrorsLimit(t *testing.T) {
	bag := diag.NewBag(100)
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("test.iona", []byte(`
struct A { x Int }
struct B { y Int }
struct C { z Int }
`))
	file := fileSet.Get(id)
	toks := lexer.New(file, diag.NopReporter{}).Tokenize()
	res := ParseFile(file, toks, Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	_ = res
	if got := bag.ErrorCount(); got != 2 {
		t.Errorf("reported errors = %d, want capped at 2", got)
	}
}

func TestWholeProgram(t *testing.T) {
	res := parseSource(t, `
import npc with Creature;

struct Animal {
    legs: Int,
    has_tail: Bool,
    @metadata {
        Is: Public, Export;
        Derives: Eq, Show;
    }
}

enum Status {
    Alive,
    Dead,
    Wounded: Int,
    @metadata {
        Is: Public;
    }
}

fn describe(a: Animal) -> String
@metadata {
    Is: Public;
}
{
    return "ok";
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.File.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(res.File.Items))
	}
	names := []string{"npc", "Animal", "Status", "describe"}
	for i, want := range names {
		if got := res.File.Items[i].ItemName(); got != want {
			t.Errorf("item %d = %q, want %q", i, got, want)
		}
	}
}
