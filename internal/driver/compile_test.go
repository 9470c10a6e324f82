package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntChromium/IonaLang/internal/source"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "pets.iona", `
struct Animal {
    legs: Int,
    names: Array<String>,
}
`)
	s := NewSession(Options{})
	res := s.CompileFile(path)

	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if !strings.Contains(res.Output, "struct Animal {") {
		t.Errorf("output missing struct:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "StringArray names;") {
		t.Errorf("generic field not lowered:\n%s", res.Output)
	}
	if s.Table.Len() != 1 {
		t.Errorf("instantiations = %d, want 1", s.Table.Len())
	}
}

func TestCompileFileErrorsSkipEmission(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.iona", `
struct Broken {
    legs Int,
}
`)
	s := NewSession(Options{})
	res := s.CompileFile(path)

	if !res.Bag.HasErrors() {
		t.Fatal("expected parse errors")
	}
	if res.Output != "" {
		t.Error("emission must be skipped when errors exist")
	}
}

func TestCompileFileMissing(t *testing.T) {
	s := NewSession(Options{})
	res := s.CompileFile(filepath.Join(t.TempDir(), "absent.iona"))
	if !res.Bag.HasErrors() {
		t.Fatal("missing file must produce a diagnostic")
	}
	if res.Bag.Items()[0].Code != 5001 {
		t.Errorf("code = %v, want IOLoadFile", res.Bag.Items()[0].Code)
	}
	if res.Bag.Items()[0].Primary.File != source.NoFile {
		t.Error("load failures must carry the no-file sentinel, not FileID 0")
	}
}

// Two files using Array<Int> share one instantiation through the session
// table, whichever order the workers run in.
func TestCompileDirSharedInstantiations(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.iona", "struct A {\n    xs: Array<Int>,\n}\n")
	writeSource(t, dir, "b.iona", "struct B {\n    ys: Array<Int>,\n}\n")

	s := NewSession(Options{Jobs: 2})
	results, err := s.CompileDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if HasErrors(results) {
		t.Fatalf("unexpected errors: %v", MergeBags(results).Items())
	}
	// Results come back in sorted file order.
	if ModuleName(results[0].Path) != "a" || ModuleName(results[1].Path) != "b" {
		t.Errorf("result order = %q, %q", results[0].Path, results[1].Path)
	}
	if s.Table.Len() != 1 {
		t.Errorf("instantiations = %d, want 1 shared", s.Table.Len())
	}
}

func TestCompileDirAggregation(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "npc.iona", `
struct Creature {
    hp: Int,
    @metadata {
        Is: Public, Export;
    }
}
`)
	writeSource(t, dir, "town.iona", `
import npc with Creature Villager;

fn greet(c: Creature) {}
`)

	s := NewSession(Options{})
	results, err := s.CompileDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if HasErrors(results) {
		t.Fatalf("unexpected errors: %v", MergeBags(results).Items())
	}

	if !s.Tables.Modules.Exports("npc", "Creature") {
		t.Error("Creature export not recorded")
	}
	unresolved := s.Tables.Modules.Unresolved()
	if len(unresolved) != 1 || unresolved[0].Name != "Villager" {
		t.Errorf("unresolved = %v, want just npc.Villager", unresolved)
	}
	if !s.Tables.Types.Declared("Creature") {
		t.Error("Creature not in type table")
	}
}

func TestModuleName(t *testing.T) {
	if got := ModuleName(filepath.Join("src", "npc.iona")); got != "npc" {
		t.Errorf("ModuleName = %q, want npc", got)
	}
}

func TestEmitCacheRoundTrip(t *testing.T) {
	cache, err := OpenEmitCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeSource(t, dir, "pets.iona", "struct A {\n    x: Int,\n}\n")

	first := NewSession(Options{Cache: cache}).CompileFile(path)
	if first.FromCache {
		t.Fatal("first compile must not hit the cache")
	}
	if first.Output == "" {
		t.Fatalf("first compile failed: %v", first.Bag.Items())
	}

	second := NewSession(Options{Cache: cache}).CompileFile(path)
	if !second.FromCache {
		t.Fatal("second compile must replay from cache")
	}
	if second.Output != first.Output {
		t.Error("cached output differs from original")
	}

	// Content change invalidates.
	writeSource(t, dir, "pets.iona", "struct A {\n    x: Int,\n    y: Int,\n}\n")
	third := NewSession(Options{Cache: cache}).CompileFile(path)
	if third.FromCache {
		t.Error("changed content must not hit the cache")
	}
}

// A warm-cache session must still populate the instantiation and
// aggregation tables, or the replayed header would include instantiation
// units that never get written.
func TestEmitCacheWarmRunKeepsInstantiations(t *testing.T) {
	cache, err := OpenEmitCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeSource(t, dir, "npc.iona", `
struct Npc {
    names: Array<Int>,
}
`)

	cold := NewSession(Options{Cache: cache})
	if res := cold.CompileFile(path); res.FromCache || res.Output == "" {
		t.Fatalf("cold compile wrong: fromCache=%v output=%q", res.FromCache, res.Output)
	}
	if cold.Table.Len() != 1 {
		t.Fatalf("cold instantiations = %d, want 1", cold.Table.Len())
	}

	warm := NewSession(Options{Cache: cache})
	res := warm.CompileFile(path)
	if !res.FromCache {
		t.Fatal("second compile must replay from cache")
	}
	if warm.Table.Len() != 1 {
		t.Fatalf("warm instantiations = %d, want 1", warm.Table.Len())
	}
	entries := warm.Table.Entries()
	if entries[0].Header() != "int_array.h" {
		t.Errorf("entry header = %q, want int_array.h", entries[0].Header())
	}
	if !strings.Contains(res.Output, `#include "int_array.h"`) {
		t.Errorf("replayed header lost its instantiation include:\n%s", res.Output)
	}
	if !warm.Tables.Types.Declared("Npc") {
		t.Error("warm session must still aggregate declared types")
	}
}

func TestEmitCacheMissingKey(t *testing.T) {
	cache, err := OpenEmitCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	var key [32]byte
	key[0] = 0xAB
	if _, ok := cache.Get(key); ok {
		t.Error("empty cache must miss")
	}
}
