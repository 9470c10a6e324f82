package diag

import (
	"math"
	"testing"

	"github.com/BurntChromium/IonaLang/internal/source"
)

func TestBagInsertionOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(SynUnknownMetadataKey, source.Span{Start: 5, End: 6}, "first"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "second"))
	bag.Add(NewWarning(SynShadowedName, source.Span{Start: 9, End: 10}, "third"))

	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(items))
	}
	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if items[i].Message != want {
			t.Errorf("item %d: got %q, want %q", i, items[i].Message, want)
		}
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(UnknownCode, source.Span{}, "a")) {
		t.Fatal("first add should succeed")
	}
	if !bag.Add(NewError(UnknownCode, source.Span{}, "b")) {
		t.Fatal("second add should succeed")
	}
	if bag.Add(NewError(UnknownCode, source.Span{}, "c")) {
		t.Fatal("third add should be dropped")
	}
	if bag.Len() != 2 {
		t.Errorf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestBagLimitClamps(t *testing.T) {
	if got := NewBag(math.MaxInt).Cap(); got != math.MaxUint16 {
		t.Errorf("oversized limit: Cap() = %d, want %d", got, math.MaxUint16)
	}

	bag := NewBag(-3)
	if bag.Cap() != 0 {
		t.Errorf("negative limit: Cap() = %d, want 0", bag.Cap())
	}
	if bag.Add(NewError(UnknownCode, source.Span{}, "dropped")) {
		t.Error("zero-capacity bag must drop every diagnostic")
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(10)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("empty bag should have no findings")
	}

	bag.Add(NewWarning(SynUnknownMetadataKey, source.Span{}, "warn"))
	if bag.HasErrors() {
		t.Error("warning should not count as error")
	}
	if !bag.HasWarnings() {
		t.Error("expected HasWarnings")
	}

	bag.Add(NewError(SynUnexpectedToken, source.Span{}, "err"))
	if !bag.HasErrors() {
		t.Error("expected HasErrors")
	}
	if bag.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", bag.ErrorCount())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(UnknownCode, source.Span{}, "a"))
	b := NewBag(2)
	b.Add(NewError(UnknownCode, source.Span{}, "b"))
	b.Add(NewWarning(UnknownCode, source.Span{}, "c"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after merge, got %d", a.Len())
	}
}

func TestBagSortByFileAndOffset(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(UnknownCode, source.Span{File: 1, Start: 5}, "file1"))
	bag.Add(NewError(UnknownCode, source.Span{File: 0, Start: 9}, "file0-late"))
	bag.Add(NewError(UnknownCode, source.Span{File: 0, Start: 2}, "file0-early"))

	bag.Sort()
	items := bag.Items()
	want := []string{"file0-early", "file0-late", "file1"}
	for i, w := range want {
		if items[i].Message != w {
			t.Errorf("position %d: got %q, want %q", i, items[i].Message, w)
		}
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:        "LEX1001",
		SynUnexpectedTopLevel: "SYN2001",
		GenNameCollision:      "GEN4001",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
}
