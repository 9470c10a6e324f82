package source

import (
	"testing"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.AddVirtual("a.iona", []byte("struct A {}"))
	id2 := fs.AddVirtual("b.iona", []byte("struct B {}"))

	if id1 == id2 {
		t.Fatalf("expected distinct file IDs, got %d twice", id1)
	}
	if fs.Get(id1).Path != "a.iona" {
		t.Errorf("expected path a.iona, got %q", fs.Get(id1).Path)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 files, got %d", fs.Len())
	}
}

func TestAddSamePathCreatesNewVersion(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.iona", []byte("version 1"), 0)
	id2 := fs.Add("main.iona", []byte("version 2"), 0)

	if id1 == id2 {
		t.Fatal("expected a fresh FileID for the second Add")
	}
	f, ok := fs.GetByPath("main.iona")
	if !ok {
		t.Fatal("expected main.iona to be present")
	}
	if f.ID != id2 {
		t.Errorf("index should point at the latest version, got %d want %d", f.ID, id2)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	content := []byte("a\r\nb\r\nc")
	out, changed := normalizeCRLF(content)
	if !changed {
		t.Fatal("expected CRLF normalization to report a change")
	}
	if string(out) != "a\nb\nc" {
		t.Errorf("unexpected normalized content %q", string(out))
	}

	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed {
		t.Errorf("did not expect changes for %q", string(out))
	}
}

func TestRemoveBOM(t *testing.T) {
	content := []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}
	out, had := removeBOM(content)
	if !had {
		t.Fatal("expected BOM to be detected")
	}
	if string(out) != "x\n" {
		t.Errorf("unexpected content after BOM removal: %q", string(out))
	}
}

func TestResolveMultiline(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.iona", []byte("ab\ncd\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline itself
		{3, LineCol{Line: 2, Col: 1}},
		{5, LineCol{Line: 2, Col: 3}},
		{6, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.iona", []byte("α\n")) // α is 2 bytes

	span := Span{File: id, Start: 0, End: 1}
	start, end := fs.Resolve(span)

	if (start != LineCol{Line: 1, Col: 1}) {
		t.Errorf("unexpected start %+v", start)
	}
	if (end != LineCol{Line: 1, Col: 2}) {
		t.Errorf("unexpected end %+v", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.iona", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("line 1: got %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 should be empty, got %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("unexpected cover %+v", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Error("cover across files should leave the span unchanged")
	}
}
