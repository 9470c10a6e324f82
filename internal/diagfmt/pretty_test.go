package diagfmt

import (
	"strings"
	"testing"

	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("pets.iona", []byte("struct Animal {\n    legs Int,\n}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectColon,
		Message:  "expected ':' after field name",
		Primary:  source.Span{File: id, Start: 25, End: 28},
	})
	return bag, fs
}

func TestPrettyHeaderLine(t *testing.T) {
	bag, fs := testBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "pets.iona:2:10: ERROR SYN2005: expected ':' after field name") {
		t.Errorf("header line wrong:\n%s", out)
	}
}

func TestPrettyContext(t *testing.T) {
	bag, fs := testBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: true})
	out := sb.String()

	if !strings.Contains(out, "   2 |     legs Int,") {
		t.Errorf("source excerpt missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~") {
		t.Errorf("caret underline missing:\n%s", out)
	}
}

// A load failure has no span; it must print bare even when other files are
// already in the set, never attributed to the first file at 1:1.
func TestPrettySpanlessDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("pets.iona", []byte("struct Animal {}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFile,
		Message:  "failed to load file: no such file",
		Primary:  source.Span{File: source.NoFile},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: true})
	out := sb.String()

	if !strings.Contains(out, "ERROR IO5001: failed to load file: no such file") {
		t.Errorf("bare rendering missing:\n%s", out)
	}
	if strings.Contains(out, "pets.iona") {
		t.Errorf("spanless diagnostic attributed to an unrelated file:\n%s", out)
	}
}

func TestJSONReport(t *testing.T) {
	bag, fs := testBag(t)
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`"code": "SYN2005"`,
		`"severity": "ERROR"`,
		`"file": "pets.iona"`,
		`"start_line": 2`,
		`"errors": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %q:\n%s", want, out)
		}
	}
}
