package diag

import (
	"fmt"
	"strings"

	"github.com/BurntChromium/IonaLang/internal/source"
)

// FormatShortDiagnostics renders diagnostics one per line in their bag order:
//
//	path:line:col: SEVERITY CODE: message
//
// The shape is stable, so tests can assert on it and the CLI can use it as
// the non-pretty fallback.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range diags {
		if d.Primary.File == source.NoFile || int(d.Primary.File) >= fs.Len() {
			fmt.Fprintf(&b, "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		path := fs.Get(d.Primary.File).Path
		fmt.Fprintf(&b, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col, d.Severity, d.Code.ID(), d.Message)
		for _, note := range d.Notes {
			nstart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(&b, "  note(%d:%d): %s\n", nstart.Line, nstart.Col, note.Msg)
		}
	}
	return b.String()
}
