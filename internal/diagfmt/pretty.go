package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
)

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic:
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//	  <line number> | <source line>
//	                | ^~~~
//
// Iteration follows bag insertion order; callers wanting cross-file order
// run bag.Sort() first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := severityLabel(d.Severity)
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}

	// Diagnostics without a resolvable file (I/O failures) print bare.
	if d.Primary.File == source.NoFile || int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		return
	}

	start, _ := fs.Resolve(d.Primary)
	file := fs.Get(d.Primary.File)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(file.Path, opts.PathMode), start.Line, start.Col,
		sev, d.Code.ID(), d.Message)

	if opts.Context {
		printContext(w, file, fs, d.Primary, opts)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nStart, _ := fs.Resolve(note.Span)
			nFile := fs.Get(note.Span.File)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(nFile.Path, opts.PathMode), nStart.Line, nStart.Col, note.Msg)
		}
	}
}

// printContext prints the first line the span covers with a caret underline
// aligned under the offending columns. Display width is computed per rune
// so wide characters keep the underline in place.
func printContext(w io.Writer, file *source.File, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && start.Line == 0 {
		return
	}

	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, line)

	runes := []rune(line)
	startCol := int(start.Col) - 1
	endCol := int(end.Col) - 1
	if end.Line != start.Line || endCol > len(runes) {
		endCol = len(runes)
	}
	if startCol > len(runes) {
		startCol = len(runes)
	}
	if endCol <= startCol {
		endCol = startCol + 1
	}

	pad := 0
	for _, r := range runes[:startCol] {
		pad += runewidth.RuneWidth(r)
	}
	width := 0
	for _, r := range runes[startCol:min(endCol, len(runes))] {
		width += runewidth.RuneWidth(r)
	}
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = color.New(color.FgHiRed, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), marker)
}

func displayPath(path string, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "ERROR"
	case diag.SevWarning:
		return "WARNING"
	default:
		return "INFO"
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgHiRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgHiBlue)
	}
}
