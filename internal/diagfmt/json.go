package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
)

// LocationJSON is a span resolved for machine consumption.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is one secondary note attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in the JSON report.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON report.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
}

// JSON writes the bag as an indented JSON report.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, bag.Len()),
		Count:       bag.Len(),
		Errors:      bag.ErrorCount(),
	}
	for _, d := range bag.Items() {
		if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
			break
		}
		dj := DiagnosticJSON{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(n.Span, fs, opts.IncludePositions),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func makeLocation(span source.Span, fs *source.FileSet, includePositions bool) LocationJSON {
	if span.File == source.NoFile || int(span.File) >= fs.Len() {
		return LocationJSON{StartByte: span.Start, EndByte: span.End}
	}
	loc := LocationJSON{
		File:      fs.Get(span.File).Path,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}
