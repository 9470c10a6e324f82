package diag

import (
	"github.com/BurntChromium/IonaLang/internal/source"
)

// Note is a secondary span with extra context for a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a concrete text replacement inside a fix suggestion.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction the CLI may show next to a diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding produced by the lexer, parser, or emitter.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
