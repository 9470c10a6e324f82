// Package lexer turns Iona source text into a finite token stream.
// It reports malformed input through a diag.Reporter and keeps scanning, so
// a single bad character never hides the rest of a file from the parser.
package lexer

import (
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// Raw string data limit, roughly 5KB. Longer literals belong in files.
const stringLenLimit = 5120

type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
}

// New creates a lexer over the given file. A nil reporter suppresses
// diagnostics.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
	}
}

// Tokenize scans the whole file and returns the token stream, terminated by
// exactly one EOF token.
func (lx *Lexer) Tokenize() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4)
	for {
		tok := lx.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// next returns the next significant token, skipping whitespace and comments.
func (lx *Lexer) next() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		off := lx.cursor.Off
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: off, End: off},
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// skipTrivia consumes whitespace and '#' line comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch ch := lx.cursor.Peek(); {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}
