// Package parser turns an Iona token stream into top-level AST items.
//
// Every grammar production follows one contract: on a match it advances the
// cursor and returns Matched; when its distinguishing prefix is absent it
// returns NoMatch with the cursor untouched; when the prefix matched but the
// continuation is invalid it reports exactly one error and returns Failed.
// The driving loop recovers from Failed via resyncTop, bounding the error
// cascade to one diagnostic per malformed declaration.
package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// Options configures one parse session.
type Options struct {
	// MaxErrors stops reporting (not parsing) after this many errors.
	// Zero means no limit.
	MaxErrors     uint
	currentErrors uint
	// Reporter receives diagnostics. Defaults to a fresh BagReporter.
	Reporter diag.Reporter
}

// enough reports whether the error limit has been exceeded; errors past the
// limit are counted but no longer reported.
func (o *Options) enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.currentErrors > o.MaxErrors
}

// Result is the outcome of parsing one file: the items that parsed plus the
// full diagnostic sink. A non-empty bag never implies an empty item list.
type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser is the per-file parse state. It owns the token cursor; the token
// stream itself is read-only.
type Parser struct {
	toks     []token.Token
	pos      int
	file     *source.File
	opts     Options
	lastSpan source.Span
}

// ParseFile drives the top-level loop over a finished token stream.
// The stream must be EOF-terminated (the lexer guarantees this).
func ParseFile(file *source.File, toks []token.Token, opts Options) Result {
	var bag *diag.Bag
	if opts.Reporter == nil {
		bag = diag.NewBag(100)
		opts.Reporter = diag.BagReporter{Bag: bag}
	} else if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}

	p := Parser{
		toks: toks,
		file: file,
		opts: opts,
	}

	out := &ast.File{
		ID:   file.ID,
		Path: file.Path,
	}
	p.parseItems(out)

	return Result{File: out, Bag: bag}
}

// parseItems attempts each top-level production in fixed priority order
// until one matches, then repeats until end of input. The loop never aborts
// the file: every Failed outcome resynchronizes and continues.
func (p *Parser) parseItems(out *ast.File) {
	for !p.at(token.EOF) {
		item, outcome := p.parseItem()
		switch outcome {
		case Matched:
			out.Items = append(out.Items, item)
		case Failed:
			p.resyncTop()
		case NoMatch:
			tok := p.peek()
			p.err(diag.SynUnexpectedTopLevel, tok.Span,
				"unexpected token at top level: "+describe(tok))
			p.resyncTop()
		}
	}
}

// parseItem speculates across the top-level productions. Order is fixed so
// diagnostics are deterministic for a given stream.
func (p *Parser) parseItem() (ast.Item, Outcome) {
	if item, outcome := p.parseImport(); outcome != NoMatch {
		return item, outcome
	}
	if item, outcome := p.parseStruct(); outcome != NoMatch {
		return item, outcome
	}
	if item, outcome := p.parseEnum(); outcome != NoMatch {
		return item, outcome
	}
	if item, outcome := p.parseFn(); outcome != NoMatch {
		return item, outcome
	}
	return nil, NoMatch
}

// isTopLevelStarter reports whether k begins a top-level declaration.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwStruct, token.KwEnum, token.KwFn:
		return true
	default:
		return false
	}
}

// resyncTop discards tokens until a plausible top-level re-entry point:
// a declaration keyword, the end of the current block, or end of input.
// It always consumes at least one token, which bounds the loop.
func (p *Parser) resyncTop() {
	if p.at(token.EOF) {
		return
	}
	p.advance()
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if isTopLevelStarter(k) {
			return
		}
		if k == token.RBrace || k == token.Semicolon {
			// Likely the tail of the malformed declaration; eat it and
			// resume right after.
			p.advance()
			return
		}
		p.advance()
	}
}
