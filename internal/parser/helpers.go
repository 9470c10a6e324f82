package parser

import (
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
	"github.com/BurntChromium/IonaLang/internal/token"
)

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		// Streams are EOF-terminated; running past the end means a caller
		// ignored EOF. Synthesize one rather than panic.
		return token.Token{Kind: token.EOF, Span: p.lastSpan}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance consumes the next token and remembers its span for diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan returns the best span for a diagnostic at the cursor. An empty
// EOF span is replaced with the position just after the last real token.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && peek.Span.Empty() && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of kind k, or reports one error and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.err(code, sp, msg+", got "+describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// err reports an error diagnostic. Returns false when the error limit was
// reached and the diagnostic was dropped.
func (p *Parser) err(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

// warn reports a warning diagnostic. Warnings never affect outcomes.
func (p *Parser) warn(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevWarning, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.currentErrors++
		if p.opts.enough() {
			return false
		}
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// describe renders a token for an expected-vs-found message.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return "identifier \"" + tok.Text + "\""
	case token.IntLit, token.FloatLit:
		return "number " + tok.Text
	case token.StringLit:
		return "string literal"
	case token.Invalid:
		return "invalid token \"" + tok.Text + "\""
	default:
		return "'" + tok.Kind.String() + "'"
	}
}
