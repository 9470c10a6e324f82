package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/source"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// parseFn parses a function declaration:
//
//	fn increment(a: Int) -> Int
//	@metadata { Is: Public; }
//	@contracts { In: a > 0; }
//	{ ...body... }
//
// A missing `-> Type` clause means the function returns Void. The body is
// carried as an opaque, brace-balanced token run; this front end emits only
// the prototype.
func (p *Parser) parseFn() (*ast.FnDecl, Outcome) {
	if !p.at(token.KwFn) {
		return nil, NoMatch
	}
	kw := p.advance()

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return nil, Failed
	}
	decl := &ast.FnDecl{Name: name.Text, NameSpan: name.Span, Return: ast.Void(), Span: kw.Span}

	params, ok := p.parseParams()
	if !ok {
		return nil, Failed
	}
	decl.Params = params

	if p.at(token.Arrow) {
		arrow := p.advance()
		typ, outcome := p.parseType()
		switch outcome {
		case NoMatch:
			// The arrow promised a return type. One error at the arrow's
			// span, then recovery takes over.
			p.err(diag.SynExpectReturnType, arrow.Span, "expected return type after '->'")
			return nil, Failed
		case Failed:
			return nil, Failed
		}
		decl.Return = typ
	}

	// Attribute blocks may appear in either order, each at most once.
	for p.at(token.At) {
		if meta, outcome := p.parseMetadata(); outcome != NoMatch {
			if outcome == Failed {
				return nil, Failed
			}
			decl.Meta = meta
			continue
		}
		if contracts, outcome := p.parseContracts(); outcome != NoMatch {
			if outcome == Failed {
				return nil, Failed
			}
			decl.Contracts = contracts
			continue
		}
		p.err(diag.SynUnexpectedToken, p.diagSpan(),
			"expected '@metadata' or '@contracts' before function body")
		return nil, Failed
	}

	body, endSpan, ok := p.parseOpaqueBody()
	if !ok {
		return nil, Failed
	}
	decl.Body = body
	decl.Span = decl.Span.Cover(endSpan)
	return decl, Matched
}

// parseParams parses `(name: Type, ...)`. The list may be empty.
func (p *Parser) parseParams() ([]ast.Field, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectParen, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []ast.Field
	for !p.at(token.RParen) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, p.diagSpan(), "unclosed parameter list")
			return nil, false
		}
		field, ok := p.parseField()
		if !ok {
			return nil, false
		}
		params = append(params, field)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseOpaqueBody consumes a brace-balanced token run starting at '{'. The
// returned slice excludes the outermost braces.
func (p *Parser) parseOpaqueBody() ([]token.Token, source.Span, bool) {
	lbrace, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' to open function body")
	if !ok {
		return nil, source.Span{}, false
	}
	var body []token.Token
	depth := 1
	for {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, lbrace.Span, "unclosed function body")
			return nil, source.Span{}, false
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return body, tok.Span, true
			}
		}
		body = append(body, tok)
	}
}
