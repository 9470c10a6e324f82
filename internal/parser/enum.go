package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// parseEnum parses an enum declaration:
//
//	enum Status {
//	    Alive,
//	    Dead,
//	    Wounded: Int,
//	    @metadata { Is: Public; }
//	}
//
// A variant without ':' is a unit variant; with ':' it carries a payload
// type. Variant order is preserved as written.
func (p *Parser) parseEnum() (*ast.EnumDecl, Outcome) {
	if !p.at(token.KwEnum) {
		return nil, NoMatch
	}
	kw := p.advance()

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum name")
	if !ok {
		return nil, Failed
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after enum name"); !ok {
		return nil, Failed
	}

	decl := &ast.EnumDecl{Name: name.Text, NameSpan: name.Span, Span: kw.Span}
	seen := make(map[string]bool)

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, p.diagSpan(), "unclosed enum body")
			return nil, Failed
		}

		if meta, outcome := p.parseMetadata(); outcome != NoMatch {
			if outcome == Failed {
				return nil, Failed
			}
			decl.Meta = meta
			continue
		}

		vName, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variant name")
		if !ok {
			return nil, Failed
		}
		variant := ast.Variant{Name: vName.Text, Span: vName.Span}
		if p.at(token.Colon) {
			p.advance()
			typ, outcome := p.parseType()
			if outcome != Matched {
				if outcome == NoMatch {
					p.err(diag.SynExpectType, p.diagSpan(), "expected variant payload type")
				}
				return nil, Failed
			}
			variant.Payload = &typ
			variant.Span = variant.Span.Cover(typ.Span)
		}
		if seen[variant.Name] {
			p.warn(diag.SynShadowedName, variant.Span,
				"variant \""+variant.Name+"\" shadows an earlier variant of \""+decl.Name+"\"")
		}
		seen[variant.Name] = true
		decl.Variants = append(decl.Variants, variant)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close enum body")
	if !ok {
		return nil, Failed
	}
	decl.Span = decl.Span.Cover(rbrace.Span)
	return decl, Matched
}
