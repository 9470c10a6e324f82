package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// parseStruct parses a struct declaration:
//
//	struct Animal {
//	    legs: Int,
//	    paws: Int,
//	    @metadata { Is: Public; Derives: Eq, Show; }
//	}
//
// Field order is preserved as written. A repeated field name is a warning so
// the rest of the declaration still parses.
func (p *Parser) parseStruct() (*ast.StructDecl, Outcome) {
	if !p.at(token.KwStruct) {
		return nil, NoMatch
	}
	kw := p.advance()

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected struct name")
	if !ok {
		return nil, Failed
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after struct name"); !ok {
		return nil, Failed
	}

	decl := &ast.StructDecl{Name: name.Text, NameSpan: name.Span, Span: kw.Span}
	seen := make(map[string]bool)

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, p.diagSpan(), "unclosed struct body")
			return nil, Failed
		}

		if meta, outcome := p.parseMetadata(); outcome != NoMatch {
			if outcome == Failed {
				return nil, Failed
			}
			decl.Meta = meta
			continue
		}

		field, ok := p.parseField()
		if !ok {
			return nil, Failed
		}
		if seen[field.Name] {
			p.warn(diag.SynShadowedName, field.Span,
				"field \""+field.Name+"\" shadows an earlier field of \""+decl.Name+"\"")
		}
		seen[field.Name] = true
		decl.Fields = append(decl.Fields, field)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close struct body")
	if !ok {
		return nil, Failed
	}
	decl.Span = decl.Span.Cover(rbrace.Span)
	return decl, Matched
}

// parseField parses one `name: Type` pair.
func (p *Parser) parseField() (ast.Field, bool) {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
	if !ok {
		return ast.Field{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
		return ast.Field{}, false
	}
	typ, outcome := p.parseType()
	if outcome != Matched {
		if outcome == NoMatch {
			p.err(diag.SynExpectType, p.diagSpan(), "expected field type")
		}
		return ast.Field{}, false
	}
	return ast.Field{Name: name.Text, Type: typ, Span: name.Span.Cover(typ.Span)}, true
}
