package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// parseImport parses an import declaration:
//
//	import npc with Creature;
//	import math;
//
// The `with` clause is optional and names are whitespace separated. A
// trailing comma between names is tolerated.
func (p *Parser) parseImport() (*ast.ImportDecl, Outcome) {
	if !p.at(token.KwImport) {
		return nil, NoMatch
	}
	kw := p.advance()

	mod, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name after 'import'")
	if !ok {
		return nil, Failed
	}
	decl := &ast.ImportDecl{Module: mod.Text, Span: kw.Span.Cover(mod.Span)}

	if p.at(token.KwWith) {
		p.advance()
		if !p.at(token.Ident) {
			p.err(diag.SynExpectImportTarget, p.diagSpan(), "expected imported name after 'with'")
			return nil, Failed
		}
		for p.at(token.Ident) {
			name := p.advance()
			decl.Names = append(decl.Names, name.Text)
			decl.Span = decl.Span.Cover(name.Span)
			if p.at(token.Comma) {
				p.advance()
			}
		}
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after import")
	if !ok {
		return nil, Failed
	}
	decl.Span = decl.Span.Cover(semi.Span)
	return decl, Matched
}
