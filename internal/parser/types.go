package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// parseType parses a type reference:
//
//	Int | Float | Bool | String      primitives
//	Animal                           named type
//	Array<Int>, Maybe<Array<Int>>    generic instantiation
//
// NoMatch when the cursor is not on an identifier.
func (p *Parser) parseType() (ast.Type, Outcome) {
	if !p.at(token.Ident) {
		return ast.Void(), NoMatch
	}
	nameTok := p.advance()
	span := nameTok.Span

	if !p.at(token.Lt) {
		if kind, ok := ast.PrimitiveKind(nameTok.Text); ok {
			return ast.Type{Kind: kind, Span: span}, Matched
		}
		return ast.Type{Kind: ast.TypeNamed, Name: nameTok.Text, Span: span}, Matched
	}

	// Generic instantiation request.
	ltTok := p.advance()
	if p.at(token.Gt) {
		gtTok := p.advance()
		p.err(diag.SynEmptyTypeArgs, ltTok.Span.Cover(gtTok.Span),
			"type argument list of '"+nameTok.Text+"' cannot be empty")
		return ast.Void(), Failed
	}

	var args []ast.Type
	for {
		arg, outcome := p.parseType()
		if outcome == NoMatch {
			p.err(diag.SynExpectType, p.diagSpan(),
				"expected type argument, got "+describe(p.peek()))
			return ast.Void(), Failed
		}
		if outcome == Failed {
			return ast.Void(), Failed
		}
		args = append(args, arg)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	gtTok, ok := p.expect(token.Gt, diag.SynExpectTypeArgClose, "expected '>' after type arguments")
	if !ok {
		return ast.Void(), Failed
	}

	return ast.Type{
		Kind: ast.TypeGeneric,
		Name: nameTok.Text,
		Args: args,
		Span: span.Cover(gtTok.Span),
	}, Matched
}
