package parser

import (
	"github.com/BurntChromium/IonaLang/internal/ast"
	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/token"
)

// parseMetadata parses an @metadata block:
//
//	@metadata {
//	    Is: Public, Export;
//	    Derives: Eq, Show;
//	    Uses: ReadFile;
//	}
//
// Unrecognized keys and Is-values produce warnings, not errors, so files
// written for a newer compiler still parse. NoMatch when the cursor is not
// on '@' followed by 'metadata'.
func (p *Parser) parseMetadata() (ast.Metadata, Outcome) {
	meta := ast.Metadata{}
	if !p.at(token.At) || p.pos+1 >= len(p.toks) || p.toks[p.pos+1].Kind != token.KwMetadata {
		return meta, NoMatch
	}
	atTok := p.advance()
	p.advance() // metadata keyword
	meta.Span = atTok.Span

	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after '@metadata'"); !ok {
		return meta, Failed
	}

	seen := make(map[token.Kind]bool, 3)
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, p.diagSpan(), "unclosed '@metadata' block")
			return meta, Failed
		}
		if outcome := p.parseMetadataEntry(&meta, seen); outcome == Failed {
			return meta, Failed
		}
	}
	rbrace := p.advance()
	meta.Span = meta.Span.Cover(rbrace.Span)
	return meta, Matched
}

// parseMetadataEntry parses one `Key: Value, Value;` line into meta.
func (p *Parser) parseMetadataEntry(meta *ast.Metadata, seen map[token.Kind]bool) Outcome {
	keyTok := p.advance()
	switch keyTok.Kind {
	case token.KwIs, token.KwDerives, token.KwUses:
		if seen[keyTok.Kind] {
			p.warn(diag.SynDuplicateMetadata, keyTok.Span,
				"duplicate metadata key \""+keyTok.Text+"\"")
		}
		seen[keyTok.Kind] = true
	case token.Ident:
		p.warn(diag.SynUnknownMetadataKey, keyTok.Span,
			"unrecognized metadata key \""+keyTok.Text+"\" ignored")
		p.skipMetadataEntry()
		return Matched
	default:
		p.err(diag.SynUnexpectedToken, keyTok.Span,
			"expected metadata key, got "+describe(keyTok))
		return Failed
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after metadata key"); !ok {
		return Failed
	}

	values, outcome := p.parseMetadataValues()
	if outcome == Failed {
		return Failed
	}

	switch keyTok.Kind {
	case token.KwIs:
		for _, v := range values {
			switch v.Text {
			case "Public":
				meta.Visibility = ast.VisibilityPublic
			case "Private":
				meta.Visibility = ast.VisibilityPrivate
			case "Export":
				meta.Export = true
			default:
				p.warn(diag.SynUnknownMetadataValue, v.Span,
					"unrecognized visibility \""+v.Text+"\" ignored")
			}
		}
	case token.KwDerives:
		for _, v := range values {
			meta.Derives = append(meta.Derives, v.Text)
		}
	case token.KwUses:
		for _, v := range values {
			meta.Uses = append(meta.Uses, v.Text)
		}
	}
	return Matched
}

// parseMetadataValues parses `Value, Value, ... ;` and returns the value
// tokens. The terminating semicolon is consumed.
func (p *Parser) parseMetadataValues() ([]token.Token, Outcome) {
	var values []token.Token
	for {
		v, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected metadata value")
		if !ok {
			return nil, Failed
		}
		values = append(values, v)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after metadata values"); !ok {
		return nil, Failed
	}
	return values, Matched
}

// skipMetadataEntry discards tokens through the next ';' (or stops at the
// closing brace), so one unknown key skips exactly one entry.
func (p *Parser) skipMetadataEntry() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

// parseContracts parses an @contracts block, carrying the condition tokens
// without interpreting them:
//
//	@contracts {
//	    In: a > 0;
//	    Out: result > a;
//	}
func (p *Parser) parseContracts() (ast.Contracts, Outcome) {
	contracts := ast.Contracts{}
	if !p.at(token.At) || p.pos+1 >= len(p.toks) || p.toks[p.pos+1].Kind != token.KwContracts {
		return contracts, NoMatch
	}
	p.advance() // '@'
	p.advance() // contracts keyword

	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after '@contracts'"); !ok {
		return contracts, Failed
	}

	for !p.at(token.RBrace) {
		keyTok := p.advance()
		if keyTok.Kind != token.KwIn && keyTok.Kind != token.KwOut {
			p.err(diag.SynUnexpectedToken, keyTok.Span,
				"expected 'In' or 'Out' contract key, got "+describe(keyTok))
			return contracts, Failed
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after contract key"); !ok {
			return contracts, Failed
		}

		var body []token.Token
		for !p.at(token.Semicolon) {
			if p.at(token.EOF) || p.at(token.RBrace) {
				p.err(diag.SynExpectSemicolon, p.diagSpan(), "expected ';' after contract condition")
				return contracts, Failed
			}
			body = append(body, p.advance())
		}
		p.advance() // ';'

		if keyTok.Kind == token.KwIn {
			contracts.In = append(contracts.In, body...)
		} else {
			contracts.Out = append(contracts.Out, body...)
		}
	}
	p.advance() // '}'
	return contracts, Matched
}
