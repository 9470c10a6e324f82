package token

import (
	"github.com/BurntChromium/IonaLang/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword or metadata key.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwStruct, KwEnum, KwFn, KwWith, KwMetadata, KwContracts,
		KwIs, KwDerives, KwUses, KwIn, KwOut:
		return true
	default:
		return false
	}
}

// IsMetadataKey reports whether the token is one of the recognized
// metadata block keys.
func (t Token) IsMetadataKey() bool {
	switch t.Kind {
	case KwIs, KwDerives, KwUses:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case At, Colon, Semicolon, Comma, Dot, Arrow, Assign, Plus, Minus, Star,
		Slash, Percent, Lt, Gt, LParen, RParen, LBrace, RBrace, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
