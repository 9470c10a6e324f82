package lexer

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/BurntChromium/IonaLang/internal/diag"
	"github.com/BurntChromium/IonaLang/internal/token"
)

const utf8RuneSelf = 0x80

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// scanIdentOrKeyword scans an identifier and classifies it through
// LookupKeyword. Unicode identifier text is NFC-normalized so that visually
// identical names compare equal.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	sawUnicode := false

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.cursor.PeekRune()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		sawUnicode = true
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if sawUnicode {
		text = norm.NFC.String(text)
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanNumber scans an integer or float literal. A second '.' inside the
// literal is a malformed number, reported once.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	dots := 0

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '.' {
			// A dot not followed by a digit ends the literal (field access).
			_, b1, ok := lx.cursor.Peek2()
			if !ok || !isDec(b1) {
				break
			}
			dots++
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	switch dots {
	case 0:
		return token.Token{Kind: token.IntLit, Span: sp, Text: text}
	case 1:
		return token.Token{Kind: token.FloatLit, Span: sp, Text: text}
	default:
		lx.report(diag.LexBadNumber, sp, fmt.Sprintf("malformed numeric literal %q", text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
}

// scanString scans a double-quoted string literal. Token.Text holds the
// unquoted content. Escapes are not interpreted.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End])}
		}
		if lx.cursor.Peek() == '"' {
			lx.cursor.Bump()
			break
		}
		lx.cursor.Bump()
		if lx.cursor.Off-uint32(start) > stringLenLimit {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexStringTooLong, sp,
				"string literal length limit exceeded; consider loading the text from a file")
			return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End-1])}
}

// scanPunct scans single- and double-character punctuation. Unknown bytes
// produce one diagnostic each and an Invalid token.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	var kind token.Kind
	switch b {
	case '@':
		kind = token.At
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '=':
		kind = token.Assign
	case '+':
		kind = token.Plus
	case '-':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		} else {
			kind = token.Minus
		}
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", b))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
