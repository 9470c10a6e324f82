// Package token defines the lexical token kinds of the Iona language.
// Invariants:
//   - Token.Text holds the exact source lexeme (string literals keep their
//     unquoted content).
//   - Token.Span matches the lexeme's byte range in its file.
//   - Metadata keys (Is, Derives, Uses) and contract keys (In, Out) are
//     capitalized keywords; everything else capitalized is an Ident.
//   - Built-in type names (Int, Float, Bool, String) are identifiers. They
//     are recognized by the emitter's type mapping, not the lexer.
package token
