package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic category.
type Code uint16

const (
	// UnknownCode is the catch-all for uncategorized diagnostics.
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexStringTooLong      Code = 1004

	// Syntax (2000-2999)
	SynUnexpectedTopLevel   Code = 2001
	SynUnexpectedToken      Code = 2002
	SynExpectIdentifier     Code = 2003
	SynExpectType           Code = 2004
	SynExpectColon          Code = 2005
	SynExpectSemicolon      Code = 2006
	SynExpectLBrace         Code = 2007
	SynExpectRBrace         Code = 2008
	SynExpectParen          Code = 2009
	SynExpectReturnType     Code = 2010
	SynExpectTypeArgClose   Code = 2011
	SynEmptyTypeArgs        Code = 2012
	SynUnclosedDelimiter    Code = 2013
	SynExpectImportTarget   Code = 2014
	SynUnknownMetadataKey   Code = 2015
	SynUnknownMetadataValue Code = 2016
	SynDuplicateMetadata    Code = 2017
	SynShadowedName         Code = 2018

	// Code generation (4000-4999)
	GenNameCollision    Code = 4001
	GenUnknownTemplate  Code = 4002
	GenBadInstantiation Code = 4003
	GenUnknownType      Code = 4004

	// Driver I/O (5000-5999)
	IOLoadFile  Code = 5001
	IOWriteFile Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:             "unknown diagnostic",
	LexUnknownChar:          "unexpected character",
	LexUnterminatedString:   "unterminated string literal",
	LexBadNumber:            "malformed numeric literal",
	LexStringTooLong:        "string literal length limit exceeded",
	SynUnexpectedTopLevel:   "unexpected token at top level",
	SynUnexpectedToken:      "unexpected token",
	SynExpectIdentifier:     "expected identifier",
	SynExpectType:           "expected type",
	SynExpectColon:          "expected ':'",
	SynExpectSemicolon:      "expected ';'",
	SynExpectLBrace:         "expected '{'",
	SynExpectRBrace:         "expected '}'",
	SynExpectParen:          "expected parenthesis",
	SynExpectReturnType:     "expected return type",
	SynExpectTypeArgClose:   "expected '>' after type arguments",
	SynEmptyTypeArgs:        "type argument list cannot be empty",
	SynUnclosedDelimiter:    "unclosed delimiter",
	SynExpectImportTarget:   "expected module name after 'import'",
	SynUnknownMetadataKey:   "unrecognized metadata key",
	SynUnknownMetadataValue: "unrecognized metadata value",
	SynDuplicateMetadata:    "duplicate metadata block",
	SynShadowedName:         "declaration shadows an earlier name",
	GenNameCollision:        "emitted name collision",
	GenUnknownTemplate:      "unknown generic template",
	GenBadInstantiation:     "malformed generic instantiation",
	GenUnknownType:          "type has no C mapping",
	IOLoadFile:              "failed to load source file",
	IOWriteFile:             "failed to write generated output",
}

// ID returns the stable prefixed form of the code, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
