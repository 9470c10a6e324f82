package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwMetadata represents the 'metadata' keyword after '@'.
	KwMetadata // metadata
	// KwContracts represents the 'contracts' keyword after '@'.
	KwContracts // contracts
	// KwIs represents the 'Is' metadata key.
	KwIs // Is
	// KwDerives represents the 'Derives' metadata key.
	KwDerives // Derives
	// KwUses represents the 'Uses' metadata key.
	KwUses // Uses
	// KwIn represents the 'In' contract key.
	KwIn // In
	// KwOut represents the 'Out' contract key.
	KwOut // Out

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit

	// At represents the '@' punctuation.
	At // @
	// Colon represents the ':' punctuation.
	Colon // :
	// Semicolon represents the ';' punctuation.
	Semicolon // ;
	// Comma represents the ',' punctuation.
	Comma // ,
	// Dot represents the '.' punctuation.
	Dot // .
	// Arrow represents the '->' punctuation.
	Arrow // ->
	// Assign represents the '=' operator.
	Assign // =
	// Plus represents the '+' operator.
	Plus // +
	// Minus represents the '-' operator.
	Minus // -
	// Star represents the '*' operator.
	Star // *
	// Slash represents the '/' operator.
	Slash // /
	// Percent represents the '%' operator.
	Percent // %
	// Lt represents the '<' punctuation (also opens type arguments).
	Lt // <
	// Gt represents the '>' punctuation (also closes type arguments).
	Gt // >
	// LParen represents the '(' punctuation.
	LParen // (
	// RParen represents the ')' punctuation.
	RParen // )
	// LBrace represents the '{' punctuation.
	LBrace // {
	// RBrace represents the '}' punctuation.
	RBrace // }
	// LBracket represents the '[' punctuation.
	LBracket // [
	// RBracket represents the ']' punctuation.
	RBracket // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwImport:    "import",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwFn:        "fn",
	KwWith:      "with",
	KwMetadata:  "metadata",
	KwContracts: "contracts",
	KwIs:        "Is",
	KwDerives:   "Derives",
	KwUses:      "Uses",
	KwIn:        "In",
	KwOut:       "Out",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	At:          "@",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Arrow:       "->",
	Assign:      "=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Lt:          "<",
	Gt:          ">",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
