package token

var keywords = map[string]Kind{
	"import":    KwImport,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"fn":        KwFn,
	"with":      KwWith,
	"metadata":  KwMetadata,
	"contracts": KwContracts,
	"Is":        KwIs,
	"Derives":   KwDerives,
	"Uses":      KwUses,
	"In":        KwIn,
	"Out":       KwOut,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive: declaration keywords are lowercase, metadata
// keys are capitalized exactly as they appear in source.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
