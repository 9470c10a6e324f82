package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
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

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Struct", "FN", "IMPORT", // case matters
		"is", "derives", "uses", // metadata keys are capitalized
		"Int", "Float", "Bool", "String", // type names are Ident
		"Array", "identifier",
	}
	for _, lexeme := range notKw {
		if k, ok := LookupKeyword(lexeme); ok {
			t.Errorf("LookupKeyword(%q) = %v, want miss", lexeme, k)
		}
	}
}
