package lexer

import "sort"

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted alphabetically by text.
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"APPLICATION", TokKwApplication},
	{"AUTOMATIC", TokKwAutomatic},
	{"BEGIN", TokKwBegin},
	{"BIT", TokKwBit},
	{"BOOLEAN", TokKwBoolean},
	{"CHOICE", TokKwChoice},
	{"COMPONENTS", TokKwComponents},
	{"CONTAINING", TokKwContaining},
	{"DEFAULT", TokKwDefault},
	{"DEFINITIONS", TokKwDefinitions},
	{"END", TokKwEnd},
	{"ENUMERATED", TokKwEnumerated},
	{"EXPLICIT", TokKwExplicit},
	{"EXPORTS", TokKwExports},
	{"EXTENSIBILITY", TokKwExtensibility},
	{"FALSE", TokKwFalse},
	{"FROM", TokKwFrom},
	{"IDENTIFIER", TokKwIdentifier},
	{"IMPLICIT", TokKwImplicit},
	{"IMPLIED", TokKwImplied},
	{"IMPORTS", TokKwImports},
	{"INTEGER", TokKwInteger},
	{"MAX", TokKwMax},
	{"MIN", TokKwMin},
	{"NULL", TokKwNull},
	{"OBJECT", TokKwObject},
	{"OCTET", TokKwOctet},
	{"OF", TokKwOf},
	{"OPTIONAL", TokKwOptional},
	{"PRIVATE", TokKwPrivate},
	{"SEQUENCE", TokKwSequence},
	{"SET", TokKwSet},
	{"SIZE", TokKwSize},
	{"STRING", TokKwString},
	{"TAGS", TokKwTags},
	{"TRUE", TokKwTrue},
	{"UNIVERSAL", TokKwUniversal},
	{"WITH", TokKwWith},
}

// LookupKeyword returns the token kind for a keyword, or false if the text
// is not a keyword.
func LookupKeyword(text string) (TokenKind, bool) {
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if idx < len(keywords) && keywords[idx].text == text {
		return keywords[idx].kind, true
	}
	return TokError, false
}

// unsupportedKeywords is the sorted list of ASN.1 reserved words that name
// constructs outside the supported subset.
// IMPORTANT: This slice MUST remain sorted alphabetically for binary search.
var unsupportedKeywords = []string{
	"ABSENT",
	"ANY",
	"BY",
	"CLASS",
	"COMPONENT",
	"CONSTRAINED",
	"DEFINED",
	"EMBEDDED",
	"EXCEPT",
	"EXTERNAL",
	"INSTANCE",
	"INTERSECTION",
	"MINUS-INFINITY",
	"PATTERN",
	"PDV",
	"PLUS-INFINITY",
	"PRESENT",
	"REAL",
	"RELATIVE-OID",
	"UNION",
	"UNIQUE",
}

// IsUnsupportedKeyword returns true if the text is an ASN.1 reserved word
// that the compiler does not model.
func IsUnsupportedKeyword(text string) bool {
	idx := sort.SearchStrings(unsupportedKeywords, text)
	return idx < len(unsupportedKeywords) && unsupportedKeywords[idx] == text
}
