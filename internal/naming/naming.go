// Package naming implements the identifier transforms shared by the parser
// and the emitter: module names to file base names, ASN.1 references to C++
// identifiers, and accessor spellings.
package naming

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeriveFileBase folds a module name into an output file base name. Every
// hyphen-separated segment after the first is title-cased and the segments
// are concatenated. A trailing ';' is stripped first.
//
//	S1AP-PDU-Contents -> S1APPduContents
//	X-e2ap-IEs        -> XE2ApIes
func DeriveFileBase(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ";")
	segments := strings.Split(raw, "-")
	if len(segments) == 1 {
		return raw
	}
	lower := cases.Lower(language.Und)
	var b strings.Builder
	b.WriteString(segments[0])
	for _, seg := range segments[1:] {
		titleWords(&b, lower.String(seg))
	}
	return b.String()
}

// titleWords writes s with every letter that follows a non-letter
// upper-cased, so digits start a new word: e2ap -> E2Ap.
func titleWords(b *strings.Builder, s string) {
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		if isLetter && !prevLetter {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevLetter = isLetter
	}
}

// ToIdentifier turns an ASN.1 reference into a C++ identifier.
//
// With stripHyphens set (type and field names) hyphens are deleted and the
// first character is upper-cased: my-field-Name -> MyfieldName. Otherwise
// (module, constant and enumerator names) hyphens become underscores and
// case is preserved. A leading digit gets an underscore prefix in both modes.
func ToIdentifier(raw string, stripHyphens bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var name string
	if stripHyphens {
		name = UpperFirst(strings.ReplaceAll(raw, "-", ""))
	} else {
		name = strings.ReplaceAll(raw, "-", "_")
	}
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// TypeName is ToIdentifier for type and field names.
func TypeName(raw string) string {
	return ToIdentifier(raw, true)
}

// ValueName is ToIdentifier for constants and enumerators.
func ValueName(raw string) string {
	return ToIdentifier(raw, false)
}

// UpperFirst upper-cases the first ASCII letter of s.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

// LowerFirst produces the accessor spelling of a field name: the first
// character lower-cased.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'A' && c <= 'Z' {
		return string(c-'A'+'a') + s[1:]
	}
	return s
}

// Accessor returns LowerFirst(s), suffixed with '_' when the result would
// collide with a C++ keyword.
func Accessor(s string) string {
	s = LowerFirst(s)
	if IsReserved(s) {
		return s + "_"
	}
	return s
}

// GuardMacro returns the include guard macro for a file base name.
func GuardMacro(fileBase string) string {
	return strings.ToUpper(fileBase) + "_H_"
}

// cppReserved is the sorted list of C++ keywords that can appear as
// lower-cased ASN.1 field names.
// IMPORTANT: This slice MUST remain sorted alphabetically for binary search.
var cppReserved = []string{
	"auto",
	"bool",
	"break",
	"case",
	"catch",
	"char",
	"class",
	"const",
	"continue",
	"default",
	"delete",
	"do",
	"double",
	"else",
	"enum",
	"explicit",
	"extern",
	"false",
	"float",
	"for",
	"friend",
	"goto",
	"if",
	"inline",
	"int",
	"long",
	"namespace",
	"new",
	"operator",
	"private",
	"protected",
	"public",
	"register",
	"return",
	"short",
	"signed",
	"sizeof",
	"static",
	"struct",
	"switch",
	"template",
	"this",
	"throw",
	"true",
	"try",
	"typedef",
	"union",
	"unsigned",
	"virtual",
	"void",
	"volatile",
	"while",
}

// IsReserved reports whether s is a C++ keyword.
func IsReserved(s string) bool {
	idx := sort.SearchStrings(cppReserved, s)
	return idx < len(cppReserved) && cppReserved[idx] == s
}
