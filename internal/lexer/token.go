// Package lexer provides tokenization for ASN.1 module source text.
package lexer

import (
	"fmt"

	"github.com/golangsnmp/asngen/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
}

// NewToken creates a new token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// Text returns the token's text within source.
func (t Token) Text(source []byte) string {
	return string(source[t.Span.Start:t.Span.End])
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF
	// TokUnsupportedKeyword is an ASN.1 reserved word outside the supported
	// subset (REAL, ANY, CLASS, ...).
	TokUnsupportedKeyword

	// === Identifiers ===

	// TokUppercaseIdent is an uppercase identifier (module names, type names).
	TokUppercaseIdent
	// TokLowercaseIdent is a lowercase identifier (field names, enumerators, values).
	TokLowercaseIdent

	// === Literals ===

	// TokNumber is an unsigned decimal number.
	TokNumber
	// TokNegativeNumber is a signed decimal number (negative).
	TokNegativeNumber
	// TokQuotedString is a quoted string literal.
	TokQuotedString
	// TokHexString is a hex string literal ('...'H).
	TokHexString
	// TokBinString is a binary string literal ('...'B).
	TokBinString

	// === Single-character punctuation ===

	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokColon is ':'.
	TokColon
	// TokSemicolon is ';'.
	TokSemicolon
	// TokComma is ','.
	TokComma
	// TokDot is '.'.
	TokDot
	// TokPipe is '|'.
	TokPipe
	// TokMinus is '-'.
	TokMinus
	// TokLess is '<' (open range bound, as in 0<..10).
	TokLess

	// === Multi-character operators ===

	// TokDotDot is '..'.
	TokDotDot
	// TokEllipsis is '...', the extensibility marker.
	TokEllipsis
	// TokColonColonEqual is '::='.
	TokColonColonEqual

	// === Module structure keywords ===

	TokKwDefinitions
	TokKwBegin
	TokKwEnd
	TokKwImports
	TokKwExports
	TokKwFrom
	TokKwAutomatic
	TokKwImplicit
	TokKwExplicit
	TokKwTags
	TokKwExtensibility
	TokKwImplied
	TokKwWith

	// === Type keywords ===

	TokKwInteger
	TokKwBit
	TokKwOctet
	TokKwString
	TokKwBoolean
	TokKwNull
	TokKwEnumerated
	TokKwSequence
	TokKwSet
	TokKwOf
	TokKwChoice
	TokKwObject
	TokKwIdentifier

	// === Member and constraint keywords ===

	TokKwOptional
	TokKwDefault
	TokKwComponents
	TokKwSize
	TokKwContaining
	TokKwMin
	TokKwMax

	// === Tag class keywords ===

	TokKwApplication
	TokKwUniversal
	TokKwPrivate

	// === Value keywords ===

	TokKwTrue
	TokKwFalse
)

// IsKeyword reports whether the kind is a reserved keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokKwDefinitions && k <= TokKwFalse
}

// IsTypeKeyword reports whether the kind starts a built-in type.
func (k TokenKind) IsTypeKeyword() bool {
	switch k {
	case TokKwInteger, TokKwBit, TokKwOctet, TokKwBoolean, TokKwNull,
		TokKwEnumerated, TokKwSequence, TokKwSet, TokKwChoice, TokKwObject:
		return true
	}
	return false
}

var punctNames = map[TokenKind]string{
	TokError:              "ERROR",
	TokEOF:                "EOF",
	TokUnsupportedKeyword: "UNSUPPORTED_KEYWORD",
	TokUppercaseIdent:     "UPPERCASE_IDENT",
	TokLowercaseIdent:     "LOWERCASE_IDENT",
	TokNumber:             "NUMBER",
	TokNegativeNumber:     "NEGATIVE_NUMBER",
	TokQuotedString:       "QUOTED_STRING",
	TokHexString:          "HEX_STRING",
	TokBinString:          "BIN_STRING",
	TokLBracket:           "LBRACKET",
	TokRBracket:           "RBRACKET",
	TokLBrace:             "LBRACE",
	TokRBrace:             "RBRACE",
	TokLParen:             "LPAREN",
	TokRParen:             "RPAREN",
	TokColon:              "COLON",
	TokSemicolon:          "SEMICOLON",
	TokComma:              "COMMA",
	TokDot:                "DOT",
	TokPipe:               "PIPE",
	TokMinus:              "MINUS",
	TokLess:               "LESS",
	TokDotDot:             "DOT_DOT",
	TokEllipsis:           "ELLIPSIS",
	TokColonColonEqual:    "COLON_COLON_EQUAL",
}

// String returns the token kind's name. Keywords print as their source text.
func (k TokenKind) String() string {
	if name, ok := punctNames[k]; ok {
		return name
	}
	for _, kw := range keywords {
		if kw.kind == k {
			return kw.text
		}
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}
