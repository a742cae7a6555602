package lexer

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/golangsnmp/asngen/internal/types"
)

// punct maps single-byte punctuation to its token kind. Zero (TokError)
// means the byte is not punctuation on its own.
var punct = [256]TokenKind{
	'[': TokLBracket,
	']': TokRBracket,
	'{': TokLBrace,
	'}': TokRBrace,
	'(': TokLParen,
	')': TokRParen,
	';': TokSemicolon,
	',': TokComma,
	'|': TokPipe,
	'<': TokLess,
}

// Lexer tokenizes ASN.1 module source text.
//
// Comments are dropped at token granularity: "--" starts a comment that
// runs to the end of the line or to the next "--", and "/* */" block
// comments may span lines.
type Lexer struct {
	src   []byte
	off   int
	diags []types.SpanDiagnostic
	types.Logger
}

// New returns a Lexer over source.
func New(source []byte, logger *slog.Logger) *Lexer {
	return &Lexer{
		src:    source,
		Logger: types.Logger{L: logger},
	}
}

// Tokenize consumes the whole source. The returned slice always ends with
// a TokEOF token.
func (l *Lexer) Tokenize() ([]Token, []types.SpanDiagnostic) {
	tokens := make([]Token, 0, max(len(l.src)/5, 64))
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenized",
		slog.Int("bytes", len(l.src)),
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diags)))
	return tokens, l.diags
}

// Next returns the next token, or TokEOF once the input is exhausted.
// Bytes that start no token are reported and skipped.
func (l *Lexer) Next() Token {
	for {
		l.skipTrivia()
		start := l.off
		if l.off >= len(l.src) {
			return l.emit(TokEOF, start)
		}
		if kind, ok := l.scan(); ok {
			return l.emit(kind, start)
		}
	}
}

func (l *Lexer) emit(kind TokenKind, start int) Token {
	tok := NewToken(kind, types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.off)))
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", kind.String()),
			slog.Int("start", start),
			slog.Int("end", l.off))
	}
	return tok
}

func (l *Lexer) errorf(start int, format string, args ...any) {
	l.diags = append(l.diags, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     types.DiagParseError,
		Span:     types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.off)),
		Message:  fmt.Sprintf(format, args...),
	})
}

// byteAt returns the byte i positions past the cursor, or 0 past the end.
func (l *Lexer) byteAt(i int) byte {
	if l.off+i >= len(l.src) {
		return 0
	}
	return l.src[l.off+i]
}

func (l *Lexer) at(i int, c byte) bool {
	return l.byteAt(i) == c
}

// skipTrivia skips whitespace and comments.
func (l *Lexer) skipTrivia() {
	for l.off < len(l.src) {
		switch c := l.src[l.off]; {
		case isSpace(c):
			l.off++
		case c == '-' && l.at(1, '-'):
			l.skipLineComment()
		case c == '/' && l.at(1, '*'):
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	l.off += 2
	for l.off < len(l.src) {
		switch c := l.src[l.off]; {
		case c == '\n' || c == '\r':
			l.off++
			return
		case c == '-' && l.at(1, '-'):
			l.off += 2
			return
		}
		l.off++
	}
}

// skipBlockComment skips a "/* */" comment. Block comments nest.
func (l *Lexer) skipBlockComment() {
	start := l.off
	l.off += 2
	for depth := 1; depth > 0; {
		switch {
		case l.off >= len(l.src):
			l.errorf(start, "unterminated block comment")
			return
		case l.src[l.off] == '/' && l.at(1, '*'):
			depth++
			l.off += 2
		case l.src[l.off] == '*' && l.at(1, '/'):
			depth--
			l.off += 2
		default:
			l.off++
		}
	}
}

// scan consumes the token at the cursor and returns its kind. ok is false
// when the byte there starts no token; it is reported and dropped.
func (l *Lexer) scan() (TokenKind, bool) {
	c := l.src[l.off]
	if kind := punct[c]; kind != TokError {
		l.off++
		return kind, true
	}

	switch {
	case c == '.':
		return l.scanDots(), true
	case c == ':':
		if l.at(1, ':') && l.at(2, '=') {
			l.off += 3
			return TokColonColonEqual, true
		}
		l.off++
		return TokColon, true
	case c == '-':
		l.off++
		if !isDigit(l.byteAt(0)) {
			return TokMinus, true
		}
		l.skipDigits()
		return TokNegativeNumber, true
	case isDigit(c):
		l.skipDigits()
		return TokNumber, true
	case c == '"':
		return l.scanCString(), true
	case c == '\'':
		return l.scanBString(), true
	case isLetter(c):
		return l.scanWord(), true
	}

	start := l.off
	l.off++
	l.errorf(start, "unexpected character: 0x%02x", c)
	return TokError, false
}

func (l *Lexer) scanDots() TokenKind {
	switch {
	case l.at(1, '.') && l.at(2, '.'):
		l.off += 3
		return TokEllipsis
	case l.at(1, '.'):
		l.off += 2
		return TokDotDot
	}
	l.off++
	return TokDot
}

func (l *Lexer) skipDigits() {
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
	}
}

// scanWord scans an identifier or keyword. A hyphen belongs to the word
// only when a word character follows it, so "a--b" and "a- " both end at a.
func (l *Lexer) scanWord() TokenKind {
	start := l.off
	l.off++
	for l.off < len(l.src) {
		c := l.src[l.off]
		if !isWordChar(c) && (c != '-' || !isWordChar(l.byteAt(1))) {
			break
		}
		l.off++
	}

	text := string(l.src[start:l.off])
	if kind, ok := LookupKeyword(text); ok {
		return kind
	}
	if IsUnsupportedKeyword(text) {
		return TokUnsupportedKeyword
	}
	if isUpper(l.src[start]) {
		return TokUppercaseIdent
	}
	return TokLowercaseIdent
}

// scanCString scans a "..." literal. A doubled quote is an escaped quote.
func (l *Lexer) scanCString() TokenKind {
	start := l.off
	l.off++
	for l.off < len(l.src) {
		if l.src[l.off] != '"' {
			l.off++
			continue
		}
		if l.at(1, '"') {
			l.off += 2
			continue
		}
		l.off++
		return TokQuotedString
	}
	l.errorf(start, "unterminated string literal")
	return TokQuotedString
}

// scanBString scans a '...'H or '...'B literal.
func (l *Lexer) scanBString() TokenKind {
	start := l.off
	end := bytes.IndexByte(l.src[l.off+1:], '\'')
	if end < 0 {
		l.off = len(l.src)
		l.errorf(start, "unterminated hex/binary string")
		return TokError
	}
	l.off += end + 2

	switch l.byteAt(0) {
	case 'H', 'h':
		l.off++
		return TokHexString
	case 'B', 'b':
		l.off++
		return TokBinString
	}
	l.errorf(start, "expected 'H' or 'B' suffix for hex/binary string")
	return TokError
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c|0x20) >= 'a' && (c|0x20) <= 'z'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
