// Package parser turns ASN.1 module source into the module IR.
//
// Source is tokenized once, split into a header and definition statements
// (see Segment), and each statement is parsed by recursive descent into a
// module.Definition tree.
//
// Parsing is lenient: malformed or unsupported input produces diagnostics
// and the affected definition is dropped or approximated, but the rest of
// the module is still parsed. Whether those diagnostics fail a run is
// decided by the caller's DiagnosticConfig.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/types"
)

// Option configures a Parser.
type Option func(*Parser)

// WithFilePrefix prepends prefix to the module's output file base name and
// to every include file derived from its IMPORTS.
func WithFilePrefix(prefix string) Option {
	return func(p *Parser) {
		p.prefix = prefix
	}
}

// Parser converts a token stream into a module with diagnostics.
type Parser struct {
	source      []byte
	tokens      []lexer.Token
	pos         int
	end         int // exclusive token bound of the statement being parsed
	diagnostics []types.SpanDiagnostic
	diagConfig  types.DiagnosticConfig
	prefix      string
	types.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger, diagConfig types.DiagnosticConfig, opts ...Option) *Parser {
	lex := lexer.New(source, types.ComponentLogger(logger, "lexer"))
	all, lexDiags := lex.Tokenize()

	tokens := make([]lexer.Token, 0, len(all))
	for _, tok := range all {
		if tok.Kind != lexer.TokError {
			tokens = append(tokens, tok)
		}
	}

	p := &Parser{
		source:      source,
		tokens:      tokens,
		end:         len(tokens) - 1, // EOF is never part of a statement
		diagnostics: append([]types.SpanDiagnostic(nil), lexDiags...),
		diagConfig:  diagConfig,
		Logger:      types.Logger{L: logger},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("tokens", len(tokens)))
	return p
}

// Diagnostics returns the span diagnostics collected so far.
func (p *Parser) Diagnostics() []types.SpanDiagnostic {
	return p.diagnostics
}

// ParseModule parses a complete module. Parse errors are collected in the
// module's diagnostics rather than causing immediate failure.
func (p *Parser) ParseModule() *module.Module {
	seg := Segment(p.tokens)

	var header module.Header
	if seg.HasHeader {
		p.setRange(seg.Header)
		header = p.parseHeader()
	} else {
		p.emitDiagnostic(types.DiagMissingHeader, types.SeverityWarning, types.NewSpan(0, 0),
			"module has no DEFINITIONS header")
	}

	p.Log(slog.LevelDebug, "parsing module",
		slog.String("module", header.Name),
		slog.Int("statements", len(seg.Statements)))

	mod := module.NewModule(header)
	for _, stmt := range seg.Statements {
		p.setRange(stmt)
		def := p.parseStatement()
		if def == nil {
			continue
		}
		if p.TraceEnabled() {
			p.Trace("definition",
				slog.String("name", def.QualifiedName()),
				slog.String("kind", def.Kind.String()))
		}
		mod.Add(def)
	}

	if seg.Trailing < len(p.tokens)-1 {
		span := p.tokens[seg.Trailing].Span
		p.emitDiagnostic(types.DiagUnsupportedSyntax, types.SeverityWarning, span,
			"content after END is ignored")
	}

	mod.LineTable = types.BuildLineTable(p.source)
	for _, d := range p.diagnostics {
		mod.Diagnostics = append(mod.Diagnostics, d.Locate(header.Name, mod.LineTable))
	}

	p.Log(slog.LevelDebug, "parsing complete",
		slog.String("module", header.Name),
		slog.Int("definitions", len(mod.Definitions)),
		slog.Int("diagnostics", len(p.diagnostics)))

	return mod
}

// setRange restricts the parser to one statement's tokens.
func (p *Parser) setRange(stmt Statement) {
	p.pos = stmt.Start
	p.end = stmt.End
}

func (p *Parser) isEOF() bool {
	return p.pos >= p.end
}

func (p *Parser) peek() lexer.Token {
	return p.peekNth(0)
}

func (p *Parser) peekNth(n int) lexer.Token {
	if i := p.pos + n; i < p.end {
		return p.tokens[i]
	}
	return p.eofToken()
}

// eofToken is a zero-width EOF token placed at the end of the statement.
func (p *Parser) eofToken() lexer.Token {
	var off types.ByteOffset
	if p.end > 0 && p.end <= len(p.tokens) {
		off = p.tokens[p.end-1].Span.End
	}
	return lexer.NewToken(lexer.TokEOF, types.NewSpan(off, off))
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < p.end {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *types.SpanDiagnostic) {
	if p.check(kind) {
		return p.advance(), nil
	}
	diag := p.makeError(fmt.Sprintf("expected %s, found %s", kind, p.peek().Kind))
	return lexer.Token{}, &diag
}

func (p *Parser) expectIdentifier() (lexer.Token, *types.SpanDiagnostic) {
	if p.check(lexer.TokUppercaseIdent) || p.check(lexer.TokLowercaseIdent) {
		return p.advance(), nil
	}
	diag := p.makeError(fmt.Sprintf("expected identifier, found %s", p.peek().Kind))
	return lexer.Token{}, &diag
}

func (p *Parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

// lastEnd is the end offset of the most recently consumed token.
func (p *Parser) lastEnd() types.ByteOffset {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return 0
}

// emitDiagnostic records a diagnostic if the current config reports it.
func (p *Parser) emitDiagnostic(code string, severity types.Severity, span types.Span, message string) {
	if !p.diagConfig.ShouldReport(code, severity) {
		return
	}
	p.diagnostics = append(p.diagnostics, types.SpanDiagnostic{
		Severity: p.diagConfig.Effective(code, severity),
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

// recordParseError appends a structural parse error unconditionally.
// Parse errors bypass ShouldReport() filtering because they indicate
// a syntax problem that must be reported at any strictness level.
func (p *Parser) recordParseError(diag types.SpanDiagnostic) {
	p.diagnostics = append(p.diagnostics, diag)
}

func (p *Parser) makeError(message string) types.SpanDiagnostic {
	return types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     types.DiagParseError,
		Span:     p.peek().Span,
		Message:  message,
	}
}

func (p *Parser) parseI64(span types.Span, context string) (int64, bool) {
	v, err := strconv.ParseInt(p.text(span), 10, 64)
	if err != nil {
		p.emitDiagnostic(types.DiagValueUnsupported, types.SeverityError, span,
			fmt.Sprintf("invalid %s (not a valid integer)", context))
		return 0, false
	}
	return v, true
}

// matchClose returns the index of the bracket closing the one at index i,
// or -1 if it is not closed within the current statement.
func (p *Parser) matchClose(i int) int {
	return matchingClose(p.tokens[:p.end], i)
}

var closers = map[lexer.TokenKind]lexer.TokenKind{
	lexer.TokLParen:   lexer.TokRParen,
	lexer.TokLBrace:   lexer.TokRBrace,
	lexer.TokLBracket: lexer.TokRBracket,
}

func matchingClose(toks []lexer.Token, i int) int {
	if i < 0 || i >= len(toks) {
		return -1
	}
	open := toks[i].Kind
	closeKind, ok := closers[open]
	if !ok {
		return -1
	}
	depth := 0
	for j := i; j < len(toks); j++ {
		switch toks[j].Kind {
		case open:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// skipBalanced consumes the bracketed group starting at the current token.
// Reports false if the group is not closed before the end of the statement.
func (p *Parser) skipBalanced() bool {
	closeIdx := p.matchClose(p.pos)
	if closeIdx < 0 {
		p.pos = p.end
		return false
	}
	p.pos = closeIdx + 1
	return true
}

// recoverElement skips to the next top-level ',' or to the closing '}' or
// ']]' of the enclosing list, without consuming it.
func (p *Parser) recoverElement() {
	depth := 0
	for !p.isEOF() {
		switch p.peek().Kind {
		case lexer.TokLBrace, lexer.TokLParen:
			depth++
		case lexer.TokRParen:
			if depth > 0 {
				depth--
			}
		case lexer.TokRBrace:
			if depth == 0 {
				return
			}
			depth--
		case lexer.TokComma:
			if depth == 0 {
				return
			}
		case lexer.TokRBracket:
			if depth == 0 && p.peekNth(1).Kind == lexer.TokRBracket {
				return
			}
		}
		p.advance()
	}
}
