package parser

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/naming"
	"github.com/golangsnmp/asngen/internal/types"
)

// parseHeader parses:
//
//	ModuleName [{ oid }] DEFINITIONS [tag default] [EXTENSIBILITY IMPLIED] ::= BEGIN
//	[EXPORTS ... ;]
//	[IMPORTS sym, sym FROM Module [{ oid }] ... ;]
func (p *Parser) parseHeader() module.Header {
	var h module.Header

	nameToken, err := p.expectIdentifier()
	if err != nil {
		p.recordParseError(*err)
		return h
	}
	h.Name = p.text(nameToken.Span)
	h.FileBase = p.prefix + naming.DeriveFileBase(h.Name)

	// Module OID before DEFINITIONS
	if p.check(lexer.TokLBrace) {
		p.skipBalanced()
	}

	if _, err := p.expect(lexer.TokKwDefinitions); err != nil {
		p.recordParseError(*err)
		return h
	}

	// AUTOMATIC TAGS, EXTENSIBILITY IMPLIED and friends change encoding
	// rules only.
	for !p.isEOF() && !p.check(lexer.TokColonColonEqual) {
		p.advance()
	}
	if _, err := p.expect(lexer.TokColonColonEqual); err != nil {
		p.recordParseError(*err)
		return h
	}
	if _, err := p.expect(lexer.TokKwBegin); err != nil {
		p.recordParseError(*err)
		return h
	}

	if p.check(lexer.TokKwExports) {
		for !p.isEOF() && !p.check(lexer.TokSemicolon) {
			p.advance()
		}
		p.advance()
	}

	if p.check(lexer.TokKwImports) {
		p.parseImports(&h)
	}

	if !p.isEOF() {
		p.recordParseError(p.makeError(
			fmt.Sprintf("unexpected %s in module header", p.peek().Kind)))
	}

	p.Log(slog.LevelDebug, "parsed header",
		slog.String("module", h.Name),
		slog.Int("includes", len(h.Includes)),
		slog.Int("imports", len(h.Imports)))
	return h
}

// parseImports parses: IMPORTS symbols FROM Module ... ;
// Each FROM clause adds one include; every symbol before it becomes an
// imported name.
func (p *Parser) parseImports(h *module.Header) {
	p.advance() // IMPORTS

	var pending []lexer.Token
	for !p.isEOF() {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokSemicolon:
			p.advance()
			p.flushPending(pending)
			return
		case lexer.TokComma:
			p.advance()
		case lexer.TokUppercaseIdent, lexer.TokLowercaseIdent:
			p.advance()
			// Parameterized reference: Foo{}
			if p.check(lexer.TokLBrace) {
				p.skipBalanced()
			}
			pending = append(pending, tok)
		case lexer.TokKwFrom:
			p.advance()
			modToken, err := p.expect(lexer.TokUppercaseIdent)
			if err != nil {
				p.recordParseError(*err)
				return
			}
			from := p.text(modToken.Span)
			h.AddInclude(from, p.prefix+naming.DeriveFileBase(from))
			for _, sym := range pending {
				h.AddImport(importName(p.text(sym.Span), sym.Kind))
			}
			pending = pending[:0]
			p.skipAssignedIdentifier()
		default:
			p.recordParseError(p.makeError(
				fmt.Sprintf("unexpected %s in IMPORTS", tok.Kind)))
			p.advance()
		}
	}
	p.flushPending(pending)
}

// skipAssignedIdentifier skips the optional module identification after
// "FROM Module": an OID in braces, a value reference, or WITH SUCCESSORS.
func (p *Parser) skipAssignedIdentifier() {
	switch {
	case p.check(lexer.TokLBrace):
		p.skipBalanced()
	case p.check(lexer.TokLowercaseIdent):
		// A value reference here is only an identifier when it is not the
		// first symbol of the next import group.
		next := p.peekNth(1).Kind
		if next != lexer.TokComma && next != lexer.TokKwFrom {
			p.advance()
		}
	}
	if p.check(lexer.TokKwWith) {
		p.advance()
		p.advance() // SUCCESSORS or DESCENDANTS
	}
}

func (p *Parser) flushPending(pending []lexer.Token) {
	if len(pending) == 0 {
		return
	}
	p.emitDiagnostic(types.DiagParseError, types.SeverityError, pending[0].Span,
		fmt.Sprintf("%d imported symbol(s) without FROM clause", len(pending)))
}

func importName(raw string, kind lexer.TokenKind) string {
	if kind == lexer.TokLowercaseIdent {
		return naming.ValueName(raw)
	}
	return naming.TypeName(raw)
}
