package parser

import (
	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/types"
)

// ParseStatement parses a single statement outside of any module. Accepted
// forms are "Name ::= Type", "name Type ::= value" and the member form
// "name Type". Unknown type names become references to be resolved later.
// The result is nil only when the statement holds nothing that can be
// emitted; the diagnostics say why.
func ParseStatement(text string) (*module.Definition, []types.SpanDiagnostic) {
	p := New([]byte(text), nil, types.DefaultConfig())
	if p.isEOF() {
		return nil, p.diagnostics
	}

	var def *module.Definition
	if p.hasAssignment() {
		def = p.parseStatement()
	} else if p.check(lexer.TokUppercaseIdent) || p.check(lexer.TokLowercaseIdent) {
		def = p.parseElement("", listAuto)
		if def != nil && !p.isEOF() {
			p.expectStatementEnd(def.Name)
		}
	} else {
		p.recordParseError(p.makeError("expected definition name"))
	}
	return def, p.diagnostics
}

// ParseSizeRange parses a size or range constraint such as "SIZE(1..16)",
// "(0..255, ...)" or "CONTAINING Foo". Outer parentheses are optional.
func ParseSizeRange(text string) Constraint {
	p := New([]byte(text), nil, types.DefaultConfig())
	start, end := 0, p.end
	if end > 0 && p.tokens[0].Kind == lexer.TokLParen && p.matchClose(0) == end-1 {
		start, end = 1, end-1
	}
	return p.constraintFrom(start, end)
}

// ParseValueList parses the inside of a brace list such as "a, b, ..." or
// "id ProtocolIE-ID, value INTEGER OPTIONAL". Bare names become
// enumerators; typed items become members.
func ParseValueList(text string) ([]*module.Definition, module.ConstraintKind) {
	p := New([]byte("{"+text+"}"), nil, types.DefaultConfig())
	parent := &module.Definition{Kind: module.KindSequence}
	p.parseElementList(parent, "", listAuto)
	return parent.Children, parent.Constraint
}

func (p *Parser) hasAssignment() bool {
	for i := p.pos; i < p.end; i++ {
		if p.tokens[i].Kind == lexer.TokColonColonEqual {
			return true
		}
	}
	return false
}
