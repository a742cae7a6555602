package parser

import (
	"fmt"

	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/naming"
	"github.com/golangsnmp/asngen/internal/types"
)

// listMode selects how the items of a brace list are read.
type listMode int

const (
	listMembers     listMode = iota // SEQUENCE / CHOICE: name Type
	listEnumerators                 // ENUMERATED: name [(n)]
	listAuto                        // decide per item
)

// parseStatement parses one top-level statement: a type assignment
// "Name ::= Type" or a value assignment "name Type ::= value". Returns nil
// when the statement defines nothing that can be emitted.
func (p *Parser) parseStatement() *module.Definition {
	first := p.peek()
	switch {
	case first.Kind != lexer.TokUppercaseIdent && first.Kind != lexer.TokLowercaseIdent:
		p.recordParseError(p.makeError(fmt.Sprintf("expected definition name, found %s", first.Kind)))
		return nil
	case p.peekNth(1).Kind == lexer.TokColonColonEqual:
		return p.parseTypeAssignment()
	case first.Kind == lexer.TokLowercaseIdent:
		return p.parseValueAssignment()
	default:
		p.advance()
		p.recordParseError(p.makeError(fmt.Sprintf("expected ::=, found %s", p.peek().Kind)))
		return nil
	}
}

// parseTypeAssignment parses: Name ::= Type
func (p *Parser) parseTypeAssignment() *module.Definition {
	nameToken := p.advance()
	p.advance() // ::=

	name := naming.TypeName(p.text(nameToken.Span))
	def := p.parseType(name, "", true)
	if def == nil {
		return nil
	}
	def.Span = types.NewSpan(nameToken.Span.Start, p.lastEnd())
	p.expectStatementEnd(name)
	return def
}

// parseValueAssignment parses: name Type ::= value
// Only integer literals are modeled; they become KindConstant nodes.
func (p *Parser) parseValueAssignment() *module.Definition {
	nameToken := p.advance()
	raw := p.text(nameToken.Span)

	if p.check(lexer.TokKwObject) {
		p.emitDiagnostic(types.DiagValueUnsupported, types.SeverityInfo, nameToken.Span,
			fmt.Sprintf("OBJECT IDENTIFIER value %q ignored", raw))
		return nil
	}

	if p.parseType(naming.TypeName(raw), "", false) == nil {
		return nil
	}
	if _, err := p.expect(lexer.TokColonColonEqual); err != nil {
		p.recordParseError(*err)
		return nil
	}

	valueToken := p.peek()
	if valueToken.Kind != lexer.TokNumber && valueToken.Kind != lexer.TokNegativeNumber {
		p.emitDiagnostic(types.DiagValueUnsupported, types.SeverityWarning, valueToken.Span,
			fmt.Sprintf("value %q is not an integer literal and is skipped", raw))
		return nil
	}
	p.advance()
	value, ok := p.parseI64(valueToken.Span, "constant value")
	if !ok {
		return nil
	}

	def := &module.Definition{
		Kind:       module.KindConstant,
		Name:       naming.ValueName(raw),
		Constraint: module.ConstraintConstant,
		Value:      value,
		Span:       types.NewSpan(nameToken.Span.Start, valueToken.Span.End),
	}
	p.expectStatementEnd(def.Name)
	return def
}

func (p *Parser) expectStatementEnd(name string) {
	if p.isEOF() {
		return
	}
	p.recordParseError(p.makeError(
		fmt.Sprintf("unexpected %s after definition of %s", p.peek().Kind, name)))
	p.pos = p.end
}

// parseType parses a type expression into a node named name. scope is the
// qualified name of the enclosing list, empty at top level. top marks a
// top-level assignment, where a bare type reference is an alias.
func (p *Parser) parseType(name, scope string, top bool) *module.Definition {
	start := p.peek().Span.Start
	p.skipTag()

	def := &module.Definition{Name: name, Scope: scope}
	qualified := def.QualifiedName()

	tok := p.peek()
	switch tok.Kind {
	case lexer.TokKwInteger:
		p.advance()
		def.Kind = module.KindInteger
		if p.check(lexer.TokLBrace) {
			p.skipBalanced() // named numbers
		}
		p.parseScalarConstraint(def)

	case lexer.TokKwBit, lexer.TokKwOctet:
		p.advance()
		if _, err := p.expect(lexer.TokKwString); err != nil {
			p.recordParseError(*err)
			p.recoverElement()
			return nil
		}
		def.Kind = module.KindOctetString
		if tok.Kind == lexer.TokKwBit {
			def.Kind = module.KindBitString
			if p.check(lexer.TokLBrace) {
				p.skipBalanced() // named bits
			}
		}
		p.parseScalarConstraint(def)

	case lexer.TokKwBoolean, lexer.TokKwNull:
		p.advance()
		def.Kind = module.KindBoolean
		if tok.Kind == lexer.TokKwNull {
			def.Kind = module.KindNull
		}
		def.Constraint = module.ConstraintUnconstrained

	case lexer.TokKwEnumerated:
		p.advance()
		def.Kind = module.KindEnumerated
		if !p.parseElementList(def, qualified, listEnumerators) {
			return nil
		}

	case lexer.TokKwSequence, lexer.TokKwSet:
		p.advance()
		if tok.Kind == lexer.TokKwSet {
			p.emitDiagnostic(types.DiagUnsupportedSyntax, types.SeverityMinor, tok.Span,
				fmt.Sprintf("SET in %s is treated as SEQUENCE", qualified))
		}
		if p.check(lexer.TokLBrace) {
			def.Kind = module.KindSequence
			if !p.parseElementList(def, qualified, listMembers) {
				return nil
			}
		} else {
			def.Kind = module.KindSequenceOf
			if !p.parseSequenceOf(def, qualified) {
				return nil
			}
		}

	case lexer.TokKwChoice:
		p.advance()
		def.Kind = module.KindChoice
		if !p.parseElementList(def, qualified, listMembers) {
			return nil
		}

	case lexer.TokUppercaseIdent:
		p.advance()
		ref := p.text(tok.Span)
		// External reference: Module.Type
		if p.check(lexer.TokDot) && p.peekNth(1).Kind == lexer.TokUppercaseIdent {
			p.advance()
			ref = p.text(p.advance().Span)
		}
		def.Kind = module.KindReference
		if top {
			def.Kind = module.KindAlias
		}
		def.Ref = naming.TypeName(ref)
		if p.check(lexer.TokLBrace) {
			p.emitDiagnostic(types.DiagUnsupportedSyntax, types.SeverityWarning, p.peek().Span,
				fmt.Sprintf("parameters of %s are ignored", ref))
			p.skipBalanced()
		}
		def.Constraint = module.ConstraintUnconstrained
		if p.check(lexer.TokLParen) {
			p.parseParenConstraint().apply(def)
		}

	case lexer.TokKwObject, lexer.TokUnsupportedKeyword:
		p.emitDiagnostic(types.DiagUnsupportedSyntax, types.SeverityWarning, tok.Span,
			fmt.Sprintf("type %s of %s is not supported", p.text(tok.Span), qualified))
		p.recoverElement()
		return nil

	default:
		p.recordParseError(p.makeError(
			fmt.Sprintf("expected type for %s, found %s", qualified, tok.Kind)))
		p.recoverElement()
		return nil
	}

	// Subtype constraints on structured types are not modeled.
	if def.Kind.IsStructural() || def.Kind == module.KindEnumerated {
		for p.check(lexer.TokLParen) {
			p.skipBalanced()
		}
	}

	def.Span = types.NewSpan(start, p.lastEnd())
	return def
}

// skipTag skips tag prefixes: [n], [APPLICATION n], IMPLICIT, EXPLICIT.
func (p *Parser) skipTag() {
	for p.check(lexer.TokLBracket) && p.peekNth(1).Kind != lexer.TokLBracket {
		if !p.skipBalanced() {
			return
		}
		if p.check(lexer.TokKwImplicit) || p.check(lexer.TokKwExplicit) {
			p.advance()
		}
	}
}

// parseScalarConstraint reads an optional parenthesized constraint after
// INTEGER, BIT STRING or OCTET STRING. Unconstrained scalars are marked as
// the base variant.
func (p *Parser) parseScalarConstraint(def *module.Definition) {
	def.Constraint = module.ConstraintUnconstrained
	if p.check(lexer.TokLParen) {
		p.parseParenConstraint().apply(def)
	}
	if def.Constraint == module.ConstraintUnconstrained {
		def.Base = true
	}
}

// parseSequenceOf parses the rest of:
//
//	SEQUENCE [(SIZE (lo..hi)) | SIZE (lo..hi)] OF [name] Type
//
// The element type becomes the single child, named after the parent.
func (p *Parser) parseSequenceOf(def *module.Definition, qualified string) bool {
	def.Constraint = module.ConstraintUnconstrained
	switch {
	case p.check(lexer.TokLParen):
		p.parseParenConstraint().apply(def)
	case p.check(lexer.TokKwSize):
		sizeStart := p.pos
		p.advance()
		closeIdx := -1
		if p.check(lexer.TokLParen) {
			closeIdx = p.matchClose(p.pos)
		}
		if closeIdx < 0 {
			p.emitDiagnostic(types.DiagConstraintMalformed, types.SeverityError, p.peek().Span,
				fmt.Sprintf("malformed SIZE constraint on %s", qualified))
			p.recoverElement()
			return false
		}
		p.constraintFrom(sizeStart, closeIdx+1).apply(def)
		p.pos = closeIdx + 1
	}

	if _, err := p.expect(lexer.TokKwOf); err != nil {
		p.recordParseError(*err)
		p.recoverElement()
		return false
	}

	// SEQUENCE OF item-name Type
	if p.check(lexer.TokLowercaseIdent) && startsType(p.peekNth(1).Kind) {
		p.advance()
	}

	item := p.parseType(qualified+"Item", "", false)
	if item == nil {
		return false
	}
	def.Children = []*module.Definition{item}
	return true
}

func startsType(kind lexer.TokenKind) bool {
	return kind == lexer.TokUppercaseIdent || kind == lexer.TokLBracket || kind.IsTypeKeyword()
}

// parseElementList parses a brace list of members or enumerators into
// parent.Children. The constraint becomes Extensible when the list holds
// "...", Constrained when it holds at least one item, and Unconstrained
// when it is empty.
func (p *Parser) parseElementList(parent *module.Definition, qualified string, mode listMode) bool {
	if _, err := p.expect(lexer.TokLBrace); err != nil {
		p.recordParseError(*err)
		p.recoverElement()
		return false
	}

	extension := false
	groups := 0
	for !p.isEOF() && !p.check(lexer.TokRBrace) {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokComma:
			p.advance()

		case tok.Kind == lexer.TokEllipsis:
			p.advance()
			parent.Constraint = module.ConstraintExtensible
			extension = true

		case tok.Kind == lexer.TokLBracket && p.peekNth(1).Kind == lexer.TokLBracket:
			// Extension addition group: [[ [version:] members ]]
			p.advance()
			p.advance()
			groups++
			extension = true
			if p.check(lexer.TokNumber) && p.peekNth(1).Kind == lexer.TokColon {
				p.advance()
				p.advance()
			}

		case tok.Kind == lexer.TokRBracket && p.peekNth(1).Kind == lexer.TokRBracket && groups > 0:
			p.advance()
			p.advance()
			groups--

		case tok.Kind == lexer.TokKwComponents:
			p.emitDiagnostic(types.DiagUnsupportedSyntax, types.SeverityWarning, tok.Span,
				fmt.Sprintf("COMPONENTS OF in %s is not supported", qualified))
			p.advance()
			p.recoverElement()

		case tok.Kind == lexer.TokUppercaseIdent || tok.Kind == lexer.TokLowercaseIdent:
			if child := p.parseElement(qualified, mode); child != nil {
				child.Extension = extension
				parent.Children = append(parent.Children, child)
			}

		default:
			p.recordParseError(p.makeError(
				fmt.Sprintf("unexpected %s in %s", tok.Kind, qualified)))
			p.advance()
			p.recoverElement()
		}
	}

	if _, err := p.expect(lexer.TokRBrace); err != nil {
		p.recordParseError(*err)
	}

	if parent.Constraint != module.ConstraintExtensible {
		if len(parent.Children) > 0 {
			parent.Constraint = module.ConstraintConstrained
		} else {
			parent.Constraint = module.ConstraintUnconstrained
		}
	}
	return true
}

// parseElement parses one list item: an enumerator "name [(n)]" or a
// member "name Type [OPTIONAL | DEFAULT value]". DEFAULT is treated as
// OPTIONAL and its value is discarded.
func (p *Parser) parseElement(qualified string, mode listMode) *module.Definition {
	nameToken := p.advance()
	raw := p.text(nameToken.Span)

	if mode == listEnumerators || (mode == listAuto && p.atEnumeratorEnd()) {
		e := &module.Definition{
			Kind: module.KindEnumerator,
			Name: naming.ValueName(raw),
			Span: nameToken.Span,
		}
		if p.check(lexer.TokLParen) {
			closeIdx := p.matchClose(p.pos)
			if numTok := p.peekNth(1); closeIdx == p.pos+2 &&
				(numTok.Kind == lexer.TokNumber || numTok.Kind == lexer.TokNegativeNumber) {
				e.Value, _ = p.parseI64(numTok.Span, "enumerator value")
			}
			p.skipBalanced()
		}
		if !p.atElementEnd() {
			p.recordParseError(p.makeError(
				fmt.Sprintf("unexpected %s after enumerator %s", p.peek().Kind, raw)))
			p.recoverElement()
		}
		e.Span = types.NewSpan(nameToken.Span.Start, p.lastEnd())
		return e
	}

	def := p.parseType(naming.TypeName(raw), qualified, false)
	if def == nil {
		return nil
	}
	switch {
	case p.check(lexer.TokKwOptional):
		p.advance()
		def.Optional = true
	case p.check(lexer.TokKwDefault):
		p.advance()
		def.Optional = true
		p.recoverElement()
	}
	def.Span = types.NewSpan(nameToken.Span.Start, p.lastEnd())
	if !p.atElementEnd() {
		p.recordParseError(p.makeError(
			fmt.Sprintf("unexpected %s after member %s", p.peek().Kind, def.Name)))
		p.recoverElement()
	}
	return def
}

func (p *Parser) atEnumeratorEnd() bool {
	return p.atElementEnd() || p.check(lexer.TokLParen)
}

func (p *Parser) atElementEnd() bool {
	switch p.peek().Kind {
	case lexer.TokComma, lexer.TokRBrace, lexer.TokEOF:
		return true
	case lexer.TokRBracket:
		return p.peekNth(1).Kind == lexer.TokRBracket
	}
	return false
}
