package parser

import (
	"strings"

	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/types"
)

// Constraint is a parsed size or range constraint.
type Constraint struct {
	Kind  module.ConstraintKind
	Lower string
	Upper string
}

func (c Constraint) apply(def *module.Definition) {
	def.Constraint = c.Kind
	def.Lower = c.Lower
	def.Upper = c.Upper
}

// parseParenConstraint consumes a parenthesized constraint starting at the
// current '(' token.
func (p *Parser) parseParenConstraint() Constraint {
	open := p.advance()
	closeIdx := p.matchClose(p.pos - 1)
	if closeIdx < 0 {
		p.emitDiagnostic(types.DiagConstraintMalformed, types.SeverityError, open.Span,
			"unbalanced parentheses in constraint")
		c := p.constraintFrom(p.pos, p.end)
		p.pos = p.end
		return c
	}
	c := p.constraintFrom(p.pos, closeIdx)
	p.pos = closeIdx + 1
	return c
}

// constraintFrom interprets the tokens in [start, end) as a constraint
// body such as "SIZE (1..16, ...)", "0..255" or "CONTAINING T".
//
// CONTAINING yields Unconstrained. Otherwise any comma makes the constraint
// Extensible, and the bounds are read from the first alternative of the
// root range: "lo..hi", or a single value used for both bounds. Bounds that
// are not numeric have '-' replaced with '_' so they can name constants.
func (p *Parser) constraintFrom(start, end int) Constraint {
	toks := p.tokens[start:end]

	for _, t := range toks {
		if t.Kind == lexer.TokKwContaining {
			return Constraint{Kind: module.ConstraintUnconstrained}
		}
	}

	c := Constraint{Kind: module.ConstraintConstrained}
	for _, t := range toks {
		if t.Kind == lexer.TokComma {
			c.Kind = module.ConstraintExtensible
			break
		}
	}

	body := toks
	for {
		if len(body) > 0 && body[0].Kind == lexer.TokKwSize {
			body = body[1:]
		}
		if len(body) > 0 && body[0].Kind == lexer.TokLParen {
			if cl := matchingClose(body, 0); cl > 0 {
				body = body[1:cl]
				continue
			}
		}
		break
	}

	root := body
	depth := 0
	for i, t := range body {
		switch t.Kind {
		case lexer.TokLParen, lexer.TokLBrace:
			depth++
		case lexer.TokRParen, lexer.TokRBrace:
			depth--
		case lexer.TokComma, lexer.TokPipe:
			if depth == 0 {
				root = body[:i]
			}
		}
		if len(root) != len(body) {
			break
		}
	}

	dotdot := -1
	for i, t := range root {
		if t.Kind == lexer.TokDotDot {
			dotdot = i
			break
		}
	}
	if dotdot < 0 {
		b := p.bound(root)
		c.Lower, c.Upper = b, b
	} else {
		c.Lower = p.bound(root[:dotdot])
		c.Upper = p.bound(root[dotdot+1:])
	}

	if c.Lower == "" && c.Upper == "" && len(toks) > 0 {
		span := types.NewSpan(toks[0].Span.Start, toks[len(toks)-1].Span.End)
		p.emitDiagnostic(types.DiagConstraintMalformed, types.SeverityMinor, span,
			"constraint has no bounds")
	} else if len(toks) == 0 {
		p.emitDiagnostic(types.DiagConstraintMalformed, types.SeverityMinor, p.peek().Span,
			"empty constraint")
	}
	return c
}

// bound joins the text of a bound expression.
func (p *Parser) bound(toks []lexer.Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == lexer.TokLess {
			continue
		}
		b.WriteString(p.text(t.Span))
	}
	s := b.String()
	if !isNumeric(strings.ReplaceAll(s, "-", "")) {
		s = strings.ReplaceAll(s, "-", "_")
	}
	return s
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
