package parser

import (
	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/types"
)

// Statement is one definition statement, a half-open range of tokens.
type Statement struct {
	Start int
	End   int
	Span  types.Span
}

// Segments is a module's token stream split into statements.
type Segments struct {
	// Header covers everything from the module name through the IMPORTS
	// list. Only meaningful when HasHeader is set.
	Header    Statement
	HasHeader bool

	Statements []Statement

	// Trailing is the index of the first token after the module's END, or
	// the EOF index when nothing follows.
	Trailing int
}

// Segment splits a token stream into a header and definition statements.
//
// A statement begins at the name preceding each "::=" in the module body:
// "Name ::= Type" starts at Name, a value assignment "name Type ::= value"
// starts at name. The module terminator END is dropped. Statements need not
// be on separate lines.
func Segment(tokens []lexer.Token) Segments {
	n := len(tokens)
	if n > 0 && tokens[n-1].Kind == lexer.TokEOF {
		n--
	}

	seg := Segments{Trailing: n}

	bodyStart := 0
	for i := 0; i+1 < n; i++ {
		if tokens[i].Kind == lexer.TokColonColonEqual && tokens[i+1].Kind == lexer.TokKwBegin {
			seg.HasHeader = true
			bodyStart = i + 2
			break
		}
	}

	bodyEnd := n
	for i := bodyStart; i < n; i++ {
		if tokens[i].Kind == lexer.TokKwEnd {
			bodyEnd = i
			seg.Trailing = i + 1
			break
		}
	}

	var starts []int
	floor := bodyStart
	for i := bodyStart; i < bodyEnd; i++ {
		if tokens[i].Kind != lexer.TokColonColonEqual {
			continue
		}
		starts = append(starts, statementStart(tokens, i, floor))
		floor = i + 1
	}

	headerEnd := bodyEnd
	if len(starts) > 0 {
		headerEnd = starts[0]
	}
	if seg.HasHeader {
		seg.Header = newStatement(tokens, 0, headerEnd)
	}

	for k, start := range starts {
		end := bodyEnd
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		seg.Statements = append(seg.Statements, newStatement(tokens, start, end))
	}
	return seg
}

// SplitStatements returns the source text of every statement in a module,
// header first when present.
func SplitStatements(source []byte) []string {
	lex := lexer.New(source, nil)
	tokens, _ := lex.Tokenize()
	seg := Segment(tokens)

	var out []string
	if seg.HasHeader {
		out = append(out, statementText(source, seg.Header))
	}
	for _, stmt := range seg.Statements {
		out = append(out, statementText(source, stmt))
	}
	return out
}

func statementText(source []byte, stmt Statement) string {
	return string(source[stmt.Span.Start:stmt.Span.End])
}

func newStatement(tokens []lexer.Token, start, end int) Statement {
	stmt := Statement{Start: start, End: end}
	if end > start {
		stmt.Span = types.NewSpan(tokens[start].Span.Start, tokens[end-1].Span.End)
	}
	return stmt
}

// statementStart walks back from the "::=" at index assign to the token
// that names the definition. floor is the first token after the previous
// statement's "::=".
func statementStart(tokens []lexer.Token, assign, floor int) int {
	i := assign - 1
	if i < floor {
		return assign
	}

	// name INTEGER ::= 5, name OBJECT IDENTIFIER ::= {...}
	j := i
	for j >= floor && isValueTypeKeyword(tokens[j].Kind) {
		j--
	}
	if j < i {
		if j >= floor && tokens[j].Kind == lexer.TokLowercaseIdent {
			return j
		}
		return j + 1
	}

	// name TypeRef ::= value, unless name is itself the value of the
	// previous assignment.
	if tokens[i].Kind == lexer.TokUppercaseIdent && i-1 >= floor &&
		tokens[i-1].Kind == lexer.TokLowercaseIdent &&
		(i-2 < 0 || tokens[i-2].Kind != lexer.TokColonColonEqual) {
		return i - 1
	}
	return i
}

func isValueTypeKeyword(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokKwInteger, lexer.TokKwBoolean, lexer.TokKwNull,
		lexer.TokKwBit, lexer.TokKwOctet, lexer.TokKwString,
		lexer.TokKwObject, lexer.TokKwIdentifier:
		return true
	}
	return false
}
