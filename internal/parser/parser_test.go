package parser

import (
	"testing"

	"github.com/golangsnmp/asngen/internal/lexer"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/testutil"
	"github.com/golangsnmp/asngen/internal/types"
)

func parse(t *testing.T, source string, opts ...Option) *module.Module {
	t.Helper()
	p := New([]byte(source), nil, types.DefaultConfig(), opts...)
	return p.ParseModule()
}

func diagCodes(diags []types.Diagnostic) []string {
	codes := make([]string, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestParseEmptyModule(t *testing.T) {
	mod := parse(t, "TEST-MODULE DEFINITIONS ::= BEGIN END")

	testutil.Equal(t, "TEST-MODULE", mod.Name(), "module name")
	testutil.Equal(t, "TESTModule", mod.Header.FileBase, "file base")
	testutil.Len(t, mod.Definitions, 0, "body should be empty")
	testutil.Len(t, mod.Diagnostics, 0, "diagnostics")
}

func TestParseSingleLineModule(t *testing.T) {
	mod := parse(t, "Foo DEFINITIONS ::= BEGIN Bar ::= INTEGER (0..255) END")

	testutil.Equal(t, "Foo", mod.Name(), "module name")
	testutil.Len(t, mod.Definitions, 1, "definitions count")

	bar := mod.Definitions[0]
	testutil.Equal(t, module.KindInteger, bar.Kind, "kind")
	testutil.Equal(t, "Bar", bar.Name, "name")
	testutil.Equal(t, module.ConstraintConstrained, bar.Constraint, "constraint")
	testutil.Equal(t, "0", bar.Lower, "lower")
	testutil.Equal(t, "255", bar.Upper, "upper")
	testutil.False(t, bar.Base, "constrained integer is not the base variant")
}

func TestParseModuleWithImports(t *testing.T) {
	mod := parse(t, `S1AP-PDU-Contents DEFINITIONS AUTOMATIC TAGS ::=
BEGIN

IMPORTS
	Criticality,
	ProtocolIE-ID
FROM S1AP-CommonDataTypes
	maxNrOfErrors,
	id-Cause
FROM S1AP-Constants { itu-t (0) identified-organization (4) };

Msg ::= SEQUENCE {
	id	ProtocolIE-ID,
	criticality	Criticality
}

END
`)

	testutil.Equal(t, "S1AP-PDU-Contents", mod.Name(), "module name")
	testutil.Equal(t, "S1APPduContents", mod.Header.FileBase, "file base")
	testutil.Len(t, mod.Header.Includes, 2, "includes")
	testutil.Equal(t, "S1AP-CommonDataTypes", mod.Header.Includes[0].Module, "first include module")
	testutil.Equal(t, "S1APCommondatatypes", mod.Header.Includes[0].File, "first include file")
	testutil.Equal(t, "S1APConstants", mod.Header.Includes[1].File, "second include file")
	testutil.SliceEqual(t, []string{"Criticality", "ProtocolIEID", "maxNrOfErrors", "id_Cause"},
		mod.Header.Imports, "imports")
	testutil.True(t, mod.Header.IsImported("ProtocolIEID"), "ProtocolIEID imported")
	testutil.False(t, mod.Header.IsImported("Msg"), "Msg is local")
	testutil.Len(t, mod.Definitions, 1, "definitions count")
	testutil.Len(t, mod.Diagnostics, 0, "diagnostics")
}

func TestParseFilePrefix(t *testing.T) {
	mod := parse(t, `X2AP-PDU DEFINITIONS ::= BEGIN
IMPORTS Cause FROM X2AP-IEs;
END`, WithFilePrefix("Lte"))

	testutil.Equal(t, "LteX2APPdu", mod.Header.FileBase, "prefixed file base")
	testutil.Len(t, mod.Header.Includes, 1, "includes")
	testutil.Equal(t, "LteX2APIes", mod.Header.Includes[0].File, "prefixed include")
}

func TestParseModuleOIDAndExports(t *testing.T) {
	mod := parse(t, `M { iso (1) 2 } DEFINITIONS IMPLICIT TAGS EXTENSIBILITY IMPLIED ::= BEGIN
EXPORTS ALL;
A ::= BOOLEAN
END`)

	testutil.Equal(t, "M", mod.Name(), "module name")
	testutil.Len(t, mod.Definitions, 1, "definitions count")
	testutil.Len(t, mod.Diagnostics, 0, "diagnostics")
}

func TestParseDefinitionKinds(t *testing.T) {
	mod := parse(t, `Kinds DEFINITIONS ::= BEGIN
Flag ::= BOOLEAN
Nothing ::= NULL
Count ::= INTEGER
Small ::= INTEGER (0..7)
Bits ::= BIT STRING (SIZE(16))
Octets ::= OCTET STRING
Name ::= ProtocolIE-ID
maxNrOfErrors INTEGER ::= 256
id-Cause ProtocolIE-ID ::= 2
END`)

	testutil.Len(t, mod.Diagnostics, 0, "diagnostics")
	testutil.Len(t, mod.Definitions, 9, "definitions count")

	tests := []struct {
		name string
		kind module.Kind
		ct   module.ConstraintKind
		base bool
	}{
		{"Flag", module.KindBoolean, module.ConstraintUnconstrained, false},
		{"Nothing", module.KindNull, module.ConstraintUnconstrained, false},
		{"Count", module.KindInteger, module.ConstraintUnconstrained, true},
		{"Small", module.KindInteger, module.ConstraintConstrained, false},
		{"Bits", module.KindBitString, module.ConstraintConstrained, false},
		{"Octets", module.KindOctetString, module.ConstraintUnconstrained, true},
		{"Name", module.KindAlias, module.ConstraintUnconstrained, false},
		{"maxNrOfErrors", module.KindConstant, module.ConstraintConstant, false},
		{"id_Cause", module.KindConstant, module.ConstraintConstant, false},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := mod.Definitions[i]
			testutil.Equal(t, tt.name, def.Name, "name")
			testutil.Equal(t, tt.kind, def.Kind, "kind")
			testutil.Equal(t, tt.ct, def.Constraint, "constraint")
			testutil.Equal(t, tt.base, def.Base, "base")
			testutil.Len(t, def.Check(), 0, "invariant problems")
		})
	}

	testutil.Equal(t, "ProtocolIEID", mod.Definitions[6].Ref, "alias target")
	testutil.Equal(t, "16", mod.Definitions[4].Lower, "bit string lower")
	testutil.Equal(t, "16", mod.Definitions[4].Upper, "bit string upper")
	testutil.Equal(t, int64(256), mod.Definitions[7].Value, "constant value")
	testutil.Equal(t, int64(2), mod.Definitions[8].Value, "constant value")
}

func TestParseSequence(t *testing.T) {
	def, diags := ParseStatement(
		"Msg ::= SEQUENCE { id ProtocolIE-ID, count INTEGER (0..7) OPTIONAL, flag BOOLEAN DEFAULT TRUE, ... }")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.NotNil(t, def, "definition")
	testutil.Equal(t, module.KindSequence, def.Kind, "kind")
	testutil.Equal(t, module.ConstraintExtensible, def.Constraint, "constraint")
	testutil.Len(t, def.Children, 3, "members")

	id, count, flag := def.Children[0], def.Children[1], def.Children[2]
	testutil.Equal(t, module.KindReference, id.Kind, "id kind")
	testutil.Equal(t, "Id", id.Name, "id name")
	testutil.Equal(t, "Msg", id.Scope, "id scope")
	testutil.Equal(t, "ProtocolIEID", id.Ref, "id ref")
	testutil.False(t, id.Optional, "id is mandatory")

	testutil.Equal(t, module.KindInteger, count.Kind, "count kind")
	testutil.Equal(t, "MsgCount", count.QualifiedName(), "count qualified name")
	testutil.True(t, count.Optional, "OPTIONAL")

	testutil.Equal(t, module.KindBoolean, flag.Kind, "flag kind")
	testutil.True(t, flag.Optional, "DEFAULT is treated as OPTIONAL")
	testutil.Len(t, def.Check(), 0, "invariant problems")
}

func TestParseNestedSequence(t *testing.T) {
	def, diags := ParseStatement("Outer ::= SEQUENCE { inner SEQUENCE { x INTEGER (1..2) }, tail NULL }")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Len(t, def.Children, 2, "members")

	inner := def.Children[0]
	testutil.Equal(t, module.KindSequence, inner.Kind, "inner kind")
	testutil.Equal(t, "OuterInner", inner.QualifiedName(), "inner qualified name")
	testutil.Len(t, inner.Children, 1, "inner members")
	testutil.Equal(t, "OuterInner", inner.Children[0].Scope, "nested scope")
	testutil.Equal(t, "OuterInnerX", inner.Children[0].QualifiedName(), "nested qualified name")
}

func TestParseChoice(t *testing.T) {
	def, diags := ParseStatement(`S1AP-PDU ::= CHOICE {
		initiatingMessage	InitiatingMessage,
		successfulOutcome	SuccessfulOutcome,
		...
	}`)

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, "S1APPDU", def.Name, "name")
	testutil.Equal(t, module.KindChoice, def.Kind, "kind")
	testutil.Equal(t, module.ConstraintExtensible, def.Constraint, "constraint")
	testutil.Len(t, def.Children, 2, "branches")
	testutil.Equal(t, "InitiatingMessage", def.Children[0].Name, "branch name")
	testutil.Equal(t, "InitiatingMessage", def.Children[0].Ref, "branch ref")
}

func TestParseEnumerated(t *testing.T) {
	def, diags := ParseStatement("Color ::= ENUMERATED { red, green-Light (5), blue }")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, module.KindEnumerated, def.Kind, "kind")
	testutil.Equal(t, module.ConstraintConstrained, def.Constraint, "constraint")
	testutil.Len(t, def.Children, 3, "enumerators")

	names := make([]string, 0, len(def.Children))
	for _, e := range def.Children {
		testutil.Equal(t, module.KindEnumerator, e.Kind, "enumerator kind")
		names = append(names, e.Name)
	}
	testutil.SliceEqual(t, []string{"red", "green_Light", "blue"}, names, "enumerator names")
	testutil.Equal(t, int64(5), def.Children[1].Value, "explicit value")
}

func TestParseEnumeratedExtension(t *testing.T) {
	def, diags := ParseStatement("Cause ::= ENUMERATED { a, ..., b }")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, module.ConstraintExtensible, def.Constraint, "constraint")
	testutil.Len(t, def.Children, 2, "enumerators")
	testutil.False(t, def.Children[0].Extension, "root enumerator")
	testutil.True(t, def.Children[1].Extension, "extension enumerator")
}

func TestParseExtensionGroup(t *testing.T) {
	def, diags := ParseStatement("S ::= SEQUENCE { a INTEGER, ..., [[ 2: b BOOLEAN, c NULL ]] }")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Len(t, def.Children, 3, "members")
	testutil.False(t, def.Children[0].Extension, "a")
	testutil.True(t, def.Children[1].Extension, "b")
	testutil.True(t, def.Children[2].Extension, "c")
	testutil.Equal(t, module.ConstraintExtensible, def.Constraint, "constraint")
}

func TestParseSequenceOf(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  module.Kind
		ref   string
		ct    module.ConstraintKind
		lower string
		upper string
	}{
		{
			name: "parenthesized size",
			text: "List ::= SEQUENCE (SIZE(1..maxNrOfItems)) OF Item",
			kind: module.KindReference, ref: "Item",
			ct: module.ConstraintConstrained, lower: "1", upper: "maxNrOfItems",
		},
		{
			name: "bare size",
			text: "List ::= SEQUENCE SIZE(1..4) OF INTEGER (0..5)",
			kind: module.KindInteger,
			ct:   module.ConstraintConstrained, lower: "1", upper: "4",
		},
		{
			name: "unconstrained",
			text: "List ::= SEQUENCE OF BOOLEAN",
			kind: module.KindBoolean,
			ct:   module.ConstraintUnconstrained,
		},
		{
			name: "named item",
			text: "List ::= SET SIZE(1..8, ...) OF item ProtocolIE-Field",
			kind: module.KindReference, ref: "ProtocolIEField",
			ct: module.ConstraintExtensible, lower: "1", upper: "8",
		},
		{
			name: "named builtin item",
			text: "List ::= SEQUENCE OF entry OCTET STRING",
			kind: module.KindOctetString,
			ct:   module.ConstraintUnconstrained,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, _ := ParseStatement(tt.text)
			testutil.NotNil(t, def, "definition")
			testutil.Equal(t, module.KindSequenceOf, def.Kind, "kind")
			testutil.Equal(t, tt.ct, def.Constraint, "constraint")
			testutil.Equal(t, tt.lower, def.Lower, "lower")
			testutil.Equal(t, tt.upper, def.Upper, "upper")
			testutil.Len(t, def.Children, 1, "exactly one item")

			item := def.Children[0]
			testutil.Equal(t, "ListItem", item.Name, "item name")
			testutil.Equal(t, "", item.Scope, "item has no scope")
			testutil.Equal(t, tt.kind, item.Kind, "item kind")
			testutil.Equal(t, tt.ref, item.Ref, "item ref")
			testutil.Len(t, def.Check(), 0, "invariant problems")
		})
	}
}

func TestStartsType(t *testing.T) {
	for _, kind := range []lexer.TokenKind{
		lexer.TokUppercaseIdent, lexer.TokLBracket, lexer.TokKwInteger,
		lexer.TokKwOctet, lexer.TokKwSet, lexer.TokKwChoice, lexer.TokKwObject,
	} {
		testutil.True(t, startsType(kind), "%s starts a type", kind)
	}
	for _, kind := range []lexer.TokenKind{
		lexer.TokKwOf, lexer.TokKwString, lexer.TokKwIdentifier, lexer.TokLowercaseIdent,
	} {
		testutil.False(t, startsType(kind), "%s does not start a type", kind)
	}
}

func TestParseTaggedType(t *testing.T) {
	def, diags := ParseStatement("Foo ::= [APPLICATION 3] IMPLICIT INTEGER (0..10)")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, module.KindInteger, def.Kind, "kind")
	testutil.Equal(t, "10", def.Upper, "upper")

	def, diags = ParseStatement("S ::= SEQUENCE { a [0] BOOLEAN, b [1] EXPLICIT NULL }")
	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Len(t, def.Children, 2, "tagged members")
}

func TestParseMemberForm(t *testing.T) {
	def, diags := ParseStatement("my-field-Name INTEGER (1..3) OPTIONAL")

	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, "MyfieldName", def.Name, "name")
	testutil.Equal(t, module.KindInteger, def.Kind, "kind")
	testutil.True(t, def.Optional, "optional")
}

func TestParseStatementUnsupported(t *testing.T) {
	def, diags := ParseStatement("Pi ::= REAL")
	testutil.Nil(t, def, "REAL is not emitted")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.DiagUnsupportedSyntax, diags[0].Code, "code")

	def, diags = ParseStatement("oid OBJECT IDENTIFIER ::= { 1 2 3 }")
	testutil.Nil(t, def, "OBJECT IDENTIFIER value is not emitted")
	testutil.Len(t, diags, 0, "info is below the default report level")

	def, diags = ParseStatement("name UTF8String ::= \"x\"")
	testutil.Nil(t, def, "string value is not emitted")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.DiagValueUnsupported, diags[0].Code, "code")
}

func TestParseComponentsOf(t *testing.T) {
	def, diags := ParseStatement("S ::= SEQUENCE { COMPONENTS OF Base, a INTEGER }")

	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.DiagUnsupportedSyntax, diags[0].Code, "code")
	testutil.Len(t, def.Children, 1, "remaining members")
	testutil.Equal(t, "A", def.Children[0].Name, "member name")
}

func TestParseErrorRecovery(t *testing.T) {
	mod := parse(t, `Broken DEFINITIONS ::= BEGIN
Good ::= BOOLEAN
Bad ::= SEQUENCE { a }
AlsoGood ::= NULL
END`)

	testutil.Len(t, mod.Definitions, 3, "all statements parsed")
	testutil.Len(t, mod.Definitions[1].Children, 0, "bad member dropped")
	testutil.Equal(t, "AlsoGood", mod.Definitions[2].Name, "parsing continues")

	testutil.Len(t, mod.Diagnostics, 1, "diagnostics")
	d := mod.Diagnostics[0]
	testutil.Equal(t, types.DiagParseError, d.Code, "code")
	testutil.Equal(t, types.SeverityError, d.Severity, "severity")
	testutil.Equal(t, "Broken", d.Module, "module")
	testutil.Equal(t, 3, d.Line, "line")
	testutil.True(t, mod.HasErrors(), "module has errors")
}

func TestParseMissingHeader(t *testing.T) {
	mod := parse(t, "Bar ::= INTEGER (0..1)\n")

	testutil.Equal(t, "", mod.Name(), "no module name")
	testutil.Len(t, mod.Definitions, 1, "definitions count")
	testutil.SliceEqual(t, []string{types.DiagMissingHeader}, diagCodes(mod.Diagnostics), "codes")
}

func TestParseContentAfterEnd(t *testing.T) {
	mod := parse(t, "A DEFINITIONS ::= BEGIN B ::= NULL END trailing")

	testutil.Len(t, mod.Definitions, 1, "definitions count")
	testutil.SliceEqual(t, []string{types.DiagUnsupportedSyntax}, diagCodes(mod.Diagnostics), "codes")
}

func TestParseComments(t *testing.T) {
	mod := parse(t, `A DEFINITIONS ::= BEGIN -- header comment
-- Hidden ::= BOOLEAN
B ::= INTEGER -- inline -- (0..3) -- trailing
/* C ::= NULL
   /* nested */ */
D ::= NULL
END`)

	testutil.Len(t, mod.Diagnostics, 0, "diagnostics")
	testutil.Len(t, mod.Definitions, 2, "definitions count")
	testutil.Equal(t, "B", mod.Definitions[0].Name, "first")
	testutil.Equal(t, "D", mod.Definitions[1].Name, "second")
}

func TestParseDuplicateNameFirstWins(t *testing.T) {
	mod := parse(t, "A DEFINITIONS ::= BEGIN X ::= BOOLEAN X ::= NULL END")

	x := mod.Lookup("X")
	testutil.NotNil(t, x, "lookup")
	testutil.Equal(t, module.KindBoolean, x.Kind, "first definition wins")
}

func TestParseStrictReportsMinor(t *testing.T) {
	src := []byte("A DEFINITIONS ::= BEGIN S ::= SET { a NULL } END")

	lenient := New(src, nil, types.DefaultConfig()).ParseModule()
	testutil.Len(t, lenient.Diagnostics, 1, "minor is reported in permissive mode")

	silent := New(src, nil, types.ConfigFor(types.StrictnessSilent)).ParseModule()
	testutil.Len(t, silent.Diagnostics, 0, "silent mode")
	testutil.Equal(t, module.KindSequence, silent.Definitions[0].Kind, "SET is parsed as SEQUENCE")
}
