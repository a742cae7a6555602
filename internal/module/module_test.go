package module

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/asngen/internal/types"
)

func sampleSequence() *Definition {
	return &Definition{
		Kind:       KindSequence,
		Name:       "Msg",
		Constraint: ConstraintConstrained,
		Children: []*Definition{
			{Kind: KindReference, Name: "Id", Ref: "ProtocolIEID", Constraint: ConstraintUnconstrained},
			{Kind: KindInteger, Name: "Count", Scope: "Msg", Constraint: ConstraintConstrained, Lower: "0", Upper: "7"},
			{Kind: KindReference, Name: "Other", Ref: "ProtocolIEID", Optional: true},
		},
	}
}

func TestHeaderImports(t *testing.T) {
	var h Header
	h.AddImport("Foo")
	h.AddImport("Bar")
	h.AddImport("Foo")

	assert.Equal(t, []string{"Foo", "Bar"}, h.Imports)
	assert.True(t, h.IsImported("Bar"))
	assert.False(t, h.IsImported("Baz"))
}

func TestModuleLookup(t *testing.T) {
	m := NewModule(Header{Name: "Test"})
	first := &Definition{Kind: KindBoolean, Name: "Flag"}
	m.Add(first)
	m.Add(&Definition{Kind: KindNull, Name: "Flag"})
	m.Add(&Definition{Kind: KindInteger, Name: "Count"})

	assert.Same(t, first, m.Lookup("Flag"))
	assert.Nil(t, m.Lookup("Missing"))
	assert.Equal(t, []string{"Flag", "Flag", "Count"}, slices.Collect(m.DefinitionNames()))
	assert.Equal(t, "Test", m.Name())
}

func TestModuleHasErrors(t *testing.T) {
	m := NewModule(Header{Name: "Test"})
	assert.False(t, m.HasErrors())

	m.Diagnostics = append(m.Diagnostics, types.Diagnostic{Severity: types.SeverityWarning})
	assert.False(t, m.HasErrors())

	m.Diagnostics = append(m.Diagnostics, types.Diagnostic{Severity: types.SeverityError})
	assert.True(t, m.HasErrors())
}

func TestQualifiedAndTypeName(t *testing.T) {
	seq := sampleSequence()
	assert.Equal(t, "Msg", seq.QualifiedName())
	assert.Equal(t, "ProtocolIEID", seq.Children[0].TypeName())
	assert.Equal(t, "MsgCount", seq.Children[1].TypeName())
}

func TestReferences(t *testing.T) {
	assert.Equal(t, []string{"ProtocolIEID"}, sampleSequence().References())
}

func TestCheck(t *testing.T) {
	assert.Empty(t, sampleSequence().Check())

	bad := &Definition{Kind: KindSequenceOf, Name: "List"}
	problems := bad.Check()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "sequence-of has 0 children")

	constant := &Definition{Kind: KindInteger, Name: "x", Constraint: ConstraintConstant}
	assert.Len(t, constant.Check(), 1)
}

func TestRuntimeType(t *testing.T) {
	tests := []struct {
		kind Kind
		base bool
		want string
	}{
		{KindInteger, false, "Integer"},
		{KindInteger, true, "IntegerBase"},
		{KindOctetString, true, "OctetStringBase"},
		{KindBitString, false, "BitString"},
		{KindBoolean, false, "Boolean"},
		{KindNull, true, "Null"},
		{KindReference, false, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.RuntimeType(tt.base), "%s base=%v", tt.kind, tt.base)
	}
}

func TestConstraintKindString(t *testing.T) {
	assert.Equal(t, "CONSTRAINED", ConstraintConstrained.String())
	assert.Equal(t, "EXTCONSTRAINED", ConstraintExtensible.String())
	assert.Equal(t, "UNCONSTRAINED", ConstraintUnconstrained.String())
}

func TestDefinitionYAML(t *testing.T) {
	def := &Definition{
		Kind:       KindInteger,
		Name:       "Bar",
		Constraint: ConstraintConstrained,
		Lower:      "0",
		Upper:      "255",
	}
	out, err := yaml.Marshal(def)
	require.NoError(t, err)

	want := "kind: integer\nname: Bar\nconstraint: CONSTRAINED\nlower: \"0\"\nupper: \"255\"\n"
	assert.Equal(t, want, string(out))
}
