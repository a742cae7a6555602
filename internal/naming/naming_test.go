package naming

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFileBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foo", "Foo"},
		{"S1AP-PDU", "S1APPdu"},
		{"S1AP-PDU-Contents", "S1APPduContents"},
		{"S1AP-IEs;", "S1APIes"},
		{"X2AP-Constants", "X2APConstants"},
		{"  Foo-bar  ", "FooBar"},
		{"X-e2ap-ies", "XE2ApIes"},
		{"E2AP-PDU-Contents", "E2APPduContents"},
		{"M-a1b2c", "MA1B2C"},
		{"M-ran_node", "MRan_Node"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFileBase(tt.in))
		})
	}
}

func TestToIdentifier(t *testing.T) {
	tests := []struct {
		in    string
		strip bool
		want  string
	}{
		{"rrc-Establishment-Request", true, "RrcEstablishmentRequest"},
		{"my-field-Name", true, "MyfieldName"},
		{"Bar", true, "Bar"},
		{"id-MME-UE-S1AP-ID", false, "id_MME_UE_S1AP_ID"},
		{"maxNrOfErrors", false, "maxNrOfErrors"},
		{"3gpp-thing", false, "_3gpp_thing"},
		{"3gpp-thing", true, "_3gppthing"},
		{"", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToIdentifier(tt.in, tt.strip))
		})
	}
}

func TestTypeAndValueName(t *testing.T) {
	assert.Equal(t, "ProtocolIEID", TypeName("ProtocolIE-ID"))
	assert.Equal(t, "red_light", ValueName("red-light"))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "cause", LowerFirst("Cause"))
	assert.Equal(t, "cause", LowerFirst("cause"))
	assert.Equal(t, "", LowerFirst(""))
	assert.Equal(t, "_x", LowerFirst("_x"))
}

func TestAccessor(t *testing.T) {
	assert.Equal(t, "value", Accessor("Value"))
	assert.Equal(t, "default_", Accessor("Default"))
	assert.Equal(t, "delete_", Accessor("delete"))
}

func TestGuardMacro(t *testing.T) {
	assert.Equal(t, "S1APPDU_H_", GuardMacro("S1APPdu"))
}

func TestReservedSorted(t *testing.T) {
	assert.True(t, sort.StringsAreSorted(cppReserved))
}
