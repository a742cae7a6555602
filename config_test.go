package asngen

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/asngen/internal/testutil"
	"github.com/golangsnmp/asngen/internal/types"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
input:
  - asn/Common.asn
  - asn
output: gen
namespace: lte
file_prefix: Lte
runtime_header: asn/ASNTypes.h
banner: ""
extensions: [".asn", ".asn1"]
strictness: normal
fail_at: error
ignore: ["type-cycle"]
overrides:
  type-unknown: error
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"asn/Common.asn", "asn"}, cfg.Input)
	assert.Equal(t, "gen", cfg.Output)
	assert.Equal(t, "lte", cfg.Namespace)
	assert.Equal(t, "Lte", cfg.FilePrefix)
	assert.Equal(t, "asn/ASNTypes.h", cfg.RuntimeHeader)
	require.NotNil(t, cfg.Banner)
	assert.Equal(t, "", *cfg.Banner)

	dc, err := cfg.DiagnosticConfig()
	require.NoError(t, err)
	assert.Equal(t, StrictnessNormal, dc.Level)
	assert.Equal(t, SeverityError, dc.FailAt)
	assert.Equal(t, []string{"type-cycle"}, dc.Ignore)
	assert.Equal(t, SeverityError, dc.Overrides[types.DiagTypeUnknown])
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg.Banner)

	dc, err := cfg.DiagnosticConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultDiagnosticConfig(), dc)
}

func TestParseConfigUnknownKey(t *testing.T) {
	_, err := ParseConfig([]byte("inputs: [a]\n"))
	assert.Error(t, err)
}

func TestConfigBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"strictness", Config{Strictness: "pedantic"}},
		{"fail_at", Config{FailAt: "catastrophic"}},
		{"override", Config{Overrides: map[string]string{"type-unknown": "loud"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Options()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigResolvesPaths(t *testing.T) {
	dir := testutil.WriteModules(t, map[string]string{
		"asngen.yaml": "input: [asn]\noutput: gen\nnamespace: s1ap\n",
		"asn/A.asn":   "A DEFINITIONS ::= BEGIN T ::= NULL END",
		"asn/B.asn":   "B DEFINITIONS ::= BEGIN U ::= SEQUENCE { t T } END",
	})

	cfg, err := LoadConfig(filepath.Join(dir, DefaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gen"), cfg.Resolve(cfg.Output))
	assert.Equal(t, "/abs", cfg.Resolve("/abs"))

	src, err := cfg.Source()
	require.NoError(t, err)
	opts, err := cfg.Options()
	require.NoError(t, err)

	res, err := Compile(context.Background(), src, opts...)
	require.NoError(t, err)
	require.Len(t, res.Modules, 2)
	assert.Equal(t, []string{"U"}, res.Module("B").Declared)

	h := testutil.ReadFixture(t, filepath.Join(dir, "gen", "B.h"))
	assert.Contains(t, string(h), "namespace s1ap {")
}

func TestConfigSourceOrder(t *testing.T) {
	dir := testutil.WriteModules(t, map[string]string{
		"first/Z.asn": "",
		"rest/A.asn":  "",
		"rest/Z.asn":  "",
	})
	cfg := &Config{
		Input: []string{"first/Z.asn", "rest"},
		dir:   dir,
	}
	src, err := cfg.Source()
	require.NoError(t, err)

	files, err := src.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "first/Z.asn"),
		filepath.Join(dir, "rest/A.asn"),
		filepath.Join(dir, "rest/Z.asn"),
	}, filePaths(files))
}

func TestConfigSourceErrors(t *testing.T) {
	_, err := (&Config{}).Source()
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = (&Config{Input: []string{"/no/such/dir"}}).Source()
	assert.Error(t, err)
}
