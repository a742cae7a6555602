package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/asngen/internal/testutil"
)

const (
	commonModule = "../../testdata/asn/S1AP-CommonDataTypes.asn"
	pduModule    = "../../testdata/asn/S1AP-PDU.asn"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRootCommands(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"compile", "check", "dump", "version"})

	compile, _, err := cmd.Find([]string{"compile"})
	require.NoError(t, err)
	for _, flag := range []string{"output", "namespace", "prefix", "runtime-header", "banner",
		"no-banner", "ext", "recursive", "strict", "strictness", "fail-at", "ignore"} {
		assert.NotNil(t, compile.Flags().Lookup(flag), "compile --%s", flag)
	}
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	code, stdout, stderr := runCLI(t, "compile", "-o", dir, "--namespace", "s1ap", commonModule, pduModule)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "S1AP-CommonDataTypes: S1APCommondatatypes.h, S1APCommondatatypes.cc")
	assert.Contains(t, stdout, "S1AP-PDU: S1APPdu.h, S1APPdu.cc")
	assert.Contains(t, stdout, "2 modules")

	for _, name := range []string{"S1APCommondatatypes.h", "S1APCommondatatypes.cc", "S1APPdu.h", "S1APPdu.cc"} {
		got := testutil.ReadFixture(t, filepath.Join(dir, name))
		want := testutil.ReadFixture(t, filepath.Join("../../testdata/golden", name+".golden"))
		assert.Equal(t, string(want), string(got), name)
	}
}

func TestCompileDirectory(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t, "compile", "-o", dir, "--no-banner", "../../testdata/asn")
	require.Equal(t, exitOK, code, stderr)

	h := testutil.ReadFixture(t, filepath.Join(dir, "S1APPdu.h"))
	assert.NotContains(t, string(h), "DO NOT EDIT")
	assert.Contains(t, string(h), "namespace s1appdu {")
}

func TestCompileNoInputs(t *testing.T) {
	code, _, stderr := runCLI(t, "compile")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "no inputs")
}

func TestCompileProjectFile(t *testing.T) {
	dir := testutil.WriteModules(t, map[string]string{
		"asngen.yaml": "input: [asn]\noutput: gen\nnamespace: lte\n",
		"asn/A.asn":   "A DEFINITIONS ::= BEGIN T ::= NULL END",
	})

	code, stdout, stderr := runCLI(t, "compile", "-c", filepath.Join(dir, "asngen.yaml"), "--prefix", "Lte")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "A: LteA.h, LteA.cc")

	h := testutil.ReadFixture(t, filepath.Join(dir, "gen", "LteA.h"))
	assert.Contains(t, string(h), "namespace lte {")
}

func TestCheckCommand(t *testing.T) {
	dir := testutil.WriteModules(t, map[string]string{
		"asngen.yaml": "input: [Broken.asn]\noutput: gen\n",
		"Broken.asn":  "Broken DEFINITIONS ::= BEGIN T ::= SEQUENCE { a } END",
	})
	cfg := filepath.Join(dir, "asngen.yaml")

	code, stdout, stderr := runCLI(t, "check", "-c", cfg)
	assert.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Broken:")
	assert.Contains(t, stdout, "[parse-error]")

	_, err := os.Stat(filepath.Join(dir, "gen"))
	assert.True(t, os.IsNotExist(err), "check writes nothing")

	code, _, stderr = runCLI(t, "check", "-c", cfg, "--strict")
	assert.Equal(t, exitStrictViolation, code)
	assert.Contains(t, stderr, "error:")

	code, _, _ = runCLI(t, "check", "-c", cfg, "--strict", "--fail-at", "fatal")
	assert.Equal(t, exitOK, code)
}

func TestCheckListCodes(t *testing.T) {
	code, stdout, _ := runCLI(t, "check", "--list-codes")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "parse-error")
	assert.Contains(t, stdout, "type-redeclared")
}

func TestCheckBadFlagValue(t *testing.T) {
	code, _, stderr := runCLI(t, "check", "--strictness", "pedantic", pduModule)
	assert.Equal(t, exitError, code)
	assert.NotEmpty(t, stderr)
}

func TestDumpCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "dump", pduModule)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "name: S1AP-PDU")
	assert.Contains(t, stdout, "file_base: S1APPdu")
	assert.Contains(t, stdout, "module: S1AP-CommonDataTypes")
	assert.Contains(t, stdout, "definitions:")
}

func TestDumpToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pdu.yaml")
	code, stdout, stderr := runCLI(t, "dump", "-o", out, pduModule)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, string(testutil.ReadFixture(t, out)), "name: S1AP-PDU")
}

func TestDumpRequiresOneFile(t *testing.T) {
	code, _, _ := runCLI(t, "dump")
	assert.Equal(t, exitError, code)
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "asngen ")
}
