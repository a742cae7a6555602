package asngen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golangsnmp/asngen/internal/testutil"
)

func TestMemoryOutput(t *testing.T) {
	out := NewMemoryOutput()
	testutil.NoError(t, out.WriteArtifact("B.h", []byte("one")), "write")
	testutil.NoError(t, out.WriteArtifact("A.h", []byte("two")), "write")
	testutil.NoError(t, out.WriteArtifact("B.h", []byte("three")), "rewrite")

	testutil.SliceEqual(t, []string{"B.h", "A.h"}, out.Names(), "write order")
	b, ok := out.Get("B.h")
	testutil.True(t, ok, "B.h present")
	testutil.Equal(t, "three", string(b), "last write wins")

	_, ok = out.Get("C.h")
	testutil.False(t, ok, "C.h absent")
}

func TestDirOutputCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "gen")
	out := DirOutput(dir)

	testutil.NoError(t, out.WriteArtifact("A.h", []byte("x")), "write")
	testutil.NoError(t, out.WriteArtifact("A.h", []byte("y")), "overwrite")

	data, err := os.ReadFile(filepath.Join(dir, "A.h"))
	testutil.NoError(t, err, "read back")
	testutil.Equal(t, "y", string(data), "content")
}
