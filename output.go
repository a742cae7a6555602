package asngen

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Output receives the artifacts of a run.
type Output interface {
	// WriteArtifact stores one artifact under its file name.
	WriteArtifact(name string, content []byte) error
}

type dirOutput struct {
	path string
}

// DirOutput writes artifacts into a directory, creating it on first write.
// Existing files are overwritten.
func DirOutput(path string) Output {
	return &dirOutput{path: path}
}

func (o *dirOutput) WriteArtifact(name string, content []byte) error {
	if err := os.MkdirAll(o.path, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(filepath.Join(o.path, name), content, 0o644)
}

// MemoryOutput collects artifacts in memory, in write order.
type MemoryOutput struct {
	names []string
	files map[string][]byte
}

// NewMemoryOutput returns an empty MemoryOutput.
func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{files: make(map[string][]byte)}
}

// WriteArtifact implements Output. A second write to the same name replaces
// the content but keeps the first position.
func (o *MemoryOutput) WriteArtifact(name string, content []byte) error {
	if _, ok := o.files[name]; !ok {
		o.names = append(o.names, name)
	}
	o.files[name] = slices.Clone(content)
	return nil
}

// Names returns the artifact names in write order.
func (o *MemoryOutput) Names() []string {
	return slices.Clone(o.names)
}

// Get returns the content of one artifact.
func (o *MemoryOutput) Get(name string) ([]byte, bool) {
	b, ok := o.files[name]
	return b, ok
}
