// Package module provides the intermediate representation of parsed ASN.1
// modules.
//
// A Module owns a forest of Definition nodes. The tree is immutable once
// the parser returns it: nesting is recorded as a Scope string computed at
// construction time, and emission state is tracked by the emitter, not on
// the nodes. Type references are kept as names; resolving them against
// imports and previously parsed modules is the emitter's job.
package module

import (
	"iter"

	"github.com/golangsnmp/asngen/internal/types"
)

// Module is one parsed ASN.1 module.
type Module struct {
	Header      Header
	Definitions []*Definition
	Diagnostics []types.Diagnostic

	// Path is the source the module was read from, if any.
	Path string

	// LineTable maps line numbers to byte offsets of line starts.
	// Entry i holds the byte offset where line i+1 begins.
	LineTable []int

	byName map[string]*Definition
}

// NewModule returns a Module with the given header and no definitions.
func NewModule(header Header) *Module {
	return &Module{
		Header: header,
		byName: make(map[string]*Definition),
	}
}

// Name returns the module's name as written in its header.
func (m *Module) Name() string {
	return m.Header.Name
}

// Add appends a top-level definition. The first definition with a given
// qualified name wins lookups.
func (m *Module) Add(def *Definition) {
	m.Definitions = append(m.Definitions, def)
	if m.byName == nil {
		m.byName = make(map[string]*Definition)
	}
	if _, ok := m.byName[def.QualifiedName()]; !ok {
		m.byName[def.QualifiedName()] = def
	}
}

// Lookup returns the top-level definition with the given name, or nil.
func (m *Module) Lookup(name string) *Definition {
	return m.byName[name]
}

// HasErrors reports whether this module has any error-level diagnostics.
func (m *Module) HasErrors() bool {
	for _, d := range m.Diagnostics {
		if d.Severity.AtLeast(types.SeverityError) {
			return true
		}
	}
	return false
}

// DefinitionNames returns an iterator over the names of all top-level
// definitions.
func (m *Module) DefinitionNames() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, def := range m.Definitions {
			if !yield(def.QualifiedName()) {
				return
			}
		}
	}
}

// Header is the parsed module header: the module's own name, the include
// files derived from its FROM clauses, and the set of imported type names.
type Header struct {
	Name     string    `yaml:"name"`
	FileBase string    `yaml:"file_base"`
	Includes []Include `yaml:"includes,omitempty"`
	Imports  []string  `yaml:"imports,omitempty"`

	imported map[string]struct{}
}

// Include is one FROM clause of the IMPORTS list.
type Include struct {
	Module string `yaml:"module"`
	File   string `yaml:"file"`
}

// AddInclude records an imported module and its derived include file.
func (h *Header) AddInclude(module, file string) {
	h.Includes = append(h.Includes, Include{Module: module, File: file})
}

// AddImport records an imported type name. Duplicates are ignored.
func (h *Header) AddImport(name string) {
	if h.imported == nil {
		h.imported = make(map[string]struct{})
	}
	if _, ok := h.imported[name]; ok {
		return
	}
	h.imported[name] = struct{}{}
	h.Imports = append(h.Imports, name)
}

// IsImported reports whether name was imported by the header.
func (h *Header) IsImported(name string) bool {
	_, ok := h.imported[name]
	return ok
}
