// Package emitter turns parsed modules into C++ declarations for the
// ASNTypes runtime library.
//
// Each module yields a header artifact (type declarations) and a source
// artifact (metadata tables). Definitions are emitted in module order, and
// any type a definition depends on is emitted first. A reference is
// resolved, in order, against the runtime library's own types, the
// module's imports, the module's own definitions, and the definitions of
// modules processed earlier in the run. A definition with an unresolvable
// reference is skipped with a warning and the run continues.
package emitter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/golangsnmp/asngen/internal/graph"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/types"
)

const (
	// DefaultRuntimeHeader is the runtime library header every artifact
	// includes.
	DefaultRuntimeHeader = "ASNTypes.h"

	// DefaultBanner is the comment written at the top of every artifact.
	DefaultBanner = "Code generated by asngen. DO NOT EDIT."
)

// Config controls artifact layout.
type Config struct {
	// Namespace overrides the C++ namespace. Empty means the lower-cased
	// file base name of each module.
	Namespace string

	// RuntimeHeader is the runtime library header. Empty means
	// DefaultRuntimeHeader.
	RuntimeHeader string

	// Banner is written as a // comment block at the top of each artifact.
	// Empty means no banner.
	Banner string

	// Diagnostics filters the diagnostics the emitter reports.
	Diagnostics types.DiagnosticConfig
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		RuntimeHeader: DefaultRuntimeHeader,
		Banner:        DefaultBanner,
		Diagnostics:   types.DefaultConfig(),
	}
}

// Artifacts is the output for one module.
type Artifacts struct {
	Module    string
	FileBase  string
	Namespace string

	// Header is the declaration artifact, written to FileBase + ".h".
	Header string
	// Source is the definition artifact, written to FileBase + ".cc".
	Source string

	// Declared lists the type names declared by this module, in order.
	Declared []string

	Diagnostics []types.Diagnostic
}

// HeaderFile is the name of the declaration artifact.
func (a *Artifacts) HeaderFile() string {
	return a.FileBase + ".h"
}

// SourceFile is the name of the definition artifact.
func (a *Artifacts) SourceFile() string {
	return a.FileBase + ".cc"
}

// Emitter emits the modules of one run. Modules must be passed in
// processing order; each can reference the ones before it.
type Emitter struct {
	reg *Registry
	cfg Config
	types.Logger
}

// New returns an Emitter that records declarations in reg.
// Pass nil for logger to disable logging.
func New(reg *Registry, cfg Config, logger *slog.Logger) *Emitter {
	if cfg.RuntimeHeader == "" {
		cfg.RuntimeHeader = DefaultRuntimeHeader
	}
	return &Emitter{
		reg:    reg,
		cfg:    cfg,
		Logger: types.Logger{L: logger},
	}
}

// Registry returns the run registry.
func (e *Emitter) Registry() *Registry {
	return e.reg
}

// EmitModule emits every definition of mod and registers the module for
// later ones.
func (e *Emitter) EmitModule(mod *module.Module) *Artifacts {
	m := &moduleEmitter{
		Emitter: e,
		mod:     mod,
		state:   make(map[*module.Definition]emitState),
	}

	m.markCycles()
	for _, def := range mod.Definitions {
		m.emit(def)
	}
	e.reg.add(mod)

	e.Log(slog.LevelDebug, "module emitted",
		slog.String("module", mod.Name()),
		slog.Int("declared", len(m.declared)),
		slog.Int("definitions", len(mod.Definitions)))

	return m.artifacts()
}

type emitState int

const (
	statePending emitState = iota
	stateVisiting
	stateDeclared
	stateFailed
)

// moduleEmitter holds the per-module state of an emission.
type moduleEmitter struct {
	*Emitter
	mod   *module.Module
	state map[*module.Definition]emitState

	header      strings.Builder
	source      strings.Builder
	declared    []string
	diagnostics []types.SpanDiagnostic
}

// emit declares def and everything it depends on. It reports whether def
// is declared. Calling it again for the same node does nothing.
func (m *moduleEmitter) emit(def *module.Definition) bool {
	if def.Name == "" {
		return false
	}
	switch m.state[def] {
	case stateDeclared:
		return true
	case stateVisiting, stateFailed:
		return false
	}

	name := def.QualifiedName()
	if owner, ok := m.reg.Declared(name); ok {
		m.state[def] = stateFailed
		m.emitDiagnostic(types.DiagTypeRedeclared, types.SeverityWarning, def.Span,
			fmt.Sprintf("%s is already declared in module %s", name, owner))
		return false
	}

	m.state[def] = stateVisiting
	if !m.dependencies(def) {
		m.state[def] = stateFailed
		return false
	}

	frag, ok := fragmentFor(def)
	if !ok {
		m.state[def] = stateFailed
		return false
	}
	m.header.WriteString(frag.header)
	m.header.WriteString("\n")
	m.source.WriteString(frag.source)

	m.state[def] = stateDeclared
	m.reg.declare(name, m.mod.Name())
	m.declared = append(m.declared, name)
	m.Log(slog.LevelDebug, "declared",
		slog.String("module", m.mod.Name()),
		slog.String("name", name),
		slog.String("kind", def.Kind.String()))
	return true
}

// dependencies emits the types def depends on. Inline members are emitted
// under their qualified names; named references are resolved. Every
// dependency is tried so that each missing one is reported.
func (m *moduleEmitter) dependencies(def *module.Definition) bool {
	name := def.QualifiedName()
	if def.Kind == module.KindAlias {
		return m.resolve(name, def.Ref, def.Span)
	}
	if !def.Kind.IsStructural() {
		return true
	}

	ok := true
	seen := make(map[string]struct{})
	for _, child := range def.Children {
		if !child.Kind.IsNamedRef() {
			ok = m.emit(child) && ok
			continue
		}
		if _, dup := seen[child.Ref]; dup {
			continue
		}
		seen[child.Ref] = struct{}{}
		ok = m.resolve(name, child.Ref, child.Span) && ok
	}
	return ok
}

// resolve makes sure the type named ref is declared before dependent.
func (m *moduleEmitter) resolve(dependent, ref string, span types.Span) bool {
	if IsRuntimeType(ref) || m.mod.Header.IsImported(ref) {
		return true
	}
	if _, ok := m.reg.Declared(ref); ok {
		return true
	}

	if target := m.mod.Lookup(ref); target != nil {
		if m.emit(target) {
			return true
		}
		m.emitDiagnostic(types.DiagTypeUnknown, types.SeverityMinor, span,
			fmt.Sprintf("%s skipped: %s could not be declared", dependent, ref))
		return false
	}

	if _, owner := m.reg.Find(ref); owner != nil {
		m.emitDiagnostic(types.DiagTypeUnknown, types.SeverityMinor, span,
			fmt.Sprintf("%s skipped: %s was not declared by module %s", dependent, ref, owner.Name()))
		return false
	}

	m.Log(slog.LevelWarn, "unresolved type reference",
		slog.String("module", m.mod.Name()),
		slog.String("type", dependent),
		slog.String("missing", ref))
	m.emitDiagnostic(types.DiagTypeUnknown, types.SeverityWarning, span,
		fmt.Sprintf("unknown type %s, skipping %s", ref, dependent))
	return false
}

// markCycles fails every top-level definition that takes part in a
// reference cycle within the module.
func (m *moduleEmitter) markCycles() {
	g := graph.New(len(m.mod.Definitions))
	modName := m.mod.Name()
	for _, def := range m.mod.Definitions {
		from := graph.Symbol{Module: modName, Name: def.QualifiedName()}
		g.AddNode(from)
		for _, ref := range def.References() {
			if m.mod.Header.IsImported(ref) || m.mod.Lookup(ref) == nil {
				continue
			}
			g.AddEdge(from, graph.Symbol{Module: modName, Name: ref})
		}
	}

	for _, cycle := range g.FindCycles() {
		names := make([]string, len(cycle))
		for i, sym := range cycle {
			names[i] = sym.Name
		}
		for _, sym := range cycle {
			def := m.mod.Lookup(sym.Name)
			if def == nil {
				continue
			}
			m.state[def] = stateFailed
			m.emitDiagnostic(types.DiagTypeCycle, types.SeverityWarning, def.Span,
				fmt.Sprintf("%s is part of a reference cycle (%s) and is skipped",
					sym.Name, strings.Join(names, " -> ")))
		}
	}
}

func (m *moduleEmitter) emitDiagnostic(code string, severity types.Severity, span types.Span, message string) {
	cfg := m.cfg.Diagnostics
	if !cfg.ShouldReport(code, severity) {
		return
	}
	m.diagnostics = append(m.diagnostics, types.SpanDiagnostic{
		Severity: cfg.Effective(code, severity),
		Code:     code,
		Span:     span,
		Message:  message,
	})
}
