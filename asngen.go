// Package asngen compiles ASN.1 module definitions into C++ declarations
// for the ASNTypes runtime library.
//
// A run reads every module file from a Source in order, parses it, and
// emits a header (.h) and a source (.cc) artifact per module. Types declared
// by earlier modules are visible to later ones, so modules should be listed
// dependencies first.
//
// Example:
//
//	src, err := asngen.Dir("./asn")
//	if err != nil { ... }
//	res, err := asngen.Compile(ctx, src,
//	    asngen.WithOutput(asngen.DirOutput("./gen")),
//	    asngen.WithLogger(slog.Default()),
//	)
package asngen

import (
	"errors"
	"log/slog"

	"github.com/golangsnmp/asngen/internal/emitter"
	"github.com/golangsnmp/asngen/internal/types"
)

// ErrNoSources is returned when Compile is called with no sources.
var ErrNoSources = errors.New("no ASN.1 sources provided")

// ErrDiagnosticThreshold is returned, wrapped, when a run reports a
// diagnostic at or above the configured FailAt severity. The Result is
// still returned and all artifacts have been written.
var ErrDiagnosticThreshold = errors.New("diagnostic threshold reached")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, definitions).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Defaults written into every artifact unless overridden.
const (
	DefaultRuntimeHeader = emitter.DefaultRuntimeHeader
	DefaultBanner        = emitter.DefaultBanner
)

// Diagnostic represents a parse or emission issue.
type Diagnostic = types.Diagnostic

// Severity for diagnostics. Lower values are more severe.
type Severity = types.Severity

// Severity constants.
const (
	SeverityFatal   = types.SeverityFatal
	SeveritySevere  = types.SeveritySevere
	SeverityError   = types.SeverityError
	SeverityMinor   = types.SeverityMinor
	SeverityStyle   = types.SeverityStyle
	SeverityWarning = types.SeverityWarning
	SeverityInfo    = types.SeverityInfo
)

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel = types.StrictnessLevel

// StrictnessLevel constants.
const (
	StrictnessStrict     = types.StrictnessStrict
	StrictnessNormal     = types.StrictnessNormal
	StrictnessPermissive = types.StrictnessPermissive
	StrictnessSilent     = types.StrictnessSilent
)

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = types.DiagnosticConfig

// Config constructors.
var (
	DefaultDiagnosticConfig = types.DefaultConfig
	StrictDiagnosticConfig  = types.StrictConfig
)

// DiagnosticCode names a diagnostic code and the phase that reports it.
type DiagnosticCode = types.DiagCodeInfo

// DiagnosticCodes returns every code Compile can report, in phase order.
func DiagnosticCodes() []DiagnosticCode {
	return types.AllDiagnosticCodes()
}

// Option configures Compile.
type Option func(*compileConfig)

type compileConfig struct {
	logger     *slog.Logger
	output     Output
	emit       emitter.Config
	filePrefix string
}

func defaultCompileConfig() compileConfig {
	return compileConfig{emit: emitter.DefaultConfig()}
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *compileConfig) { c.logger = logger }
}

// WithOutput sets where artifacts are written. Without an output the run
// only produces the in-memory Result.
func WithOutput(out Output) Option {
	return func(c *compileConfig) { c.output = out }
}

// WithNamespace puts every artifact of the run in one C++ namespace instead
// of the per-module default.
func WithNamespace(ns string) Option {
	return func(c *compileConfig) { c.emit.Namespace = ns }
}

// WithFilePrefix prepends prefix to every artifact base name and to every
// include derived from an IMPORTS clause.
func WithFilePrefix(prefix string) Option {
	return func(c *compileConfig) { c.filePrefix = prefix }
}

// WithRuntimeHeader sets the runtime library header each artifact includes.
func WithRuntimeHeader(header string) Option {
	return func(c *compileConfig) { c.emit.RuntimeHeader = header }
}

// WithBanner sets the comment block at the top of each artifact. An empty
// banner disables it.
func WithBanner(banner string) Option {
	return func(c *compileConfig) { c.emit.Banner = banner }
}

// WithDiagnosticConfig replaces the diagnostic configuration.
func WithDiagnosticConfig(cfg DiagnosticConfig) Option {
	return func(c *compileConfig) { c.emit.Diagnostics = cfg }
}

// WithStrictness selects a preset diagnostic configuration.
func WithStrictness(level StrictnessLevel) Option {
	return func(c *compileConfig) { c.emit.Diagnostics = types.ConfigFor(level) }
}
