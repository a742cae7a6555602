package types

import (
	"fmt"
	"slices"
	"strings"
)

// Severity levels for diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Cannot continue
	SeveritySevere  Severity = 1 // Semantics changed to continue, must correct
	SeverityError   Severity = 2 // Able to continue, should correct
	SeverityMinor   Severity = 3 // Minor issue, should correct
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Might be correct under some circumstances
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s <= other
}

// ParseSeverity maps a severity name back to its value.
func ParseSeverity(name string) (Severity, bool) {
	for s := SeverityFatal; s <= SeverityInfo; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel int

const (
	StrictnessStrict     StrictnessLevel = 0 // Report everything, fail on errors
	StrictnessNormal     StrictnessLevel = 3 // Default, best-effort output
	StrictnessPermissive StrictnessLevel = 5 // Accept legacy input quietly
	StrictnessSilent     StrictnessLevel = 6 // Report nothing
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessNormal:
		return "normal"
	case StrictnessPermissive:
		return "permissive"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", int(l))
	}
}

// ParseStrictness maps a strictness name back to its level. The empty
// name selects the default, permissive.
func ParseStrictness(name string) (StrictnessLevel, bool) {
	switch strings.ToLower(name) {
	case "strict":
		return StrictnessStrict, true
	case "normal":
		return StrictnessNormal, true
	case "permissive", "":
		return StrictnessPermissive, true
	case "silent":
		return StrictnessSilent, true
	}
	return 0, false
}

// SpanDiagnostic is a message from the lexer or parser, located by span.
// It is converted to a Diagnostic with line/column once the module's
// line table is known.
type SpanDiagnostic struct {
	Severity Severity
	Code     string
	Span     Span
	Message  string
}

// Diagnostic represents an issue found during parsing or emission.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "type-unknown", "parse-error"
	Message  string
	Module   string // source module name
	Line     int    // 1-based line number, 0 if not applicable
	Column   int    // 1-based column, 0 if not applicable
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] module:line:col: message" with location parts omitted when zero.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
	if d.Module != "" {
		b.WriteString(d.Module)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Locate converts a span diagnostic into a Diagnostic for the named module.
func (d SpanDiagnostic) Locate(module string, lineTable []int) Diagnostic {
	out := Diagnostic{
		Severity: d.Severity,
		Code:     d.Code,
		Message:  d.Message,
		Module:   module,
	}
	if !d.Span.IsSynthetic() {
		out.Line, out.Column = LineCol(lineTable, d.Span.Start)
	}
	return out
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the base strictness level.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel

	// FailAt sets the severity threshold for failure.
	// If any reported diagnostic has severity <= FailAt, the run fails.
	FailAt Severity

	// Overrides change severity for specific diagnostic codes.
	Overrides map[string]Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g., "type-*").
	Ignore []string
}

// DefaultConfig returns the default diagnostic configuration: best-effort
// output, warnings reported, only fatal problems fail the run.
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessPermissive,
		FailAt: SeverityFatal,
	}
}

// StrictConfig returns a configuration that rejects malformed input.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeverityError,
	}
}

// ConfigFor returns the preset configuration for a strictness level.
func ConfigFor(level StrictnessLevel) DiagnosticConfig {
	switch level {
	case StrictnessStrict:
		return StrictConfig()
	case StrictnessSilent:
		return DiagnosticConfig{Level: StrictnessSilent, FailAt: SeverityFatal}
	default:
		return DiagnosticConfig{Level: level, FailAt: SeverityFatal}
	}
}

// ShouldReport returns true if a diagnostic with the given code and severity
// should be reported under this configuration.
//
// The Level controls reporting threshold:
//   - Level 0 (Strict): Report all diagnostics
//   - Level 3 (Normal): Report Minor and above (0-3)
//   - Level 5 (Permissive): Report Warning and above (0-5)
//   - Level 6 (Silent): Report nothing
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	if slices.ContainsFunc(c.Ignore, func(pattern string) bool {
		return MatchGlob(pattern, code)
	}) {
		return false
	}

	if override, ok := c.Overrides[code]; ok {
		sev = override
	}

	if c.Level >= StrictnessSilent {
		return false
	}

	if c.Level == StrictnessStrict {
		return true
	}

	return int(sev) <= int(c.Level)
}

// Effective returns the severity after applying overrides.
func (c DiagnosticConfig) Effective(code string, sev Severity) Severity {
	if override, ok := c.Overrides[code]; ok {
		return override
	}
	return sev
}

// ShouldFail returns true if a diagnostic with the given severity should
// cause the run to fail.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// IsStrict returns true if malformed input must be rejected.
func (c DiagnosticConfig) IsStrict() bool {
	return c.Level < StrictnessNormal
}

// MatchGlob performs simple glob matching with * wildcard.
func MatchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}
