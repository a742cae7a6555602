package types

// Diagnostic codes emitted by the parser and emitter phases.

// Parser diagnostic codes.
const (
	DiagParseError          = "parse-error"
	DiagUnsupportedSyntax   = "unsupported-syntax"
	DiagValueUnsupported    = "value-unsupported"
	DiagConstraintMalformed = "constraint-malformed"
	DiagMissingHeader       = "missing-header"
)

// Emitter diagnostic codes.
const (
	DiagTypeUnknown    = "type-unknown"
	DiagTypeCycle      = "type-cycle"
	DiagTypeRedeclared = "type-redeclared"
)

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo struct {
	Code  string
	Phase string
}

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Parser
		{Code: DiagParseError, Phase: "parser"},
		{Code: DiagUnsupportedSyntax, Phase: "parser"},
		{Code: DiagValueUnsupported, Phase: "parser"},
		{Code: DiagConstraintMalformed, Phase: "parser"},
		{Code: DiagMissingHeader, Phase: "parser"},
		// Emitter
		{Code: DiagTypeUnknown, Phase: "emitter"},
		{Code: DiagTypeCycle, Phase: "emitter"},
		{Code: DiagTypeRedeclared, Phase: "emitter"},
	}
}
