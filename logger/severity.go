package logger

import "github.com/philipp01105/mqttlog/core"

// Severity Re-export type and constants for convenience
type Severity = core.Severity

const (
	TraceSeverity   = core.Trace
	DebugSeverity   = core.Debug
	InfoSeverity    = core.Info
	WarningSeverity = core.Warning
	ErrorSeverity   = core.Error
	FatalSeverity   = core.Fatal
)

// ParseSeverity converts a string to a Severity
func ParseSeverity(s string) (Severity, error) {
	return core.ParseSeverity(s)
}
