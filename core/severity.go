package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeverity is returned when a Severity outside Trace..Fatal is
// marshaled or a string does not name a severity.
var ErrInvalidSeverity = errors.New("invalid severity")

// Severity is the severity tag attached to every record as MqttSeverity.
// The set is closed and totally ordered: Trace < Debug < Info < Warning <
// Error < Fatal.
type Severity int8

const (
	// Trace for very verbose protocol tracing
	Trace Severity = iota
	// Debug for detailed debugging information
	Debug
	// Info for general informational messages (default threshold)
	Info
	// Warning for recoverable problems
	Warning
	// Error for failed operations
	Error
	// Fatal for unrecoverable conditions. Only a tag; emitting a Fatal
	// record through Record does not exit the process.
	Fatal
)

var severityNames = [...]string{
	Trace:   "trace",
	Debug:   "debug",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
	Fatal:   "fatal",
}

// Severities lists every defined severity in ascending order.
func Severities() []Severity {
	return []Severity{Trace, Debug, Info, Warning, Error, Fatal}
}

// Valid reports whether s is one of the six defined severities.
func (s Severity) Valid() bool {
	return s >= Trace && s <= Fatal
}

// String returns the lowercase display name. Values outside the defined
// set render as "Severity(n)".
func (s Severity) String() string {
	if !s.Valid() {
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity converts a name to a Severity. Matching is case-insensitive
// and "warn" is accepted for Warning.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	case "fatal":
		return Fatal, nil
	default:
		return Info, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
	}
}
