package sloghandler

import (
	"log/slog"

	"github.com/philipp01105/mqttlog/core"
)

// Levels used for the severities slog has no name for.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelFatal = slog.LevelError + 4
)

// SeverityToLevel maps a severity onto a slog level.
func SeverityToLevel(sev core.Severity) slog.Level {
	switch sev {
	case core.Trace:
		return LevelTrace
	case core.Debug:
		return slog.LevelDebug
	case core.Info:
		return slog.LevelInfo
	case core.Warning:
		return slog.LevelWarn
	case core.Error:
		return slog.LevelError
	default:
		return LevelFatal
	}
}

// LevelToSeverity maps a slog level onto the nearest severity at or below it.
func LevelToSeverity(level slog.Level) core.Severity {
	switch {
	case level >= LevelFatal:
		return core.Fatal
	case level >= slog.LevelError:
		return core.Error
	case level >= slog.LevelWarn:
		return core.Warning
	case level >= slog.LevelInfo:
		return core.Info
	case level >= slog.LevelDebug:
		return core.Debug
	default:
		return core.Trace
	}
}
