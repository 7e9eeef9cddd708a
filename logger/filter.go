package logger

import (
	"github.com/philipp01105/mqttlog/core"
)

// Enabled reports whether a record on channel at sev would be written. A
// channel threshold, when set, replaces the global one for that channel.
func (l *Logger) Enabled(channel string, sev core.Severity) bool {
	if l.handler == nil {
		return false
	}
	if threshold, ok := l.thresholds.Load(channel); ok {
		return sev >= threshold
	}
	return sev >= l.level
}

// Level returns the global threshold.
func (l *Logger) Level() core.Severity {
	return l.level
}

// ChannelLevel returns the threshold set for channel, if any.
func (l *Logger) ChannelLevel(channel string) (core.Severity, bool) {
	return l.thresholds.Load(channel)
}

// SetChannelLevel sets the threshold for channel at runtime. The change
// is seen by this logger and every logger sharing its thresholds.
func (l *Logger) SetChannelLevel(channel string, sev core.Severity) {
	l.thresholds.Store(channel, sev)
}

// ClearChannelLevel removes the threshold for channel, so the global
// threshold applies again.
func (l *Logger) ClearChannelLevel(channel string) {
	l.thresholds.Delete(channel)
}
