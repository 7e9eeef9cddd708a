package logger

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler/consolehandler"
	"github.com/philipp01105/mqttlog/scope"
)

var (
	defaultMu     sync.Mutex
	defaultLogger atomic.Pointer[Logger]
)

// newDefault builds the logger Default creates on first use: synchronous
// text output to stdout with call sites, Info threshold. It is
// synchronous so nothing is lost when the program exits without Close.
func newDefault() *Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: os.Stdout,
		Formatter: formatter.NewTextFormatter(formatter.Config{
			IncludeCaller: true,
		}),
	})
	return NewBuilder().
		WithHandler(h).
		WithLevel(core.Info).
		Build()
}

// Default returns the process-wide logger, creating it on first use.
// Concurrent first calls all receive the same instance.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := newDefault()
	defaultLogger.Store(l)
	return l
}

// SetDefault sets the default logger. SetDefault(nil) makes the next
// Default call create a fresh one. The replaced logger is not closed;
// its owner closes it, or use Setup, which does.
func SetDefault(l *Logger) {
	swapDefault(l)
}

// swapDefault installs l and returns the logger it replaced.
func swapDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger.Swap(l)
}

// Package-level convenience functions using the default logger

// Log starts a statement on the default logger; see Logger.Log.
func Log(channel string, sev core.Severity) *Record {
	return Default().Log(channel, sev)
}

// LogFP starts a statement on the default logger; see Logger.LogFP.
func LogFP(pairs ...interface{}) *Record {
	return Default().LogFP(pairs...)
}

// Attach derives a logger from the default one; see Logger.Attach.
func Attach(pairs ...interface{}) (*Logger, *scope.Chain, error) {
	return Default().Attach(pairs...)
}

// Scoped runs fn with scoped attributes on the default logger; see Logger.Scoped.
func Scoped(fn func(*Logger), pairs ...interface{}) error {
	return Default().Scoped(fn, pairs...)
}

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	Default().logAt(core.Trace, msg, fields, 2)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().logAt(core.Debug, msg, fields, 2)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().logAt(core.Info, msg, fields, 2)
}

// Warning logs a warning message using the default logger
func Warning(msg string, fields ...core.Field) {
	Default().logAt(core.Warning, msg, fields, 2)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().logAt(core.Error, msg, fields, 2)
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg string, fields ...core.Field) {
	l := Default()
	l.logAt(core.Fatal, msg, fields, 2)
	_ = l.Close()
	osExit(1)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) {
	Default().logfAt(core.Trace, format, args)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().logfAt(core.Debug, format, args)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().logfAt(core.Info, format, args)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...interface{}) {
	Default().logfAt(core.Warning, format, args)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().logfAt(core.Error, format, args)
}

// Fatalf logs a formatted fatal message using the default logger and exits the program
func Fatalf(format string, args ...interface{}) {
	l := Default()
	l.logfAt(core.Fatal, format, args)
	_ = l.Close()
	osExit(1)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}
