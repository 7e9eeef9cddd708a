// Package consolehandler writes formatted log entries to any io.Writer
// (default: os.Stdout).
//
// NewConsoleHandler returns a synchronous *ConsoleHandler, or, when
// ConsoleConfig.Async is set, that handler wrapped in a *handler.Async
// with per-severity overflow policies.
package consolehandler
