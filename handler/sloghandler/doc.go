// Package sloghandler connects the logger with log/slog in both
// directions.
//
// SlogHandler implements slog.Handler on top of a handler.Handler, so
// slog-based code emits MQTT records. Bridge implements handler.Handler
// on top of a slog.Handler; NewConsole uses it with the
// github.com/phsym/console-slog handler for development output.
//
// Trace and fatal have no slog names and map to LevelTrace and LevelFatal.
package sloghandler
