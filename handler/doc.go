// Package handler provides the Handler interface and the shared machinery
// for dispatching log entries to outputs.
//
// A Handler receives fully built entries from the logger. Handlers that
// finish with an entry before Handle returns implement Recycler so the
// logger can return the entry to the pool.
//
// Async wraps any Handler with a bounded queue and a background goroutine,
// which keeps the caller's hot path fast even under slow I/O. When the
// queue is full, Async applies a per-severity OverflowPolicy: DropNewest
// (default for trace through warning), DropOldest, or Block with a
// configurable timeout (default for error and fatal). Low-priority records
// never stall the MQTT event loop while errors are never silently dropped.
//
// Built-in handlers live in subpackages:
//
//   - consolehandler writes formatted entries to any io.Writer (default: stdout).
//   - filehandler writes to a file rotated by lumberjack.
//   - multihandler fans out a single entry to multiple child handlers.
//   - sloghandler adapts between Handler and log/slog, including colored
//     console output through console-slog.
//   - zaphandler forwards entries into a zap core.
//   - otelhandler records entries as OpenTelemetry span events.
//
// Dropped, blocked, and processed counts are tracked by Stats and exposed
// through StatsProvider; package metrics exports them to Prometheus.
package handler
