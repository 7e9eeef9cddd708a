// Package multihandler provides a fan-out handler that dispatches log
// entries to multiple child handlers and aggregates their errors with
// go.uber.org/multierr.
package multihandler
