// Package otelhandler records log entries as OpenTelemetry span events,
// carrying severity, channel and call site as event attributes.
package otelhandler
