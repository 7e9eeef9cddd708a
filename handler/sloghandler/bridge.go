package sloghandler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/phsym/console-slog"

	"github.com/philipp01105/mqttlog/core"
)

// Bridge is a handler.Handler that forwards entries to a slog.Handler.
// Severity and channel travel as the MqttSeverity and MqttChannel
// attributes; the call site travels as the record's PC, or as MqttFile,
// MqttLine and MqttFunction attributes for explicitly given sites.
type Bridge struct {
	next slog.Handler
}

// NewBridge returns a Bridge writing to next.
func NewBridge(next slog.Handler) *Bridge {
	return &Bridge{next: next}
}

// NewConsole returns a Bridge writing colored, human-oriented output to w
// through github.com/phsym/console-slog. Entries below severity are
// discarded by the console handler.
func NewConsole(w io.Writer, severity core.Severity) *Bridge {
	return NewBridge(console.NewHandler(w, &console.HandlerOptions{
		AddSource: true,
		Level:     SeverityToLevel(severity),
	}))
}

// Handle converts the entry into a slog.Record.
func (b *Bridge) Handle(entry *core.Entry) error {
	ctx := context.Background()
	level := SeverityToLevel(entry.Severity)
	if !b.next.Enabled(ctx, level) {
		return nil
	}

	record := slog.NewRecord(entry.Time, level, entry.Message, entry.Caller.PC)
	record.AddAttrs(slog.String(core.SeverityKey, entry.Severity.String()))
	if entry.Channel != "" {
		record.AddAttrs(slog.String(core.ChannelKey, entry.Channel))
	}
	if entry.Caller.Defined && entry.Caller.PC == 0 {
		record.AddAttrs(
			slog.String(core.FileKey, entry.Caller.File),
			slog.Int(core.LineKey, entry.Caller.Line),
			slog.String(core.FunctionKey, entry.Caller.Function),
		)
	}
	for _, f := range entry.Fields {
		record.AddAttrs(fieldToAttr(f))
	}
	return b.next.Handle(ctx, record)
}

// CanRecycleEntry returns true because the record is built before Handle returns.
func (b *Bridge) CanRecycleEntry() bool {
	return true
}

// Close is a no-op; the slog.Handler owns its writer.
func (b *Bridge) Close() error {
	return nil
}

func fieldToAttr(f core.Field) slog.Attr {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return slog.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return slog.Int64(f.Key, f.Int64)
	case core.UintType:
		return slog.Uint64(f.Key, uint64(f.Int64))
	case core.Float64Type:
		return slog.Float64(f.Key, f.Float64)
	case core.BoolType:
		return slog.Bool(f.Key, f.Int64 == 1)
	case core.DurationType:
		return slog.Duration(f.Key, time.Duration(f.Int64))
	case core.AnyType:
		return slog.Any(f.Key, f.Any)
	default:
		return slog.String(f.Key, f.StringValue())
	}
}
