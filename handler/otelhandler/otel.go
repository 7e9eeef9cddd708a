package otelhandler

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/philipp01105/mqttlog/core"
)

// Handler records entries as events on an OpenTelemetry span. Error and
// fatal entries also set the span status to codes.Error.
type Handler struct {
	span trace.Span
}

// New returns a Handler recording onto span.
func New(span trace.Span) *Handler {
	return &Handler{span: span}
}

// TraceID returns the trace ID of the span as a string.
func (h *Handler) TraceID() string {
	return h.span.SpanContext().TraceID().String()
}

// Handle adds the entry to the span as an event named after its message.
func (h *Handler) Handle(entry *core.Entry) error {
	if !h.span.IsRecording() {
		return nil
	}

	attrs := make([]attribute.KeyValue, 0, len(entry.Fields)+5)
	attrs = append(attrs, attribute.String(core.SeverityKey, entry.Severity.String()))
	if entry.Channel != "" {
		attrs = append(attrs, attribute.String(core.ChannelKey, entry.Channel))
	}
	if entry.Caller.Defined {
		attrs = append(attrs,
			attribute.String(core.FileKey, entry.Caller.File),
			attribute.Int(core.LineKey, entry.Caller.Line),
			attribute.String(core.FunctionKey, entry.Caller.Function),
		)
	}
	for _, f := range entry.Fields {
		attrs = append(attrs, toAttribute(f))
	}

	h.span.AddEvent(entry.Message, trace.WithTimestamp(entry.Time), trace.WithAttributes(attrs...))
	if entry.Severity >= core.Error {
		h.span.SetStatus(codes.Error, entry.Message)
	}
	return nil
}

// CanRecycleEntry returns true because attributes are copied before Handle returns.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Close does not end the span; its owner does.
func (h *Handler) Close() error {
	return nil
}

func toAttribute(f core.Field) attribute.KeyValue {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return attribute.String(f.Key, f.Str)
	case core.IntType, core.Int64Type, core.UintType:
		return attribute.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return attribute.Float64(f.Key, f.Float64)
	case core.BoolType:
		return attribute.Bool(f.Key, f.Int64 == 1)
	case core.DurationType:
		return attribute.String(f.Key, time.Duration(f.Int64).String())
	default:
		return attribute.String(f.Key, f.StringValue())
	}
}
