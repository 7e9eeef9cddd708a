package sloghandler

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/handler"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// handler.Handler, so code written against log/slog produces MQTT records.
// An MqttChannel attribute, on the record or added with WithAttrs, selects
// the record's channel.
type SlogHandler struct {
	handler  handler.Handler
	severity core.Severity
	channel  string
	attrs    []core.Field
	group    string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
// Records below severity are not enabled.
func NewSlogHandler(h handler.Handler, severity core.Severity) *SlogHandler {
	return &SlogHandler{
		handler:  h,
		severity: severity,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return LevelToSeverity(level) >= s.severity
}

// Handle converts the record to a core.Entry and passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Severity = LevelToSeverity(record.Level)
	entry.Channel = s.channel
	entry.Message = record.Message

	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		if frame.File != "" {
			entry.Caller = core.CallerAt(record.PC, frame.File, frame.Line)
		}
	}

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		if s.group == "" && a.Key == core.ChannelKey {
			entry.Channel = a.Value.String()
			return true
		}
		entry.Fields = appendAttr(entry.Fields, s.group, a)
		return true
	})

	err := s.handler.Handle(entry)
	if handler.CanRecycle(s.handler) {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := s.clone()
	for _, a := range attrs {
		if s.group == "" && a.Key == core.ChannelKey {
			c.channel = a.Value.String()
			continue
		}
		c.attrs = appendAttr(c.attrs, s.group, a)
	}
	return c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := s.clone()
	if s.group != "" {
		c.group = s.group + "." + name
	} else {
		c.group = name
	}
	return c
}

func (s *SlogHandler) clone() *SlogHandler {
	c := *s
	c.attrs = make([]core.Field, len(s.attrs), len(s.attrs)+4)
	copy(c.attrs, s.attrs)
	return &c
}

// appendAttr converts a slog.Attr to fields, prefixing the group name and
// flattening nested groups.
func appendAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.UintType, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		return append(dst, core.FieldOf(key, a.Value.Bool()))
	case slog.KindTime:
		return append(dst, core.FieldOf(key, a.Value.Time()))
	case slog.KindDuration:
		return append(dst, core.FieldOf(key, a.Value.Duration()))
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, key, ga)
		}
		return dst
	default:
		return append(dst, core.FieldOf(key, a.Value.Any()))
	}
}
