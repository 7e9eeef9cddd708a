package zaphandler

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/mqttlog/core"
)

// Handler writes entries to a zapcore.Core. The channel becomes the zap
// logger name and the severity is kept as an MqttSeverity field since
// zap has no trace level.
type Handler struct {
	core zapcore.Core
}

// New returns a Handler writing to c.
func New(c zapcore.Core) *Handler {
	return &Handler{core: c}
}

// Level maps a severity onto a zap level. Trace shares zap's debug level
// and fatal maps to zap's fatal level; the Core does not exit on its own.
func Level(sev core.Severity) zapcore.Level {
	switch sev {
	case core.Trace, core.Debug:
		return zapcore.DebugLevel
	case core.Info:
		return zapcore.InfoLevel
	case core.Warning:
		return zapcore.WarnLevel
	case core.Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

// Handle converts the entry and writes it if the core is enabled for its level.
func (h *Handler) Handle(entry *core.Entry) error {
	ent := zapcore.Entry{
		LoggerName: entry.Channel,
		Time:       entry.Time,
		Level:      Level(entry.Severity),
		Message:    entry.Message,
	}
	if entry.Caller.Defined {
		ent.Caller = zapcore.EntryCaller{
			Defined:  true,
			PC:       entry.Caller.PC,
			File:     entry.Caller.File,
			Line:     entry.Caller.Line,
			Function: entry.Caller.Function,
		}
	}

	ce := h.core.Check(ent, nil)
	if ce == nil {
		return nil
	}

	fields := make([]zapcore.Field, 0, len(entry.Fields)+1)
	fields = append(fields, zap.String(core.SeverityKey, entry.Severity.String()))
	for _, f := range entry.Fields {
		fields = append(fields, toZapField(f))
	}
	ce.Write(fields...)
	return nil
}

// CanRecycleEntry returns true because the fields are copied before Handle returns.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Close flushes the core.
func (h *Handler) Close() error {
	return h.core.Sync()
}

func toZapField(f core.Field) zapcore.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.UintType:
		return zap.Uint64(f.Key, uint64(f.Int64))
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		return zap.String(f.Key, f.Str)
	case core.AnyType:
		return zap.Any(f.Key, f.Any)
	default:
		return zap.String(f.Key, f.StringValue())
	}
}
