package logger

import (
	"time"

	"github.com/philipp01105/mqttlog/core"
)

// Field helper functions for convenience

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Uint creates an unsigned field, e.g. a packet id
func Uint(key string, val uint64) core.Field {
	return core.Field{Key: key, Type: core.UintType, Int64: int64(val)}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	return core.FieldOf(key, val)
}

// Time creates a time field
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an error field
func Err(err error) core.Field {
	return core.FieldOf("error", err)
}

// Channel creates an MqttChannel field
func Channel(name string) core.Field {
	return core.Field{Key: core.ChannelKey, Type: core.StringType, Str: name}
}

// SeverityField creates an MqttSeverity field
func SeverityField(sev core.Severity) core.Field {
	return core.Field{Key: core.SeverityKey, Type: core.SeverityType, Int64: int64(sev)}
}

// Any creates a field with any value. Slices, maps, pointers and structs
// are rendered immediately, so the field does not change with them.
func Any(key string, val interface{}) core.Field {
	return core.FieldOf(key, val)
}
