package core

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	UintType
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	SeverityType
	AddressType
	AnyType
)

// Field represents a key-value pair for structured logging. The value is
// captured when the Field is built and never changes afterwards.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// Address is the identity of the object a record is about, rendered as a
// hexadecimal pointer value under AddressKey.
type Address uintptr

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case UintType:
		return strconv.FormatUint(uint64(f.Int64), 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case SeverityType:
		return Severity(f.Int64).String()
	case AddressType:
		return "0x" + strconv.FormatUint(uint64(f.Int64), 16)
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

// Severity returns the field's value as a Severity. ok is false unless the
// field was built from a Severity.
func (f Field) Severity() (Severity, bool) {
	if f.Type != SeverityType {
		return Info, false
	}
	return Severity(f.Int64), true
}

// FieldOf builds a Field from an arbitrary value, picking the narrowest
// typed representation it knows and falling back to AnyType.
func FieldOf(key string, v interface{}) Field {
	switch val := v.(type) {
	case Field:
		val.Key = key
		return val
	case string:
		return Field{Key: key, Type: StringType, Str: val}
	case []byte:
		return Field{Key: key, Type: StringType, Str: string(val)}
	case Severity:
		return Field{Key: key, Type: SeverityType, Int64: int64(val)}
	case Address:
		return Field{Key: key, Type: AddressType, Int64: int64(val)}
	case int:
		return Field{Key: key, Type: IntType, Int64: int64(val)}
	case int8:
		return Field{Key: key, Type: IntType, Int64: int64(val)}
	case int16:
		return Field{Key: key, Type: IntType, Int64: int64(val)}
	case int32:
		return Field{Key: key, Type: IntType, Int64: int64(val)}
	case int64:
		return Field{Key: key, Type: Int64Type, Int64: val}
	case uint:
		return Field{Key: key, Type: UintType, Int64: int64(val)}
	case uint8:
		return Field{Key: key, Type: UintType, Int64: int64(val)}
	case uint16:
		return Field{Key: key, Type: UintType, Int64: int64(val)}
	case uint32:
		return Field{Key: key, Type: UintType, Int64: int64(val)}
	case uint64:
		return Field{Key: key, Type: UintType, Int64: int64(val)}
	case float32:
		return Field{Key: key, Type: Float64Type, Float64: float64(val)}
	case float64:
		return Field{Key: key, Type: Float64Type, Float64: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return Field{Key: key, Type: BoolType, Int64: b}
	case time.Time:
		return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return Field{Key: key, Type: DurationType, Int64: int64(val)}
	case error:
		if val == nil {
			return Field{Key: key, Type: ErrorType}
		}
		return Field{Key: key, Type: ErrorType, Str: val.Error()}
	case fmt.Stringer:
		return Field{Key: key, Type: StringType, Str: val.String()}
	default:
		return anyField(key, v)
	}
}

// anyField keeps scalar values of named types as AnyType. Composite and
// reference values are rendered when the field is built, so later changes
// to what they point at are not logged.
func anyField(key string, v interface{}) Field {
	if v == nil {
		return Field{Key: key, Type: AnyType}
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return Field{Key: key, Type: AnyType, Any: v}
	default:
		return Field{Key: key, Type: StringType, Str: fmt.Sprint(v)}
	}
}
