package logger

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/philipp01105/mqttlog/attr"
	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/scope"
)

// ErrInvalidSeverityValue is reported when an MqttSeverity pair holds a
// value that is neither a Severity nor a severity name.
var ErrInvalidSeverityValue = errors.New("logger: invalid MqttSeverity value")

// Record is one log statement in progress. It owns a private attribute
// set layered over the logger's, so the statement's attributes are never
// seen by other statements or goroutines. A Record is emitted at most
// once by Msg or Msgf, after which it must not be used.
//
// A nil *Record is what Log and LogFP return for filtered statements;
// every method is a no-op on it.
type Record struct {
	logger   *Logger
	set      *attr.Set
	chain    *scope.Chain
	severity core.Severity
	channel  string
	fields   []core.Field
	site     core.CallerInfo
}

var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{fields: make([]core.Field, 0, 4)}
	},
}

func (l *Logger) newRecord(channel string, sev core.Severity) *Record {
	r := recordPool.Get().(*Record)
	r.logger = l
	r.set = attr.NewSet(l.attrs)
	r.severity = sev
	r.channel = channel
	return r
}

// release detaches the record's attributes, last attached first, and
// returns the record to the pool.
func (r *Record) release() {
	r.chain.Release()
	r.logger = nil
	r.set = nil
	r.chain = nil
	r.channel = ""
	r.fields = r.fields[:0]
	r.site = core.CallerInfo{}
	recordPool.Put(r)
}

// Log starts a statement on channel at sev. MqttChannel and MqttSeverity
// are attached to the statement, in that order, for exactly the time it
// takes to emit it. It returns nil when the statement is filtered out.
//
//	log.Log("net", core.Warning).Msg("keep alive expired")
func (l *Logger) Log(channel string, sev core.Severity) *Record {
	if !l.Enabled(channel, sev) {
		return nil
	}
	r := l.newRecord(channel, sev)
	r.chain, _ = scope.AttachFields(r.set,
		core.Field{Key: core.ChannelKey, Type: core.StringType, Str: channel},
		core.Field{Key: core.SeverityKey, Type: core.SeverityType, Int64: int64(sev)},
	)
	return r
}

// LogFP starts a statement from alternating name/value pairs, which are
// attached to the statement in the order given. An MqttSeverity pair may
// hold a Severity or a severity name; without one the statement is Info.
// Without an MqttChannel pair the channel is empty.
//
// Invalid pairs are reported to the error handler and the statement is
// dropped. It returns nil when the statement is dropped or filtered out.
//
//	log.LogFP(core.ChannelKey, "net", core.SeverityKey, core.Debug, "client_id", id).Msg("ping")
func (l *Logger) LogFP(pairs ...interface{}) *Record {
	fields, err := scope.Fields(pairs...)
	if err != nil {
		l.onError(fmt.Errorf("LogFP: %w", err))
		return nil
	}

	sev := core.Info
	channel := ""
	for i, f := range fields {
		switch f.Key {
		case core.SeverityKey:
			s, err := severityOf(f)
			if err != nil {
				l.onError(fmt.Errorf("LogFP: %w", err))
				return nil
			}
			sev = s
			fields[i] = core.Field{Key: core.SeverityKey, Type: core.SeverityType, Int64: int64(s)}
		case core.ChannelKey:
			channel = f.StringValue()
		}
	}

	if !l.Enabled(channel, sev) {
		return nil
	}
	r := l.newRecord(channel, sev)
	r.chain, _ = scope.AttachFields(r.set, fields...)
	return r
}

func severityOf(f core.Field) (core.Severity, error) {
	if sev, ok := f.Severity(); ok {
		return sev, nil
	}
	if f.Type == core.StringType {
		sev, err := core.ParseSeverity(f.Str)
		if err != nil {
			return sev, fmt.Errorf("%w: %w", ErrInvalidSeverityValue, err)
		}
		return sev, nil
	}
	return core.Info, fmt.Errorf("%w: %s", ErrInvalidSeverityValue, f.StringValue())
}

// With adds record-level fields.
func (r *Record) With(fields ...core.Field) *Record {
	if r == nil {
		return nil
	}
	r.fields = append(r.fields, fields...)
	return r
}

// Address tags the record with the identity of the object it is about,
// under MqttAddress. p must be a pointer-like value; nil and other kinds
// are ignored.
func (r *Record) Address(p interface{}) *Record {
	if r == nil || p == nil {
		return r
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		r.fields = append(r.fields, core.FieldOf(core.AddressKey, core.Address(v.Pointer())))
	case reflect.Uintptr:
		r.fields = append(r.fields, core.FieldOf(core.AddressKey, core.Address(v.Uint())))
	}
	return r
}

// At sets the call site explicitly instead of capturing it, for
// generated code and records forwarded from elsewhere.
func (r *Record) At(file string, line int, function string) *Record {
	if r == nil {
		return nil
	}
	r.site = core.Site(file, line, function)
	return r
}

// Msg emits the record with msg and releases its attributes.
func (r *Record) Msg(msg string) {
	if r == nil {
		return
	}
	r.logger.emit(r, msg, 2)
}

// Msgf emits the record with a formatted message and releases its attributes.
func (r *Record) Msgf(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.logger.emit(r, fmt.Sprintf(format, args...), 2)
}

// Discard releases the record without emitting it.
func (r *Record) Discard() {
	if r == nil {
		return
	}
	r.release()
}

// Attribute returns the attribute visible to the record under name:
// statement attributes first, then the logger's scoped attributes.
func (r *Record) Attribute(name string) (core.Field, bool) {
	if r == nil {
		return core.Field{}, false
	}
	return r.set.Lookup(name)
}
