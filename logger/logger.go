package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/philipp01105/mqttlog/attr"
	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/handler"
	"github.com/philipp01105/mqttlog/scope"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// ErrorHandler receives failures the logger cannot return to the caller:
// invalid LogFP pairs and handler errors.
type ErrorHandler func(error)

func stderrErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "mqttlog: %v\n", err)
}

// Logger is the main logging interface. Its configuration is immutable;
// the scoped attribute set and per-channel thresholds are shared with
// every logger derived from it.
type Logger struct {
	handler       handler.Handler
	level         core.Severity
	thresholds    *xsync.MapOf[string, core.Severity]
	fields        []core.Field
	attrs         *attr.Set
	includeCaller bool
	coarseClock   bool
	callerSkip    int
	recycleEntry  bool
	onError       ErrorHandler
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Severity
	channels      map[string]core.Severity
	fields        []core.Field
	includeCaller bool
	coarseClock   bool
	callerSkip    int
	onError       ErrorHandler
}

// NewBuilder creates a new logger builder. Defaults: Info threshold,
// call sites captured, errors reported on stderr.
func NewBuilder() *Builder {
	return &Builder{
		level:         core.Info,
		includeCaller: true,
		onError:       stderrErrorHandler,
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the global threshold
func (b *Builder) WithLevel(sev core.Severity) *Builder {
	b.level = sev
	return b
}

// WithChannelLevel sets the threshold for one channel, overriding the
// global threshold for records on that channel.
func (b *Builder) WithChannelLevel(channel string, sev core.Severity) *Builder {
	if b.channels == nil {
		b.channels = make(map[string]core.Severity)
	}
	b.channels[channel] = sev
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables or disables capturing MqttFile, MqttLine and
// MqttFunction from the call site. Sites set with Record.At are kept
// either way.
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock timestamps entries from a clock cached every 500µs
// instead of calling time.Now per entry.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// AddCallerSkip skips extra stack frames when capturing the call site,
// for wrappers around the logger.
func (b *Builder) AddCallerSkip(skip int) *Builder {
	b.callerSkip += skip
	return b
}

// WithErrorHandler replaces the default stderr error reporting. A nil fn
// discards errors.
func (b *Builder) WithErrorHandler(fn ErrorHandler) *Builder {
	if fn == nil {
		fn = func(error) {}
	}
	b.onError = fn
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	if b.coarseClock {
		core.StartCoarseClock()
	}
	thresholds := xsync.NewMapOf[string, core.Severity]()
	for channel, sev := range b.channels {
		thresholds.Store(channel, sev)
	}
	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)
	return &Logger{
		handler:       b.handler,
		level:         b.level,
		thresholds:    thresholds,
		fields:        fields,
		attrs:         attr.NewSet(nil),
		includeCaller: b.includeCaller,
		coarseClock:   b.coarseClock,
		callerSkip:    b.callerSkip,
		recycleEntry:  b.handler != nil && handler.CanRecycle(b.handler),
		onError:       b.onError,
	}
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := l.clone()
	c.fields = newFields
	return c
}

// Attributes returns the logger's scoped attribute set. Attributes
// attached to it with scope.Attach are seen by every statement of this
// logger and of loggers derived from it until released.
func (l *Logger) Attributes() *attr.Set {
	return l.attrs
}

// Attach returns a child logger that carries pairs (alternating name and
// value) as scoped attributes, together with the chain that releases
// them. The receiver never sees them.
//
//	child, chain, err := log.Attach(core.ChannelKey, "net", "client_id", id)
//	if err != nil { ... }
//	defer chain.Release()
func (l *Logger) Attach(pairs ...interface{}) (*Logger, *scope.Chain, error) {
	set := attr.NewSet(l.attrs)
	chain, err := scope.Attach(set, pairs...)
	if err != nil {
		return l, nil, err
	}
	c := l.clone()
	c.attrs = set
	return c, chain, nil
}

// Scoped runs fn with a child logger carrying pairs and releases them
// when fn returns or panics. fn is not run when pairs are invalid.
func (l *Logger) Scoped(fn func(*Logger), pairs ...interface{}) error {
	child, chain, err := l.Attach(pairs...)
	if err != nil {
		return err
	}
	defer chain.Release()
	fn(child)
	return nil
}

// Handler returns the logger's handler.
func (l *Logger) Handler() handler.Handler {
	return l.handler
}

// scopedChannel returns the MqttChannel attribute in scope, or "".
func (l *Logger) scopedChannel() string {
	if f, ok := l.attrs.Lookup(core.ChannelKey); ok {
		return f.StringValue()
	}
	return ""
}

// logAt backs the per-severity methods. The channel comes from the
// scoped MqttChannel attribute. skip counts frames above logAt up to the
// user's call.
func (l *Logger) logAt(sev core.Severity, msg string, fields []core.Field, skip int) {
	channel := l.scopedChannel()
	if !l.Enabled(channel, sev) {
		return
	}
	r := l.newRecord(channel, sev)
	r.fields = append(r.fields, fields...)
	l.emit(r, msg, skip+1)
}

// emit writes one entry for r and releases it. skip counts frames above
// emit up to the user's call.
func (l *Logger) emit(r *Record, msg string, skip int) {
	entry := core.GetEntry()
	if l.coarseClock {
		entry.Time = core.CoarseNow()
	} else {
		entry.Time = time.Now()
	}
	entry.Severity = r.severity
	entry.Channel = r.channel
	entry.Message = msg
	switch {
	case r.site.Defined:
		entry.Caller = r.site
	case l.includeCaller:
		entry.Caller = core.GetCaller(skip + 1 + l.callerSkip)
	}

	entry.Fields = append(entry.Fields, l.fields...)
	entry.Fields = r.set.Snapshot(entry.Fields)
	entry.Fields = dropKeywords(entry.Fields)
	entry.Fields = append(entry.Fields, r.fields...)

	if err := l.handler.Handle(entry); err != nil {
		l.onError(err)
	}
	if l.recycleEntry {
		core.PutEntry(entry)
	}
	r.release()
}

// dropKeywords removes the severity and channel bindings, which the
// entry carries as first-class values.
func dropKeywords(fields []core.Field) []core.Field {
	n := 0
	for _, f := range fields {
		if f.Key == core.SeverityKey || f.Key == core.ChannelKey {
			continue
		}
		fields[n] = f
		n++
	}
	return fields[:n]
}

// Trace logs a trace message on the scoped channel
func (l *Logger) Trace(msg string, fields ...core.Field) {
	l.logAt(core.Trace, msg, fields, 2)
}

// Debug logs a debug message on the scoped channel
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.logAt(core.Debug, msg, fields, 2)
}

// Info logs an info message on the scoped channel
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.logAt(core.Info, msg, fields, 2)
}

// Warning logs a warning message on the scoped channel
func (l *Logger) Warning(msg string, fields ...core.Field) {
	l.logAt(core.Warning, msg, fields, 2)
}

// Error logs an error message on the scoped channel
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.logAt(core.Error, msg, fields, 2)
}

// Fatal logs a fatal message, closes the handler so queued entries are
// written, and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.logAt(core.Fatal, msg, fields, 2)
	_ = l.Close()
	osExit(1)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.logfAt(core.Trace, format, args)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logfAt(core.Debug, format, args)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logfAt(core.Info, format, args)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.logfAt(core.Warning, format, args)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logfAt(core.Error, format, args)
}

// Fatalf logs a fatal message with formatting, closes the handler and
// exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logfAt(core.Fatal, format, args)
	_ = l.Close()
	osExit(1)
}

// logfAt formats only when the record passes the filter.
func (l *Logger) logfAt(sev core.Severity, format string, args []interface{}) {
	if !l.Enabled(l.scopedChannel(), sev) {
		return
	}
	l.logAt(sev, fmt.Sprintf(format, args...), nil, 3)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
