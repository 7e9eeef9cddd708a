package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/mqttlog/core"
)

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return format(entry, f.FormatEntry), nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return formatTo(entry, w, f.FormatEntry)
}

// pre-formatted severity strings to avoid multiple WriteString calls
var severityBrackets = [...]string{
	core.Trace:   " [trace] ",
	core.Debug:   " [debug] ",
	core.Info:    " [info] ",
	core.Warning: " [warning] ",
	core.Error:   " [error] ",
	core.Fatal:   " [fatal] ",
}

// FormatEntry writes the formatted entry into the given buffer
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	if entry.Severity.Valid() {
		buf.WriteString(severityBrackets[entry.Severity])
	} else {
		buf.WriteString(" [")
		buf.WriteString(entry.Severity.String())
		buf.WriteString("] ")
	}

	if entry.Channel != "" {
		buf.WriteByte('[')
		buf.WriteString(entry.Channel)
		buf.WriteString("] ")
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		if entry.Caller.Function != "" {
			buf.WriteByte(' ')
			buf.WriteString(shortFunction(entry.Caller.Function))
		}
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}

// shortFunction trims the import path from a qualified Go function name:
// "github.com/x/y/pkg.(*T).Method" becomes "pkg.(*T).Method".
func shortFunction(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
