package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one emitted log record with all its metadata. Severity and
// Channel hold the resolved values of the MqttSeverity and MqttChannel
// attributes; Caller holds MqttFile, MqttLine and MqttFunction.
type Entry struct {
	Time     time.Time
	Severity Severity
	Channel  string
	Message  string
	Fields   []Field
	Caller   CallerInfo
}

// CallerInfo contains information about the call site of a record
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	PC        uintptr
	Defined   bool
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8),
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Severity = Info
	e.Channel = ""
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Channel = ""
	e.Caller = CallerInfo{}
	entryPool.Put(e)
}

// Clone returns a copy of e that does not share its Fields slice, so it
// stays valid after e goes back to the pool.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Fields = make([]Field, len(e.Fields))
	copy(c.Fields, e.Fields)
	return &c
}

// Attribute looks up a record attribute by name. The keyword names
// (SeverityKey, ChannelKey, FileKey, LineKey, FunctionKey) resolve to the
// entry's first-class values; any other name is searched in Fields.
func (e *Entry) Attribute(name string) (Field, bool) {
	switch name {
	case SeverityKey:
		return Field{Key: name, Type: SeverityType, Int64: int64(e.Severity)}, true
	case ChannelKey:
		return Field{Key: name, Type: StringType, Str: e.Channel}, true
	case FileKey:
		if !e.Caller.Defined {
			return Field{}, false
		}
		return Field{Key: name, Type: StringType, Str: e.Caller.File}, true
	case LineKey:
		if !e.Caller.Defined {
			return Field{}, false
		}
		return Field{Key: name, Type: UintType, Int64: int64(e.Caller.Line)}, true
	case FunctionKey:
		if !e.Caller.Defined {
			return Field{}, false
		}
		return Field{Key: name, Type: StringType, Str: e.Caller.Function}, true
	}
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == name {
			return e.Fields[i], true
		}
	}
	return Field{}, false
}

// GetCaller retrieves caller information. skip counts frames above
// GetCaller, as for runtime.Caller.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}
	return CallerAt(pc, file, line)
}

// CallerAt builds a CallerInfo from a program counter and its position.
func CallerAt(pc uintptr, file string, line int) CallerInfo {
	var funcName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		PC:        pc,
		Defined:   true,
	}
}

// Site builds a CallerInfo for an explicitly known source location, for
// generated code or records forwarded from elsewhere.
func Site(file string, line int, function string) CallerInfo {
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  function,
		Defined:   true,
	}
}
