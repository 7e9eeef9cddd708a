package filehandler

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler"
)

// ErrNoFilename is returned by NewFileHandler when FileConfig.Filename is empty.
var ErrNoFilename = errors.New("filehandler: filename is required")

// ErrClosed is returned by Handle after Close.
var ErrClosed = handler.ErrClosed

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the size in megabytes before the file is rotated (default: 100)
	MaxSize int
	// MaxAge is the number of days to retain rotated files (0 = no age limit)
	MaxAge int
	// MaxBackups is the maximum number of rotated files to retain (0 = keep all)
	MaxBackups int
	// Compress gzips rotated files
	Compress bool
	// LocalTime uses local time in backup file names instead of UTC
	LocalTime bool
	// RotateInterval rotates the file when this much time has passed since
	// the last rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// OverflowPolicy defines per-severity overflow behavior (default: DefaultSeverityPolicy)
	OverflowPolicy map[core.Severity]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// FileHandler writes entries through a buffered writer into a
// lumberjack-rotated file. The buffer is flushed on error and fatal
// records, on rotation and on Close.
type FileHandler struct {
	out             *lumberjack.Logger
	bufWriter       *bufio.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	rotateInterval  time.Duration
	lastRotateTime  time.Time
	stats           *handler.Stats

	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

// NewFileHandler creates a new file handler. With Async set the returned
// handler is a *handler.Async wrapping a *FileHandler.
func NewFileHandler(cfg FileConfig) (handler.Handler, error) {
	h, err := newFileHandler(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.Async {
		return h, nil
	}
	return handler.NewAsync(h, handler.AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}), nil
}

func newFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	// Fail early on an unusable directory; lumberjack would only report it
	// on the first write.
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, err
	}

	out := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}
	h := &FileHandler{
		out:            out,
		bufWriter:      bufio.NewWriterSize(out, 4096),
		formatter:      cfg.Formatter,
		rotateInterval: cfg.RotateInterval,
		lastRotateTime: time.Now(),
		stats:          handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.buf.Grow(256)
	return h, nil
}

// Handle formats the entry and writes it to the file.
func (h *FileHandler) Handle(entry *core.Entry) error {
	var data []byte
	if h.bufferFormatter == nil {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}

	if h.rotateInterval > 0 && time.Since(h.lastRotateTime) >= h.rotateInterval {
		if err := h.rotate(); err != nil {
			return err
		}
	}

	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		data = h.buf.Bytes()
	}
	if _, err := h.bufWriter.Write(data); err != nil {
		return err
	}
	if entry.Severity >= core.Error {
		if err := h.bufWriter.Flush(); err != nil {
			return err
		}
	}
	h.stats.IncrementProcessed()
	return nil
}

// Rotate flushes pending output and starts a new file, keeping the old
// one as a backup subject to MaxBackups and MaxAge.
func (h *FileHandler) Rotate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	return h.rotate()
}

func (h *FileHandler) rotate() error {
	if err := h.bufWriter.Flush(); err != nil {
		return err
	}
	h.lastRotateTime = time.Now()
	return h.out.Rotate()
}

// Flush writes buffered output to the file.
func (h *FileHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bufWriter.Flush()
}

// CanRecycleEntry returns true because entries are written before Handle returns.
func (h *FileHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes buffered output and closes the file.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	if err := h.bufWriter.Flush(); err != nil {
		_ = h.out.Close()
		return err
	}
	return h.out.Close()
}
