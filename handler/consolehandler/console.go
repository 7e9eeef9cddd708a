package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = handler.ErrClosed

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-severity overflow behavior (default: DefaultSeverityPolicy)
	OverflowPolicy map[core.Severity]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// NewConsoleHandler creates a new console handler. With Async set the
// returned handler is a *handler.Async wrapping a *ConsoleHandler;
// otherwise it is the *ConsoleHandler itself.
func NewConsoleHandler(cfg ConsoleConfig) handler.Handler {
	applyConsoleDefaults(&cfg)
	h := newConsoleHandler(cfg)
	if !cfg.Async {
		return h
	}
	return handler.NewAsync(h, handler.AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	})
}

// ConsoleHandler writes every entry synchronously to its writer.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool
	stats           *handler.Stats

	// mu protects buf and serializes writes to non-concurrent writers
	mu     sync.Mutex
	buf    bytes.Buffer
	bufs   sync.Pool
	closed chan struct{}
}

func newConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	h := &ConsoleHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          handler.NewStats(),
		closed:         make(chan struct{}),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.buf.Grow(256)
	h.bufs.New = func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	}
	return h
}

// Handle formats and writes the entry.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}

	err := h.write(entry)
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// write uses the handler-owned buffer when uncontended. Under contention
// it formats into a pooled buffer outside the lock.
func (h *ConsoleHandler) write(entry *core.Entry) error {
	if h.bufferFormatter == nil {
		data, err := h.formatter.Format(entry)
		if err != nil {
			return err
		}
		return h.writeBytes(data)
	}

	if h.mu.TryLock() {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err := h.writer.Write(h.buf.Bytes())
		h.mu.Unlock()
		return err
	}

	b := h.bufs.Get().(*bytes.Buffer)
	b.Reset()
	h.bufferFormatter.FormatEntry(entry, b)
	err := h.writeBytes(b.Bytes())
	h.bufs.Put(b)
	return err
}

func (h *ConsoleHandler) writeBytes(p []byte) error {
	if h.concurrentSafe {
		_, err := h.writer.Write(p)
		return err
	}
	h.mu.Lock()
	_, err := h.writer.Write(p)
	h.mu.Unlock()
	return err
}

// CanRecycleEntry returns true because entries are written before Handle returns.
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close marks the handler closed. The writer is left open since it is
// usually os.Stdout or os.Stderr.
func (h *ConsoleHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.closed:
	default:
		close(h.closed)
	}
	return nil
}
