package handler

import (
	"errors"
	"sync"
	"time"

	"github.com/philipp01105/mqttlog/core"
)

// AsyncConfig holds configuration for an Async handler
type AsyncConfig struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-severity overflow behavior (default: DefaultSeverityPolicy)
	OverflowPolicy map[core.Severity]OverflowPolicy
	// BlockTimeout is the timeout for the Block policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds how long Close keeps writing queued entries (default: 5s)
	DrainTimeout time.Duration
}

// ErrClosed is returned by handlers that are asked to handle an entry
// after Close.
var ErrClosed = errors.New("handler: closed")

func applyAsyncDefaults(cfg *AsyncConfig) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultSeverityPolicy()
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// Async hands entries to a wrapped handler from a single background
// goroutine. Entries are owned by Async once Handle returns and are put
// back into the pool after the wrapped handler has processed them.
type Async struct {
	next           Handler
	recycle        bool
	queue          chan *core.Entry
	overflowPolicy map[core.Severity]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	stats          *Stats

	// mu guards isClosed; Handle holds the read lock while enqueueing so
	// Close never races a send.
	mu       sync.RWMutex
	isClosed bool
	deadline time.Time
	closed   chan struct{}
	wg       sync.WaitGroup
}

// NewAsync starts the background goroutine and returns the handler.
func NewAsync(next Handler, cfg AsyncConfig) *Async {
	applyAsyncDefaults(&cfg)
	h := &Async{
		next:           next,
		recycle:        CanRecycle(next),
		queue:          make(chan *core.Entry, cfg.BufferSize),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		stats:          NewStats(),
		closed:         make(chan struct{}),
	}
	h.wg.Add(1)
	go h.process()
	return h
}

// Handle queues the entry, applying the overflow policy of its severity
// when the queue is full. After Close it returns ErrClosed: the wrapped
// handler is closed by then.
func (h *Async) Handle(entry *core.Entry) error {
	h.mu.RLock()
	if h.isClosed {
		h.mu.RUnlock()
		core.PutEntry(entry)
		return ErrClosed
	}
	defer h.mu.RUnlock()

	policy, ok := h.overflowPolicy[entry.Severity]
	if !ok {
		policy = DropNewest
	}

	select {
	case h.queue <- entry:
		return nil
	default:
	}

	switch policy {
	case Block:
		timer := time.NewTimer(h.blockTimeout)
		defer timer.Stop()
		select {
		case h.queue <- entry:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			h.stats.IncrementBlocked()
			return h.writeAndRecycle(entry)
		}

	case DropOldest:
		select {
		case old := <-h.queue:
			h.stats.IncrementDropped(old.Severity)
			core.PutEntry(old)
		default:
		}
		select {
		case h.queue <- entry:
		default:
			h.stats.IncrementDropped(entry.Severity)
		}
		return nil

	default:
		h.stats.IncrementDropped(entry.Severity)
		return nil
	}
}

// CanRecycleEntry returns false because entries are processed after
// Handle returns.
func (h *Async) CanRecycleEntry() bool {
	return false
}

// Stats returns a snapshot of the current statistics
func (h *Async) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

func (h *Async) write(entry *core.Entry) error {
	err := h.next.Handle(entry)
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// process handles queued entries until Close. A pending close is checked
// before every entry so the drain deadline applies to the whole backlog.
func (h *Async) process() {
	defer h.wg.Done()

	for {
		select {
		case <-h.closed:
			h.drain()
			return
		default:
		}

		select {
		case entry := <-h.queue:
			_ = h.writeAndRecycle(entry)
		case <-h.closed:
			h.drain()
			return
		}
	}
}

// drain writes what is left in the queue until it is empty or the drain
// deadline passes; entries still queued after that are counted as dropped.
func (h *Async) drain() {
	for {
		select {
		case entry := <-h.queue:
			if time.Now().After(h.deadline) {
				h.stats.IncrementDropped(entry.Severity)
				core.PutEntry(entry)
				continue
			}
			_ = h.writeAndRecycle(entry)
		default:
			return
		}
	}
}

// writeAndRecycle writes entry and puts it back into the pool unless the
// wrapped handler keeps it.
func (h *Async) writeAndRecycle(entry *core.Entry) error {
	err := h.write(entry)
	if h.recycle {
		core.PutEntry(entry)
	}
	return err
}

// Close drains the queue with a timeout and closes the wrapped handler.
func (h *Async) Close() error {
	h.mu.Lock()
	if h.isClosed {
		h.mu.Unlock()
		return nil
	}
	h.isClosed = true
	h.deadline = time.Now().Add(h.drainTimeout)
	h.mu.Unlock()

	close(h.closed)
	h.wg.Wait()

	return h.next.Close()
}
