package handler

import (
	"github.com/philipp01105/mqttlog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that keep delivery statistics.
type StatsProvider interface {
	Stats() Snapshot
}

// Recycler is implemented by handlers that are done with an Entry when
// Handle returns, so the caller may put it back into the pool.
type Recycler interface {
	CanRecycleEntry() bool
}

// CanRecycle reports whether entries passed to h may be recycled after
// Handle returns. Handlers that do not implement Recycler keep entries.
func CanRecycle(h Handler) bool {
	if rc, ok := h.(Recycler); ok {
		return rc.CanRecycleEntry()
	}
	return false
}
