package multihandler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/handler"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers []handler.Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...handler.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle sends the entry to every handler. Children that keep the entry
// past Handle get their own copy, so no two children share a pooled Entry.
func (m *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, h := range m.handlers {
		e := entry
		if !handler.CanRecycle(h) {
			e = entry.Clone()
		}
		err = multierr.Append(err, h.Handle(e))
	}
	return err
}

// CanRecycleEntry reports whether the caller can recycle the entry after
// Handle returns. Asynchronous children receive clones, so this is
// always true.
func (m *MultiHandler) CanRecycleEntry() bool {
	return true
}

// Stats sums the statistics of every child that keeps them.
func (m *MultiHandler) Stats() handler.Snapshot {
	total := handler.Snapshot{DroppedTotal: make(map[core.Severity]uint64)}
	for _, h := range m.handlers {
		sp, ok := h.(handler.StatsProvider)
		if !ok {
			continue
		}
		s := sp.Stats()
		for sev, n := range s.DroppedTotal {
			total.DroppedTotal[sev] += n
		}
		total.BlockedTotal += s.BlockedTotal
		total.ProcessedTotal += s.ProcessedTotal
	}
	return total
}

// Close closes all handlers and returns every error encountered.
func (m *MultiHandler) Close() error {
	var err error
	for _, h := range m.handlers {
		err = multierr.Append(err, h.Close())
	}
	return err
}
