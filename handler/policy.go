package handler

import (
	"sync/atomic"

	"github.com/philipp01105/mqttlog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultSeverityPolicy returns the default per-severity overflow policies
func DefaultSeverityPolicy() map[core.Severity]OverflowPolicy {
	return map[core.Severity]OverflowPolicy{
		core.Trace:   DropNewest,
		core.Debug:   DropNewest,
		core.Info:    DropNewest,
		core.Warning: DropNewest,
		core.Error:   Block,
		core.Fatal:   Block,
	}
}

// Stats tracks handler statistics
type Stats struct {
	dropped   [core.Fatal + 1]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a severity.
// Out-of-range severities are counted as fatal.
func (s *Stats) IncrementDropped(sev core.Severity) {
	if !sev.Valid() {
		sev = core.Fatal
	}
	s.dropped[sev].Add(1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// GetDropped returns the dropped count for a severity
func (s *Stats) GetDropped(sev core.Severity) uint64 {
	if !sev.Valid() {
		return 0
	}
	return s.dropped[sev].Load()
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return s.blocked.Load()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.processed.Load()
}

// GetTotalDropped returns the total dropped across all severities
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += s.dropped[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	DroppedTotal   map[core.Severity]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Severity]uint64, len(s.dropped))
	for _, sev := range core.Severities() {
		dropped[sev] = s.GetDropped(sev)
	}
	return Snapshot{
		DroppedTotal:   dropped,
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
	}
}
