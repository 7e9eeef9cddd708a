package metrics

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/handler"
)

// ErrDuplicateHandler is returned by Register when the name is already taken.
var ErrDuplicateHandler = errors.New("metrics: handler already registered")

// Collector exports handler statistics as Prometheus counters:
//   - <namespace>_records_processed_total{handler}
//   - <namespace>_records_dropped_total{handler,severity}
//   - <namespace>_records_blocked_total{handler}
//
// Values are read from each registered StatsProvider at scrape time.
type Collector struct {
	processed *prometheus.Desc
	dropped   *prometheus.Desc
	blocked   *prometheus.Desc

	mu       sync.RWMutex
	handlers map[string]handler.StatsProvider
}

// NewCollector creates a Collector whose metric names use namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		processed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "records", "processed_total"),
			"Total number of log records written by a handler",
			[]string{"handler"}, nil,
		),
		dropped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "records", "dropped_total"),
			"Total number of log records dropped on queue overflow",
			[]string{"handler", "severity"}, nil,
		),
		blocked: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "records", "blocked_total"),
			"Total number of log records written synchronously after a blocked enqueue timed out",
			[]string{"handler"}, nil,
		),
		handlers: make(map[string]handler.StatsProvider),
	}
}

// Register adds a handler under name.
func (c *Collector) Register(name string, sp handler.StatsProvider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	c.handlers[name] = sp
	return nil
}

// Unregister removes the handler registered under name.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	delete(c.handlers, name)
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.dropped
	ch <- c.blocked
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	providers := make([]handler.StatsProvider, len(names))
	for i, name := range names {
		providers[i] = c.handlers[name]
	}
	c.mu.RUnlock()

	for i, name := range names {
		snap := providers[i].Stats()
		ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(snap.ProcessedTotal), name)
		ch <- prometheus.MustNewConstMetric(c.blocked, prometheus.CounterValue, float64(snap.BlockedTotal), name)
		for _, sev := range core.Severities() {
			ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(snap.DroppedTotal[sev]), name, sev.String())
		}
	}
}
