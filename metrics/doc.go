// Package metrics exposes handler delivery statistics to Prometheus.
//
//	c := metrics.NewCollector("mqtt_log")
//	_ = c.Register("console", consoleHandler.(handler.StatsProvider))
//	prometheus.MustRegister(c)
package metrics
