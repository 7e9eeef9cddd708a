// Package formatter defines how log entries are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which fills a caller-owned buffer. Handlers check for
// the optional interfaces at construction time and prefer them.
//
// TextFormatter renders one human-readable line per record:
//
//	2026-01-15T12:00:00Z [warning] [net] [conn.go:42 client.onTimeout] keep alive expired client_id=c1
//
// JSONFormatter renders one object per line using the MQTT attribute
// names (MqttSeverity, MqttChannel, MqttFile, MqttLine, MqttFunction) as
// keys, so downstream tooling can filter on them.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
