package logger

import (
	"io"
	"testing"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler/consolehandler"
)

func newDiscardLogger(f formatter.Formatter, level core.Severity) *Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: f,
	})
	return NewBuilder().
		WithHandler(h).
		WithLevel(level).
		Build()
}

// BenchmarkLog benchmarks Log(channel, sev).Msg with no fields.
func BenchmarkLog(b *testing.B) {
	log := newDiscardLogger(formatter.NewTextFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Log("net", core.Info).Msg("test message")
	}
}

// BenchmarkLogWith2Fields benchmarks Log with two record fields.
func BenchmarkLogWith2Fields(b *testing.B) {
	log := newDiscardLogger(formatter.NewTextFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Log("net", core.Info).
			With(String("key1", "value1"), String("key2", "value2")).
			Msg("test message")
	}
}

// BenchmarkLogFP benchmarks LogFP with three pairs.
func BenchmarkLogFP(b *testing.B) {
	log := newDiscardLogger(formatter.NewTextFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.LogFP(core.ChannelKey, "net", core.SeverityKey, core.Warning, "client_id", "c1").
			Msg("test message")
	}
}

// BenchmarkFilteredLog benchmarks Log below the threshold.
// Target: <10 ns/op, 0 allocs/op, 0 B/op
func BenchmarkFilteredLog(b *testing.B) {
	log := newDiscardLogger(formatter.NewTextFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Log("net", core.Debug).With(String("key", "value")).Msg("debug message")
	}
}

// BenchmarkScopedInfo benchmarks Info on a logger carrying scoped attributes.
func BenchmarkScopedInfo(b *testing.B) {
	log := newDiscardLogger(formatter.NewTextFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	child, chain, err := log.Attach(core.ChannelKey, "net", "client_id", "c1")
	if err != nil {
		b.Fatal(err)
	}
	defer chain.Release()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		child.Info("test message")
	}
}

// BenchmarkJSON benchmarks Log with the JSON formatter.
func BenchmarkJSON(b *testing.B) {
	log := newDiscardLogger(formatter.NewJSONFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Log("net", core.Info).
			With(String("key1", "value1"), String("key2", "value2")).
			Msg("test message")
	}
}

func BenchmarkParallelLog(b *testing.B) {
	log := newDiscardLogger(formatter.NewTextFormatter(formatter.Config{}), core.Info)
	defer log.Close()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			log.Log("net", core.Info).With(Int("n", 1)).Msg("parallel")
		}
	})
}
