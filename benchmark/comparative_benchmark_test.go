package benchmark

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler/consolehandler"
	"github.com/philipp01105/mqttlog/handler/zaphandler"
	"github.com/philipp01105/mqttlog/logger"
)

// Every framework writes JSON to io.Discard.

func newMqttLogger() *logger.Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(core.Debug).
		WithCaller(false).
		Build()
}

func newZapCore() zapcore.Core {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
}

func newZapLogger() *zap.Logger {
	return zap.New(newZapCore())
}

func newSlogLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newLogrusLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l
}

func newZerologLogger() zerolog.Logger {
	return zerolog.New(io.Discard).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// A channel-tagged record with the fields a broker logs per packet.
func BenchmarkComparative_ChannelRecord(b *testing.B) {
	b.Run("mqttlog", func(b *testing.B) {
		l := newMqttLogger()
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Log("net", core.Info).With(
				logger.String("client_id", "sensor-7"),
				logger.Int("packet_id", 42),
				logger.Duration("latency", 150*time.Millisecond),
			).Msg("publish received")
		}
	})

	b.Run("mqttlog-zap", func(b *testing.B) {
		l := logger.NewBuilder().
			WithHandler(zaphandler.New(newZapCore())).
			WithLevel(core.Debug).
			WithCaller(false).
			Build()
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Log("net", core.Info).With(
				logger.String("client_id", "sensor-7"),
				logger.Int("packet_id", 42),
				logger.Duration("latency", 150*time.Millisecond),
			).Msg("publish received")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger().Named("net")
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("publish received",
				zap.String("client_id", "sensor-7"),
				zap.Int("packet_id", 42),
				zap.Duration("latency", 150*time.Millisecond),
			)
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("publish received",
				slog.String(core.ChannelKey, "net"),
				slog.String("client_id", "sensor-7"),
				slog.Int("packet_id", 42),
				slog.Duration("latency", 150*time.Millisecond),
			)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.WithFields(logrus.Fields{
				core.ChannelKey: "net",
				"client_id":     "sensor-7",
				"packet_id":     42,
				"latency":       150 * time.Millisecond,
			}).Info("publish received")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().
				Str(core.ChannelKey, "net").
				Str("client_id", "sensor-7").
				Int("packet_id", 42).
				Dur("latency", 150*time.Millisecond).
				Msg("publish received")
		}
	})
}

// Context carried for a connection's lifetime.
func BenchmarkComparative_ConnectionContext(b *testing.B) {
	b.Run("mqttlog", func(b *testing.B) {
		l := newMqttLogger()
		defer l.Close()
		conn, chain, err := l.Attach(core.ChannelKey, "net", "client_id", "sensor-7")
		if err != nil {
			b.Fatal(err)
		}
		defer chain.Release()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			conn.Info("ping")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger().Named("net").With(zap.String("client_id", "sensor-7"))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("ping")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger().With(core.ChannelKey, "net", "client_id", "sensor-7")
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("ping")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger().WithFields(logrus.Fields{core.ChannelKey: "net", "client_id": "sensor-7"})
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("ping")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger().With().Str(core.ChannelKey, "net").Str("client_id", "sensor-7").Logger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msg("ping")
		}
	})
}

// Level-check overhead for a statement below the threshold.
func BenchmarkComparative_Disabled(b *testing.B) {
	b.Run("mqttlog", func(b *testing.B) {
		l := logger.NewBuilder().WithHandler(newNoopHandler()).WithLevel(core.Info).Build()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Log("net", core.Trace).With(logger.String("k", "v")).Msg("trace")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(io.Discard), zap.InfoLevel))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("trace", zap.String("k", "v"))
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("trace", slog.String("k", "v"))
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger()
		l.SetLevel(logrus.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.WithField("k", "v").Debug("trace")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger().Level(zerolog.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug().Str("k", "v").Msg("trace")
		}
	})
}

// Logger overhead alone, without formatting.
func BenchmarkMqttlog_Noop(b *testing.B) {
	l := logger.NewBuilder().WithHandler(newNoopHandler()).WithLevel(core.Trace).Build()

	b.Run("Log", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Log("net", core.Info).Msg("noop")
		}
	})

	b.Run("LogFP", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.LogFP(core.ChannelKey, "net", "client_id", "sensor-7").Msg("noop")
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Log("net", core.Info).Msg("noop")
			}
		})
	})
}
