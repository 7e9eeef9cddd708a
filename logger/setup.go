package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/philipp01105/mqttlog/config"
	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler"
	"github.com/philipp01105/mqttlog/handler/consolehandler"
	"github.com/philipp01105/mqttlog/handler/filehandler"
	"github.com/philipp01105/mqttlog/handler/sloghandler"
)

// NewFromConfig builds a logger from cfg: handler, formatter, global and
// per-channel thresholds.
func NewFromConfig(cfg *config.Config) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	threshold, _ := cfg.Threshold()
	channels, _ := cfg.ChannelThresholds()

	h, err := newHandler(cfg)
	if err != nil {
		return nil, err
	}

	b := NewBuilder().
		WithHandler(h).
		WithLevel(threshold).
		WithCaller(!cfg.DisableCaller)
	for channel, sev := range channels {
		b.WithChannelLevel(channel, sev)
	}
	return b.Build(), nil
}

// Setup builds a logger from cfg and installs it as the default logger.
// The previous default logger is closed so its queued entries are written
// and its handler released; loggers derived from it stop writing.
func Setup(cfg *config.Config) (*Logger, error) {
	l, err := NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if prev := swapDefault(l); prev != nil && prev != l {
		if err := prev.Close(); err != nil {
			l.onError(fmt.Errorf("logger: close previous default: %w", err))
		}
	}
	return l, nil
}

func newHandler(cfg *config.Config) (handler.Handler, error) {
	var w io.Writer = os.Stdout
	if cfg.Output == config.OutputStderr {
		w = os.Stderr
	}

	if cfg.Format == config.FormatConsole {
		// console-slog does its own level check; the logger filters first.
		var h handler.Handler = sloghandler.NewConsole(w, core.Trace)
		if cfg.Async {
			h = handler.NewAsync(h, handler.AsyncConfig{BufferSize: cfg.BufferSize})
		}
		return h, nil
	}

	fcfg := formatter.Config{IncludeCaller: !cfg.DisableCaller}
	var f formatter.Formatter = formatter.NewTextFormatter(fcfg)
	if cfg.Format == config.FormatJSON {
		f = formatter.NewJSONFormatter(fcfg)
	}

	if cfg.Output == config.OutputFile {
		h, err := filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:   cfg.File.Path,
			Formatter:  f,
			Async:      cfg.Async,
			BufferSize: cfg.BufferSize,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAge,
			Compress:   cfg.File.Compress,
		})
		if err != nil {
			return nil, fmt.Errorf("logger: file output: %w", err)
		}
		return h, nil
	}

	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:     w,
		Formatter:  f,
		Async:      cfg.Async,
		BufferSize: cfg.BufferSize,
	}), nil
}
