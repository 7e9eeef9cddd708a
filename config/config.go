package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/philipp01105/mqttlog/core"
)

// Formats and outputs accepted by Config.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

var (
	// ErrInvalidFormat is returned by Validate for an unknown Format.
	ErrInvalidFormat = errors.New("config: invalid format")
	// ErrInvalidOutput is returned by Validate for an unknown Output.
	ErrInvalidOutput = errors.New("config: invalid output")
	// ErrNoFilePath is returned by Validate when Output is file without File.Path.
	ErrNoFilePath = errors.New("config: file output requires file.path")
)

// Config describes the default logger. Every field can be set from YAML
// or from MQTT_LOG_* environment variables; the environment wins.
type Config struct {
	// Level is the global threshold (trace, debug, info, warning, error, fatal)
	Level string `yaml:"level" env:"MQTT_LOG_LEVEL" env-default:"info"`

	// Format is text, json or console
	Format string `yaml:"format" env:"MQTT_LOG_FORMAT" env-default:"text"`

	// Output is stdout, stderr or file
	Output string `yaml:"output" env:"MQTT_LOG_OUTPUT" env-default:"stdout"`

	// Async puts a queue between callers and the output
	Async bool `yaml:"async" env:"MQTT_LOG_ASYNC"`

	// BufferSize is the async queue size
	BufferSize int `yaml:"bufferSize" env:"MQTT_LOG_BUFFER_SIZE" env-default:"1000"`

	// DisableCaller drops MqttFile, MqttLine and MqttFunction from the output
	DisableCaller bool `yaml:"disableCaller" env:"MQTT_LOG_DISABLE_CALLER"`

	// Channels maps channel names to their own thresholds, e.g. "net:debug,persist:warning"
	Channels map[string]string `yaml:"channels" env:"MQTT_LOG_CHANNELS"`

	File File `yaml:"file"`
}

// File configures file output.
type File struct {
	// Path is the log file path
	Path string `yaml:"path" env:"MQTT_LOG_FILE_PATH"`

	// MaxSize is the size in megabytes before rotation
	MaxSize int `yaml:"maxSize" env:"MQTT_LOG_FILE_MAX_SIZE" env-default:"100"`

	// MaxBackups is the number of rotated files to keep
	MaxBackups int `yaml:"maxBackups" env:"MQTT_LOG_FILE_MAX_BACKUPS" env-default:"3"`

	// MaxAge is the number of days to keep rotated files
	MaxAge int `yaml:"maxAge" env:"MQTT_LOG_FILE_MAX_AGE" env-default:"7"`

	// Compress gzips rotated files
	Compress bool `yaml:"compress" env:"MQTT_LOG_FILE_COMPRESS"`
}

// Load reads the configuration from the YAML file at path, then applies
// environment overrides. With an empty path only the environment is read.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Level:      core.Info.String(),
		Format:     FormatText,
		Output:     OutputStdout,
		BufferSize: 1000,
		File: File{
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := c.Threshold(); err != nil {
		return err
	}
	if _, err := c.ChannelThresholds(); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	switch c.Output {
	case OutputStdout, OutputStderr:
	case OutputFile:
		if c.File.Path == "" {
			return ErrNoFilePath
		}
		if c.Format == FormatConsole {
			return fmt.Errorf("%w: console format needs stdout or stderr", ErrInvalidFormat)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	return nil
}

// Threshold parses Level.
func (c *Config) Threshold() (core.Severity, error) {
	sev, err := core.ParseSeverity(c.Level)
	if err != nil {
		return core.Info, fmt.Errorf("config: level: %w", err)
	}
	return sev, nil
}

// ChannelThresholds parses Channels.
func (c *Config) ChannelThresholds() (map[string]core.Severity, error) {
	out := make(map[string]core.Severity, len(c.Channels))
	for channel, level := range c.Channels {
		sev, err := core.ParseSeverity(level)
		if err != nil {
			return nil, fmt.Errorf("config: channel %s: %w", channel, err)
		}
		out[channel] = sev
	}
	return out, nil
}
