package observability

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the observability section of the app configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json, text
	File   string `yaml:"file" mapstructure:"file"`     // empty: caller decides
}

// MetricsConfig configures the in-process metrics registry
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// DefaultConfig returns the default observability configuration
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate rejects values NewLogger would silently ignore.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// OpenLogger builds a Logger for cfg. When cfg.File is set the log is appended
// to that file; otherwise fallback is used. The returned closer is never nil.
func OpenLogger(cfg LoggingConfig, fallback io.Writer) (*Logger, io.Closer, error) {
	output := fallback
	closer := io.Closer(nopCloser{})

	if cfg.File != "" {
		path := expandHome(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		closer = file
	}
	if output == nil {
		output = io.Discard
	}

	return NewLogger(LogConfig{Level: cfg.Level, Format: cfg.Format, Output: output}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
