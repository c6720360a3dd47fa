// Package config loads lifecalc settings from lifecalc.yaml, a .env file and
// LIFECALC_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "lifecalc/internal/errors"
	"lifecalc/internal/observability"
)

const (
	DefaultAnalyzeDelay = 2 * time.Second
	DefaultCacheSize    = 128
	DefaultHistoryFile  = "~/.lifecalc_history"
)

// Config is the effective application configuration.
type Config struct {
	AnalyzeDelay time.Duration               `mapstructure:"analyze_delay"`
	Splash       bool                        `mapstructure:"splash"`
	Calculator   CalculatorConfig            `mapstructure:"calculator"`
	Logging      observability.LoggingConfig `mapstructure:"logging"`
	Metrics      observability.MetricsConfig `mapstructure:"metrics"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// CalculatorConfig configures the expression evaluator and REPL.
type CalculatorConfig struct {
	CacheSize   int    `mapstructure:"cache_size" yaml:"cache_size"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	obs := observability.DefaultConfig()
	return Config{
		AnalyzeDelay: DefaultAnalyzeDelay,
		Splash:       true,
		Calculator: CalculatorConfig{
			CacheSize:   DefaultCacheSize,
			HistoryFile: DefaultHistoryFile,
		},
		Logging: obs.Logging,
		Metrics: obs.Metrics,
	}
}

// Observability returns the logging and metrics sections.
func (c Config) Observability() observability.Config {
	return observability.Config{Logging: c.Logging, Metrics: c.Metrics}
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if c.AnalyzeDelay < 0 {
		return &apperrors.ConfigError{Key: "analyze_delay", Err: fmt.Errorf("must not be negative, got %s", c.AnalyzeDelay)}
	}
	if c.Calculator.CacheSize < 0 {
		return &apperrors.ConfigError{Key: "calculator.cache_size", Err: fmt.Errorf("must not be negative, got %d", c.Calculator.CacheSize)}
	}
	if err := c.Observability().Validate(); err != nil {
		return &apperrors.ConfigError{Key: "logging", Err: err}
	}
	return nil
}

// HistoryPath returns the REPL history file with ~ expanded. Empty disables history.
func (c CalculatorConfig) HistoryPath() string {
	path := strings.TrimSpace(c.HistoryFile)
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// fileConfig is the YAML shape written by `config show`.
type fileConfig struct {
	AnalyzeDelay string                      `yaml:"analyze_delay"`
	Splash       bool                        `yaml:"splash"`
	Calculator   CalculatorConfig            `yaml:"calculator"`
	Logging      observability.LoggingConfig `yaml:"logging"`
	Metrics      observability.MetricsConfig `yaml:"metrics"`
}

// MarshalYAML renders durations the way they are written in lifecalc.yaml.
func (c Config) MarshalYAML() (any, error) {
	return fileConfig{
		AnalyzeDelay: c.AnalyzeDelay.String(),
		Splash:       c.Splash,
		Calculator:   c.Calculator,
		Logging:      c.Logging,
		Metrics:      c.Metrics,
	}, nil
}
