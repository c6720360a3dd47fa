package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	apperrors "lifecalc/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(WithSearchPaths(dir), WithEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.AnalyzeDelay)
	assert.True(t, cfg.Splash)
	assert.Equal(t, DefaultCacheSize, cfg.Calculator.CacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Source)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lifecalc.yaml", `
analyze_delay: 500ms
splash: false
calculator:
  cache_size: 16
logging:
  level: debug
  format: json
`)

	cfg, err := Load(WithSearchPaths(dir), WithEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.AnalyzeDelay)
	assert.False(t, cfg.Splash)
	assert.Equal(t, 16, cfg.Calculator.CacheSize)
	assert.Equal(t, DefaultHistoryFile, cfg.Calculator.HistoryFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, filepath.Join(dir, "lifecalc.yaml"), cfg.Source)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lifecalc.yaml", "analyze_delay: 5s\n")
	t.Setenv("LIFECALC_ANALYZE_DELAY", "0s")
	t.Setenv("LIFECALC_CALCULATOR_CACHE_SIZE", "4")

	cfg, err := Load(WithSearchPaths(dir), WithEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.AnalyzeDelay)
	assert.Equal(t, 4, cfg.Calculator.CacheSize)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "LIFECALC_SPLASH=false\n")
	t.Cleanup(func() { _ = os.Unsetenv("LIFECALC_SPLASH") })

	cfg, err := Load(WithSearchPaths(dir), WithEnvFile(envFile))
	require.NoError(t, err)
	assert.False(t, cfg.Splash)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml")), WithEnvFile(""))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConfig, apperrors.Classify(err))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{name: "negative delay", body: "analyze_delay: -1s\n", key: "analyze_delay"},
		{name: "negative cache", body: "calculator:\n  cache_size: -2\n", key: "calculator.cache_size"},
		{name: "bad format", body: "logging:\n  format: xml\n", key: "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "lifecalc.yaml", tt.body)

			_, err := Load(WithConfigFile(path), WithEnvFile(""))
			require.Error(t, err)

			var cfgErr *apperrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestConfigMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(Default())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "analyze_delay: 2s")
	assert.Contains(t, text, "cache_size: 128")
	assert.Contains(t, text, "level: info")
	assert.NotContains(t, text, "source")
}

func TestHistoryPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".lifecalc_history"), CalculatorConfig{HistoryFile: "~/.lifecalc_history"}.HistoryPath())
	assert.Equal(t, "/tmp/h", CalculatorConfig{HistoryFile: "/tmp/h"}.HistoryPath())
	assert.Empty(t, CalculatorConfig{}.HistoryPath())
}
