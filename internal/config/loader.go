package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "lifecalc/internal/errors"
)

const (
	envPrefix  = "LIFECALC"
	configName = "lifecalc"
)

type loadOptions struct {
	configFile  string
	envFile     string
	searchPaths []string
	homeDir     func() (string, error)
}

// Option customizes Load.
type Option func(*loadOptions)

// WithConfigFile reads exactly path instead of searching for lifecalc.yaml.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFile loads path instead of ./.env. Empty skips .env loading.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithSearchPaths replaces the directories searched for lifecalc.yaml.
func WithSearchPaths(paths ...string) Option {
	return func(o *loadOptions) {
		o.searchPaths = append([]string(nil), paths...)
	}
}

// Load resolves the configuration. Precedence, highest first: LIFECALC_*
// environment variables (including those from .env), the config file, defaults.
func Load(opts ...Option) (Config, error) {
	options := loadOptions{
		envFile: ".env",
		homeDir: os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if err := loadEnvFile(options.envFile); err != nil {
		return Config{}, &apperrors.ConfigError{Key: "env_file", Err: err}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		for _, path := range searchPaths(options) {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if options.configFile != "" || !errors.As(err, &notFound) {
			return Config{}, &apperrors.ConfigError{Err: fmt.Errorf("read config: %w", err)}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &apperrors.ConfigError{Err: fmt.Errorf("decode config: %w", err)}
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("analyze_delay", def.AnalyzeDelay)
	v.SetDefault("splash", def.Splash)
	v.SetDefault("calculator.cache_size", def.Calculator.CacheSize)
	v.SetDefault("calculator.history_file", def.Calculator.HistoryFile)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
}

func searchPaths(options loadOptions) []string {
	if len(options.searchPaths) > 0 {
		return options.searchPaths
	}
	paths := []string{"."}
	if home, err := options.homeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".lifecalc"))
	}
	return paths
}

// loadEnvFile exports the variables in path without overriding ones already
// set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
