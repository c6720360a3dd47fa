package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lifecalc/internal/config"
	"lifecalc/internal/expr"
	"lifecalc/internal/logging"
	"lifecalc/internal/observability"
	"lifecalc/internal/state"
)

// Container wires the long-lived collaborators shared by every command.
type Container struct {
	Config    config.Config
	Logger    *observability.Logger
	Metrics   *observability.Metrics
	Evaluator *expr.Evaluator
	Store     *state.Store

	closers []io.Closer
}

type containerOptions struct {
	configFile string
	verbose    bool
	// logOutput receives log lines when no log file is configured. Nil discards them.
	logOutput io.Writer
}

func buildContainer(opts containerOptions) (*Container, error) {
	loadOpts := []config.Option{}
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := observability.OpenLogger(cfg.Logging, opts.logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to open logger: %w", err)
	}

	metrics, err := observability.NewMetrics(cfg.Metrics)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	container := &Container{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Evaluator: expr.NewEvaluator(cfg.Calculator.CacheSize),
		Store:     state.NewStore(),
		closers:   []io.Closer{logCloser},
	}
	container.Log("container").Debug("config loaded from %q, analyze delay %s", cfg.Source, cfg.AnalyzeDelay)
	return container, nil
}

// Log returns a printf-style logger for component.
func (c *Container) Log(component string) logging.Logger {
	if c == nil {
		return logging.Nop()
	}
	return logging.NewComponentLogger(c.Logger, component)
}

// Cleanup flushes metrics and closes the log file.
func (c *Container) Cleanup() error {
	if c == nil {
		return nil
	}
	if summary := c.Metrics.Summary(); summary != "" {
		c.Log("metrics").Debug("session counters: %s", summary)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var errs []error
	if err := c.Metrics.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
	}
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
