package logging

import (
	"context"
	"fmt"
	"log/slog"

	"lifecalc/internal/observability"
)

// Logger is the printf-style logger handed to UI and CLI components.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

func Nop() Logger { return nop{} }

// OrNop substitutes Nop for a nil logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// componentLogger formats printf calls and emits them through slog with a
// component attribute.
type componentLogger struct {
	base *observability.Logger
	ctx  context.Context
}

func NewComponentLogger(base *observability.Logger, component string) Logger {
	if base == nil {
		return Nop()
	}
	if component != "" {
		base = base.With("component", component)
	}
	return componentLogger{base: base, ctx: context.Background()}
}

func (l componentLogger) emit(level slog.Level, format string, args []any) {
	l.base.Log(l.ctx, level, fmt.Sprintf(format, args...))
}

func (l componentLogger) Debug(format string, args ...any) { l.emit(slog.LevelDebug, format, args) }
func (l componentLogger) Info(format string, args ...any)  { l.emit(slog.LevelInfo, format, args) }
func (l componentLogger) Warn(format string, args ...any)  { l.emit(slog.LevelWarn, format, args) }
func (l componentLogger) Error(format string, args ...any) { l.emit(slog.LevelError, format, args) }

// FromContext tags logger with the analysis request token carried by ctx.
// Component loggers also pass ctx on to slog; other loggers get a
// "logid=<token>" message prefix.
func FromContext(ctx context.Context, logger Logger) Logger {
	logger = OrNop(logger)
	token := observability.RequestTokenFromContext(ctx)
	if token == "" {
		return logger
	}
	switch l := logger.(type) {
	case componentLogger:
		l.ctx = ctx
		return l
	case fanout:
		tagged := make(fanout, len(l))
		for i, inner := range l {
			tagged[i] = FromContext(ctx, inner)
		}
		return tagged
	default:
		return prefixed{Logger: logger, prefix: "logid=" + token + " "}
	}
}

type prefixed struct {
	Logger
	prefix string
}

func (p prefixed) Debug(format string, args ...any) { p.Logger.Debug(p.prefix+format, args...) }
func (p prefixed) Info(format string, args ...any)  { p.Logger.Info(p.prefix+format, args...) }
func (p prefixed) Warn(format string, args ...any)  { p.Logger.Warn(p.prefix+format, args...) }
func (p prefixed) Error(format string, args ...any) { p.Logger.Error(p.prefix+format, args...) }

type fanout []Logger

// Multi sends every call to each non-nil logger in order. Nested Multi
// loggers are flattened.
func Multi(loggers ...Logger) Logger {
	var out fanout
	for _, logger := range loggers {
		switch l := logger.(type) {
		case nil:
		case fanout:
			out = append(out, l...)
		default:
			out = append(out, l)
		}
	}
	switch len(out) {
	case 0:
		return Nop()
	case 1:
		return out[0]
	}
	return out
}

func (f fanout) Debug(format string, args ...any) {
	for _, l := range f {
		l.Debug(format, args...)
	}
}

func (f fanout) Info(format string, args ...any) {
	for _, l := range f {
		l.Info(format, args...)
	}
}

func (f fanout) Warn(format string, args ...any) {
	for _, l := range f {
		l.Warn(format, args...)
	}
}

func (f fanout) Error(format string, args ...any) {
	for _, l := range f {
		l.Error(format, args...)
	}
}
