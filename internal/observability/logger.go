package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog logger whose records carry the analysis request token
// found in the logging context.
type Logger struct {
	*slog.Logger
}

// LogConfig configures NewLogger. Unknown levels fall back to info and any
// format other than json is text.
type LogConfig struct {
	Level  string
	Format string
	Output io.Writer
}

func NewLogger(config LogConfig) *Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(config.Level))); err != nil {
		level = slog.LevelInfo
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(output, opts)
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	}
	return &Logger{Logger: slog.New(tokenHandler{Handler: handler})}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// tokenHandler copies the request token from the record's context.
type tokenHandler struct {
	slog.Handler
}

func (h tokenHandler) Handle(ctx context.Context, record slog.Record) error {
	if token := RequestTokenFromContext(ctx); token != "" {
		record.AddAttrs(slog.String("request_token", token))
	}
	return h.Handler.Handle(ctx, record)
}

func (h tokenHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return tokenHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h tokenHandler) WithGroup(name string) slog.Handler {
	return tokenHandler{Handler: h.Handler.WithGroup(name)}
}

type requestTokenKey struct{}

// ContextWithRequestToken tags ctx with an analysis request token.
func ContextWithRequestToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, requestTokenKey{}, token)
}

// RequestTokenFromContext returns the token set by ContextWithRequestToken.
func RequestTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(requestTokenKey{}).(string)
	return token
}
