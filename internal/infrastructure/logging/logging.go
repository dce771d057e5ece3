// Package logging builds the process slog logger and carries the request id through contexts.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"servicios_locales/internal/config"
)

const serviceName = "servicios_locales"

type ctxKey int

const keyRequestID ctxKey = iota

// New builds a logger from config. Records are written to stdout and, when
// configured, to a size-rotated file.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *config.Config, stdout io.Writer) *slog.Logger {
	writers := []io.Writer{stdout}
	if cfg.Logging.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		})
	}

	w := io.MultiWriter(writers...)
	isDev := cfg.Server.IsDevelopment()
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Logging.Level),
		AddSource: isDev,
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Logging.Format, "json") || !isDev {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(requestIDHandler{Handler: h}).With(
		slog.String("service", serviceName),
		slog.String("env", cfg.Server.Environment),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// RequestIDFromContext returns "" when no id was stored.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// requestIDHandler adds request_id to every record logged with a request context.
type requestIDHandler struct {
	slog.Handler
}

func (h requestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestIDHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h requestIDHandler) WithGroup(name string) slog.Handler {
	return requestIDHandler{Handler: h.Handler.WithGroup(name)}
}
