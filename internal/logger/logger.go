// Package logger configures structured logging for the bot and carries
// request correlation metadata on context.Context.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/padyakph/hatidbot/internal/config"
)

var (
	initOnce sync.Once

	// L is the base logger shared by all components.
	L *slog.Logger
)

// Init configures the global structured logger. It may be called only once.
func Init(cfg config.LoggingConfig) {
	initOnce.Do(func() {
		opts := &slog.HandlerOptions{Level: selectLevel(cfg)}

		var handler slog.Handler
		switch selectFormat(cfg) {
		case "kv":
			handler = slog.NewTextHandler(os.Stdout, opts)
		default:
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}

		L = slog.New(handler)
		slog.SetDefault(L)
	})
}

// Component derives a child logger tagged with the component attribute.
func Component(name string) *slog.Logger {
	return base().With(slog.String("component", name))
}

func base() *slog.Logger {
	if L != nil {
		return L
	}
	return slog.Default()
}

// Debug logs an event at debug level, enriched with context metadata.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, slog.LevelDebug, component, event, attrs...)
}

// Info logs an event at info level, enriched with context metadata.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, slog.LevelInfo, component, event, attrs...)
}

// Warn logs an event at warn level, enriched with context metadata.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, slog.LevelWarn, component, event, attrs...)
}

// Error logs an event at error level, enriched with context metadata.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	logEvent(ctx, slog.LevelError, component, event, attrs...)
}

func logEvent(ctx context.Context, level slog.Level, component, event string, attrs ...slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if rid := RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	Component(component).LogAttrs(ctx, level, event, attrs...)
}

func selectLevel(cfg config.LoggingConfig) slog.Level {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func selectFormat(cfg config.LoggingConfig) string {
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "kv", "text", "pretty":
		return "kv"
	case "json":
		return "json"
	}
	// Prefer human-friendly format when profile indicates debug/dev mode.
	if strings.EqualFold(cfg.Profile, "debug") || strings.EqualFold(cfg.Profile, "dev") {
		return "kv"
	}
	return "json"
}
