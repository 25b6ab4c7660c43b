package logging

import (
	"context"
	"log/slog"
	"sync"
)

type ctxLoggerKey struct{}

var (
	defaultLogger = slog.New(slog.DiscardHandler)
	defaultMu     sync.RWMutex
)

// Default returns the process wide logger
func Default() *slog.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process wide logger. It also becomes slog's default.
func SetDefault(logger *slog.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
	slog.SetDefault(logger)
}

// With returns a context carrying the logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger stored in ctx, or the default logger
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
