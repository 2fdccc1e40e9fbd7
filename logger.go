package fastic

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with fastic-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithGeneration adds the index generation to the logger.
func (l *Logger) WithGeneration(generation string) *Logger {
	return &Logger{
		Logger: l.Logger.With("generation", generation),
	}
}

// LogReset logs an index (re)build.
func (l *Logger) LogReset(ctx context.Context, individuals int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index built",
			"individuals", individuals,
			"duration", duration,
		)
	}
}

// LogInstances logs an instance retrieval.
func (l *Logger) LogInstances(ctx context.Context, expression string, count int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "instance retrieval failed",
			"expression", expression,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "instance retrieval completed",
			"expression", expression,
			"instances", count,
			"duration", duration,
		)
	}
}

// LogDirect logs that direct instances were requested but not distinguished.
func (l *Logger) LogDirect(ctx context.Context, expression string) {
	l.WarnContext(ctx, "direct instances are not distinguished, returning all instances",
		"expression", expression,
	)
}
