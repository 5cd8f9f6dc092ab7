package genphen

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with genphen-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDataset adds the dataset shape to the logger.
func (l *Logger) WithDataset(d *Dataset) *Logger {
	return &Logger{
		Logger: l.Logger.With("entries", d.N(), "features", d.P()),
	}
}

// LogMerge logs a merge operation.
func (l *Logger) LogMerge(ctx context.Context, entries, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "merge failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "merge completed",
			"entries", entries,
			"features", features,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot "+op+" completed",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogPairwise logs a pairwise-distance computation.
func (l *Logger) LogPairwise(ctx context.Context, metrics []string, matrices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pairwise distances failed",
			"metrics", metrics,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pairwise distances completed",
			"metrics", metrics,
			"matrices", matrices,
		)
	}
}
