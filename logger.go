package bumparena

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with arena-specific context.
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

// WithName adds an arena name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena", name),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity uintptr) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", uint64(capacity)),
	}
}

// LogReserve logs the outcome of the region reservation.
func (l *Logger) LogReserve(capacity uintptr, duration time.Duration, err error) {
	ctx := context.Background()
	if err != nil {
		l.ErrorContext(ctx, "reservation failed",
			"capacity", uint64(capacity),
			"duration", duration,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "region reserved",
		"capacity", uint64(capacity),
		"duration", duration,
	)
}

// LogFailure logs an allocation failure before the failure handler runs.
func (l *Logger) LogFailure(err *AllocError) {
	l.ErrorContext(context.Background(), "allocation failed",
		"kind", err.Kind,
		"size", uint64(err.Size),
		"align", uint64(err.Align),
		"offset", uint64(err.Offset),
		"capacity", uint64(err.Capacity),
		"error", err,
	)
}
