package imputego

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with imputego-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRound adds a round field to the logger.
func (l *Logger) WithRound(round int) *Logger {
	return &Logger{
		Logger: l.Logger.With("round", round),
	}
}

// WithColumn adds a column field to the logger.
func (l *Logger) WithColumn(col int) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", col),
	}
}

// LogComplete logs a full-matrix completion.
func (l *Logger) LogComplete(rows, cols, missing int, duration time.Duration, err error) {
	if err != nil {
		l.Error("completion failed",
			"rows", rows,
			"cols", cols,
			"missing", missing,
			"error", err,
		)
	} else {
		l.Info("completion done",
			"rows", rows,
			"cols", cols,
			"missing", missing,
			"duration", duration,
		)
	}
}

// LogRowComplete logs an out-of-sample row completion.
func (l *Logger) LogRowComplete(missing int, duration time.Duration, err error) {
	if err != nil {
		l.Error("row completion failed",
			"missing", missing,
			"error", err,
		)
	} else {
		l.Debug("row completion done",
			"missing", missing,
			"duration", duration,
		)
	}
}

// LogSnapshot logs a model-state snapshot operation.
func (l *Logger) LogSnapshot(name string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"name", name,
		)
	}
}

// engineLogger adapts Logger to the engine's printf-style interface.
type engineLogger struct {
	l *Logger
}

func (el engineLogger) Infof(format string, args ...interface{}) {
	el.l.Info(fmt.Sprintf(format, args...))
}

func (el engineLogger) Errorf(format string, args ...interface{}) {
	el.l.Error(fmt.Sprintf(format, args...))
}
