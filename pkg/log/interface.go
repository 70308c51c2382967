// Package log provides the structured logging interface used by mlkit models.
//
// The interface is slog-compatible so any backend can be plugged in. The
// default backend is zerolog (see NewZerologLogger) and the process-wide
// default logger is silent until SetupLogger or SetLogger is called.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("linear.perceptron").With(
//	    log.ModelNameKey, "Perceptron",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 4,
//	    log.FeaturesKey, 2,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. Error treats a leading error value
// specially: its message and cockroachdb stack trace are attached to the
// record.
type Logger interface {
	// Debug logs per-epoch and per-iteration diagnostics.
	Debug(msg string, fields ...any)

	// Info logs training start/finish and other operational events.
	Info(msg string, fields ...any)

	// Warn logs recoverable conditions such as non-convergence.
	Warn(msg string, fields ...any)

	// Error logs failures. If the first field is an error, it is
	// attached together with its stack trace.
	//
	//   logger.Error("Loading dataset failed", err, "path", path)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. Tests inject a TestLoggerProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by this provider.
	SetLevel(level Level)
}
