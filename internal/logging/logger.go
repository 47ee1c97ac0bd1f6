// Package logging provides the structured logging abstraction used by every
// pipeline component. Components depend on the Logger interface; the logrus
// backed implementation is created once by the container.
package logging

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// WithRun scopes a logger to one load run.
func WithRun(l Logger, runID string) Logger {
	return l.WithField(FieldRunID, runID)
}

// WithSource scopes a logger to a source and, when sheet is not empty, to
// one of its sheets.
func WithSource(l Logger, source, sheet string) Logger {
	if sheet == "" {
		return l.WithField(FieldSource, source)
	}
	return l.WithFields(
		Field{Key: FieldSource, Value: source},
		Field{Key: FieldSheet, Value: sheet},
	)
}
