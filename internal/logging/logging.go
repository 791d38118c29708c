// Package logging provides the leveled logger used by the CLI and the scan
// engine. It is a thin wrapper around charmbracelet/log that keeps debug
// output off unless explicitly enabled and is safe to use as a nil no-op.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger writes user-facing output to stderr and, when enabled, debug
// output for troubleshooting. A nil *Logger discards everything.
type Logger struct {
	logger *log.Logger
}

// NewLogger creates a logger writing to the given destination.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		logger: log.NewWithOptions(w, log.Options{}),
	}
}

// EnableDebug turns on debug-level output.
func (l *Logger) EnableDebug() {
	if l == nil {
		return
	}

	l.logger.SetLevel(log.DebugLevel)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}

	l.logger.Debugf(format, args...)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}

	l.logger.Infof(format, args...)
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}

	l.logger.Warnf(format, args...)
}

// Errorf logs a formatted error.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}

	l.logger.Errorf(format, args...)
}
