package logger

import (
	"context"
	"fmt"
	"time"
)

// LogLevel defines log levels
type LogLevel int

const (
	// Silent disables all logging
	Silent LogLevel = iota + 1
	// Error logs only errors
	Error
	// Warn logs warnings and errors
	Warn
	// Info logs info, warnings and errors
	Info
	// Debug logs all messages
	Debug
)

// String returns the string representation of log level
func (l LogLevel) String() string {
	switch l {
	case Silent:
		return "silent"
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	default:
		return "unknown"
	}
}

// Interface defines the logger interface that the case engine uses.
// This follows GORM's logger interface design pattern.
type Interface interface {
	// LogMode sets the log level and returns a new logger instance
	LogMode(level LogLevel) Interface

	// Info logs info messages
	Info(ctx context.Context, msg string, data ...interface{})

	// Warn logs warning messages
	Warn(ctx context.Context, msg string, data ...interface{})

	// Error logs error messages
	Error(ctx context.Context, msg string, data ...interface{})

	// Debug logs debug messages
	Debug(ctx context.Context, msg string, data ...interface{})

	// Trace logs lifecycle computations with duration (like GORM's SQL trace);
	// fc reports the operation name and the number of cases it touched
	Trace(ctx context.Context, begin time.Time, fc func() (operation string, cases int64), err error)
}

// Writer defines the interface for log output
type Writer interface {
	Printf(string, ...interface{})
}

// Config defines logger configuration
type Config struct {
	SlowThreshold time.Duration // Slow computation threshold
	LogLevel      LogLevel      // Log level
	Colorful      bool          // Enable color output
}

// Colors for console output
const (
	Reset       = "\033[0m"
	Red         = "\033[31m"
	Green       = "\033[32m"
	Yellow      = "\033[33m"
	Blue        = "\033[34m"
	Magenta     = "\033[35m"
	Cyan        = "\033[36m"
	White       = "\033[37m"
	BlueBold    = "\033[34;1m"
	MagentaBold = "\033[35;1m"
	RedBold     = "\033[31;1m"
	YellowBold  = "\033[33;1m"
)

// Predefined loggers (like GORM's Default and Discard)
var (
	// Discard discards all log messages
	Discard Interface = New(discardWriter{}, Config{LogLevel: Silent})

	// Default provides a default logger with standard output
	Default Interface = New(consoleWriter{}, Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      Warn,
		Colorful:      true,
	})
)

// discardWriter discards all output
type discardWriter struct{}

func (discardWriter) Printf(string, ...interface{}) {}

// consoleWriter writes to console
type consoleWriter struct{}

func (consoleWriter) Printf(msg string, data ...interface{}) {
	fmt.Printf(msg, data...)
}
