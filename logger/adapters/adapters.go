// Package adapters provides logger adapters for integrating external logging
// libraries with the case engine
package adapters

import (
	"context"
	"time"

	"github.com/kart-io/caseflow/logger"
)

// AdapterBase provides common functionality for logger adapters
type AdapterBase struct {
	level logger.LogLevel
}

// NewAdapterBase creates a new adapter base
func NewAdapterBase(level logger.LogLevel) *AdapterBase {
	return &AdapterBase{level: level}
}

// ShouldLog checks if the message should be logged at the given level
func (a *AdapterBase) ShouldLog(level logger.LogLevel) bool {
	return a.level >= level
}

// GetLevel returns the current log level
func (a *AdapterBase) GetLevel() logger.LogLevel {
	return a.level
}

// SetLevel sets the log level
func (a *AdapterBase) SetLevel(level logger.LogLevel) {
	a.level = level
}

// CustomLogger defines a minimal interface for custom logger implementations
type CustomLogger interface {
	Log(level logger.LogLevel, msg string, fields map[string]interface{})
}

// CustomAdapter adapts any custom logger that implements CustomLogger
type CustomAdapter struct {
	*AdapterBase
	logger CustomLogger
}

// NewCustomAdapter creates a new custom adapter
func NewCustomAdapter(customLogger CustomLogger, level logger.LogLevel) logger.Interface {
	return &CustomAdapter{
		AdapterBase: NewAdapterBase(level),
		logger:      customLogger,
	}
}

func (c *CustomAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return &CustomAdapter{
		AdapterBase: NewAdapterBase(level),
		logger:      c.logger,
	}
}

func (c *CustomAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	if c.ShouldLog(logger.Info) {
		c.logger.Log(logger.Info, msg, c.parseFields(data...))
	}
}

func (c *CustomAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	if c.ShouldLog(logger.Warn) {
		c.logger.Log(logger.Warn, msg, c.parseFields(data...))
	}
}

func (c *CustomAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	if c.ShouldLog(logger.Error) {
		c.logger.Log(logger.Error, msg, c.parseFields(data...))
	}
}

func (c *CustomAdapter) Debug(ctx context.Context, msg string, data ...interface{}) {
	if c.ShouldLog(logger.Debug) {
		c.logger.Log(logger.Debug, msg, c.parseFields(data...))
	}
}

func (c *CustomAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if c.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	operation, cases := fc()

	fields := map[string]interface{}{
		"operation":   operation,
		"duration_ms": float64(elapsed.Nanoseconds()) / 1e6,
		"cases":       cases,
	}

	if err != nil {
		fields["error"] = err.Error()
		if c.ShouldLog(logger.Error) {
			c.logger.Log(logger.Error, "Computation failed", fields)
		}
	} else {
		if c.ShouldLog(logger.Info) {
			c.logger.Log(logger.Info, "Computation completed", fields)
		}
	}
}

// parseFields converts variadic key-value arguments to a map
func (c *CustomAdapter) parseFields(data ...interface{}) map[string]interface{} {
	fields := make(map[string]interface{})

	for i := 0; i < len(data)-1; i += 2 {
		if key, ok := data[i].(string); ok && i+1 < len(data) {
			fields[key] = data[i+1]
		}
	}

	return fields
}

// LogFunc defines a function signature for simple logging functions
type LogFunc func(level string, msg string, keyvals ...interface{})

// FuncAdapter adapts a plain function to the engine logger interface
type FuncAdapter struct {
	*AdapterBase
	logFunc LogFunc
}

// NewFuncAdapter creates a new function adapter
func NewFuncAdapter(logFunc LogFunc, level logger.LogLevel) logger.Interface {
	return &FuncAdapter{
		AdapterBase: NewAdapterBase(level),
		logFunc:     logFunc,
	}
}

func (f *FuncAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return &FuncAdapter{
		AdapterBase: NewAdapterBase(level),
		logFunc:     f.logFunc,
	}
}

func (f *FuncAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	if f.ShouldLog(logger.Info) {
		f.logFunc("info", msg, data...)
	}
}

func (f *FuncAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	if f.ShouldLog(logger.Warn) {
		f.logFunc("warn", msg, data...)
	}
}

func (f *FuncAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	if f.ShouldLog(logger.Error) {
		f.logFunc("error", msg, data...)
	}
}

func (f *FuncAdapter) Debug(ctx context.Context, msg string, data ...interface{}) {
	if f.ShouldLog(logger.Debug) {
		f.logFunc("debug", msg, data...)
	}
}

func (f *FuncAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if f.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	operation, cases := fc()

	if err != nil && f.ShouldLog(logger.Error) {
		f.logFunc("error", "Computation failed",
			"operation", operation,
			"duration_ms", float64(elapsed.Nanoseconds())/1e6,
			"cases", cases,
			"error", err.Error())
	} else if f.ShouldLog(logger.Info) {
		f.logFunc("info", "Computation completed",
			"operation", operation,
			"duration_ms", float64(elapsed.Nanoseconds())/1e6,
			"cases", cases)
	}
}
