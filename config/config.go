// Package config holds the engine's construction-time configuration
package config

import (
	"github.com/kart-io/caseflow/core/errors"
)

// TelemetryConfig configures the OpenTelemetry provider
type TelemetryConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	OTLPHeaders    map[string]string
	TracingEnabled bool
	SampleRate     float64
	MetricsEnabled bool
	Enabled        bool
}

// DefaultTelemetryConfig returns telemetry defaults with export disabled
func DefaultTelemetryConfig() *TelemetryConfig {
	return &TelemetryConfig{
		ServiceName:    "caseflow",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		OTLPEndpoint:   "http://localhost:4318",
		TracingEnabled: true,
		MetricsEnabled: true,
		SampleRate:     1.0,
		Enabled:        false,
	}
}

// Validate checks the telemetry configuration
func (c *TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.ServiceName == "" {
		return errors.NewWithField(errors.CodeInvalidConfig, errors.CategoryConfig, "service name is required", "ServiceName")
	}
	if c.OTLPEndpoint == "" {
		return errors.NewWithField(errors.CodeInvalidConfig, errors.CategoryConfig, "OTLP endpoint is required", "OTLPEndpoint")
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return errors.NewWithField(errors.CodeInvalidConfig, errors.CategoryConfig, "sample rate must be between 0 and 1", "SampleRate")
	}
	return nil
}
