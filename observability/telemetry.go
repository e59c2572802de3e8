// Package observability instruments the engine's lifecycle computations
// with OpenTelemetry traces and metrics
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kart-io/caseflow/config"
)

// TelemetryProvider provides observability features
type TelemetryProvider struct {
	config        *config.TelemetryConfig
	tracer        trace.Tracer
	meter         metric.Meter
	traceProvider *sdktrace.TracerProvider

	// Metrics
	casesTriaged      metric.Int64Counter
	casesRouted       metric.Int64Counter
	breachesDetected  metric.Int64Counter
	escalationsRaised metric.Int64Counter
	computeDuration   metric.Float64Histogram
}

// NewTelemetryProvider creates a new telemetry provider
func NewTelemetryProvider(cfg *config.TelemetryConfig) (*TelemetryProvider, error) {
	if cfg == nil {
		cfg = config.DefaultTelemetryConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp := &TelemetryProvider{
		config: cfg,
	}

	if !cfg.Enabled {
		// Return no-op provider
		tp.tracer = otel.Tracer("caseflow")
		tp.meter = otel.Meter("caseflow")
		return tp, nil
	}

	if cfg.TracingEnabled {
		if err := tp.initTracing(); err != nil {
			return nil, fmt.Errorf("init tracing: %v", err)
		}
	}

	if cfg.MetricsEnabled {
		if err := tp.initMetrics(); err != nil {
			return nil, fmt.Errorf("init metrics: %v", err)
		}
	}

	return tp, nil
}

// initTracing initializes OpenTelemetry tracing
func (tp *TelemetryProvider) initTracing() error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(tp.config.ServiceName),
			semconv.ServiceVersion(tp.config.ServiceVersion),
			semconv.DeploymentEnvironment(tp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("create resource: %v", err)
	}

	exporter, err := otlptrace.New(context.Background(),
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(tp.config.OTLPEndpoint),
			otlptracehttp.WithHeaders(tp.config.OTLPHeaders),
		),
	)
	if err != nil {
		return fmt.Errorf("create exporter: %v", err)
	}

	tp.traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(tp.config.SampleRate)),
	)

	otel.SetTracerProvider(tp.traceProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	tp.tracer = otel.Tracer("caseflow",
		trace.WithInstrumentationVersion("1.0.0"),
		trace.WithSchemaURL(semconv.SchemaURL),
	)

	return nil
}

// initMetrics initializes OpenTelemetry metrics
func (tp *TelemetryProvider) initMetrics() error {
	tp.meter = otel.Meter("caseflow",
		metric.WithInstrumentationVersion("1.0.0"),
		metric.WithSchemaURL(semconv.SchemaURL),
	)

	var err error

	tp.casesTriaged, err = tp.meter.Int64Counter(
		"caseflow_cases_triaged_total",
		metric.WithDescription("Total number of cases classified by triage"),
	)
	if err != nil {
		return fmt.Errorf("create cases_triaged counter: %v", err)
	}

	tp.casesRouted, err = tp.meter.Int64Counter(
		"caseflow_cases_routed_total",
		metric.WithDescription("Total number of routing decisions"),
	)
	if err != nil {
		return fmt.Errorf("create cases_routed counter: %v", err)
	}

	tp.breachesDetected, err = tp.meter.Int64Counter(
		"caseflow_breaches_detected_total",
		metric.WithDescription("Total number of SLA breaches detected"),
	)
	if err != nil {
		return fmt.Errorf("create breaches_detected counter: %v", err)
	}

	tp.escalationsRaised, err = tp.meter.Int64Counter(
		"caseflow_escalations_raised_total",
		metric.WithDescription("Total number of escalation level increases proposed"),
	)
	if err != nil {
		return fmt.Errorf("create escalations_raised counter: %v", err)
	}

	tp.computeDuration, err = tp.meter.Float64Histogram(
		"caseflow_compute_duration_seconds",
		metric.WithDescription("Duration of lifecycle computations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("create compute_duration histogram: %v", err)
	}

	return nil
}

// TraceOperation creates a new span for an engine operation
func (tp *TelemetryProvider) TraceOperation(ctx context.Context, operationName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	if tp.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	return tp.tracer.Start(ctx, operationName,
		trace.WithAttributes(attributes...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// RecordTriage records a completed triage classification
func (tp *TelemetryProvider) RecordTriage(ctx context.Context, suggestedType string, confidence float64, duration time.Duration) {
	if tp.casesTriaged != nil {
		tp.casesTriaged.Add(ctx, 1, metric.WithAttributes(
			attribute.String("suggested_type", suggestedType),
		))
	}
	tp.recordDuration(ctx, "triage", duration)
}

// RecordRouting records a routing decision
func (tp *TelemetryProvider) RecordRouting(ctx context.Context, targetType string, matchedRule bool, duration time.Duration) {
	if tp.casesRouted != nil {
		tp.casesRouted.Add(ctx, 1, metric.WithAttributes(
			attribute.String("target_type", targetType),
			attribute.Bool("matched_rule", matchedRule),
		))
	}
	tp.recordDuration(ctx, "route", duration)
}

// RecordBreach records a detected SLA breach
func (tp *TelemetryProvider) RecordBreach(ctx context.Context, breachType string) {
	if tp.breachesDetected != nil {
		tp.breachesDetected.Add(ctx, 1, metric.WithAttributes(
			attribute.String("breach_type", breachType),
		))
	}
}

// RecordEscalation records a proposed escalation level increase
func (tp *TelemetryProvider) RecordEscalation(ctx context.Context, level int) {
	if tp.escalationsRaised != nil {
		tp.escalationsRaised.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("level", level),
		))
	}
}

func (tp *TelemetryProvider) recordDuration(ctx context.Context, operation string, duration time.Duration) {
	if tp.computeDuration != nil {
		tp.computeDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("operation", operation),
		))
	}
}

// SetSpanError sets an error on the current span
func (tp *TelemetryProvider) SetSpanError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks the span as successful
func (tp *TelemetryProvider) SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// Shutdown gracefully shuts down the telemetry provider
func (tp *TelemetryProvider) Shutdown(ctx context.Context) error {
	if tp.traceProvider != nil {
		return tp.traceProvider.Shutdown(ctx)
	}
	return nil
}

// GetTracer returns the tracer instance
func (tp *TelemetryProvider) GetTracer() trace.Tracer {
	return tp.tracer
}

// GetMeter returns the meter instance
func (tp *TelemetryProvider) GetMeter() metric.Meter {
	return tp.meter
}
