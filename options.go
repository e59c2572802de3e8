package caseflow

import (
	"time"

	"github.com/kart-io/caseflow/config"
	"github.com/kart-io/caseflow/core/cases"
	"github.com/kart-io/caseflow/directory"
	"github.com/kart-io/caseflow/logger"
	"github.com/kart-io/caseflow/numbering"
	"github.com/kart-io/caseflow/observability"
	"github.com/kart-io/caseflow/sla"
	"github.com/kart-io/caseflow/triage"
)

// Option configures the engine at construction time
type Option func(*engineOptions)

type engineOptions struct {
	logger          logger.Interface
	telemetry       *observability.TelemetryProvider
	telemetryConfig *config.TelemetryConfig
	sequence        numbering.Sequence
	typeRules       []triage.TypeRule
	priorityRules   []triage.PriorityRule
	roleTable       map[cases.Type]map[string]string
	calendar        *sla.Calendar
	directory       *directory.Resolver
	now             func() time.Time
}

func defaultOptions() *engineOptions {
	return &engineOptions{
		logger: logger.Default,
		now:    time.Now,
	}
}

// WithLogger sets the logger the engine reports decisions through
func WithLogger(l logger.Interface) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithLogLevel keeps the default logger but changes its level
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *engineOptions) {
		o.logger = o.logger.LogMode(level)
	}
}

// WithTelemetry sets a pre-built telemetry provider
func WithTelemetry(tp *observability.TelemetryProvider) Option {
	return func(o *engineOptions) {
		o.telemetry = tp
	}
}

// WithTelemetryConfig builds a telemetry provider from configuration
func WithTelemetryConfig(cfg *config.TelemetryConfig) Option {
	return func(o *engineOptions) {
		o.telemetryConfig = cfg
	}
}

// WithSequence sets the case number allocation authority. Use
// numbering.RedisSequence when several writers allocate concurrently.
func WithSequence(seq numbering.Sequence) Option {
	return func(o *engineOptions) {
		o.sequence = seq
	}
}

// WithTypeRules replaces the built-in type keyword table
func WithTypeRules(rules []triage.TypeRule) Option {
	return func(o *engineOptions) {
		o.typeRules = rules
	}
}

// WithPriorityRules replaces the built-in priority keyword table
func WithPriorityRules(rules []triage.PriorityRule) Option {
	return func(o *engineOptions) {
		o.priorityRules = rules
	}
}

// WithFallbackTable replaces the static routing fallback table
func WithFallbackTable(table map[cases.Type]map[string]string) Option {
	return func(o *engineOptions) {
		o.roleTable = table
	}
}

// WithDefaultCalendar sets installation-wide business-hours defaults.
// Business-hours policies that leave their start, end or working-day set
// unset inherit them during due-date computation.
func WithDefaultCalendar(cal sla.Calendar) Option {
	return func(o *engineOptions) {
		o.calendar = &cal
	}
}

// WithDirectory sets the user-directory resolver backing the
// directory-driven assignment helpers
func WithDirectory(r *directory.Resolver) Option {
	return func(o *engineOptions) {
		o.directory = r
	}
}

// WithClock injects the time source, letting tests pin the engine to a
// fixed instant
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) {
		o.now = now
	}
}
