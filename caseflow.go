// Package caseflow implements the case lifecycle rule engine: deterministic
// triage classification, case number allocation, routing-rule resolution,
// SLA policy matching, business-calendar due-date computation, and breach
// and escalation tracking.
//
// The engine is a library boundary only: every operation is a pure function
// of the case, policy and rule snapshots it is given plus the clock, and it
// returns plain result records for the caller to persist.
//
// Basic usage:
//
//	engine, err := caseflow.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := engine.Process(context.Background(), caseflow.IntakeRequest{
//		Title:      "Export fails with error 500",
//		SourceType: "portal",
//		Policies:   policies,
//	})
//
// Periodic sweep:
//
//	breach := engine.CheckBreach(ctx, c)
//	escalation := engine.CheckEscalation(ctx, c, policy)
package caseflow

import (
	"context"
	"time"

	"github.com/kart-io/caseflow/core/cases"
	"github.com/kart-io/caseflow/directory"
	"github.com/kart-io/caseflow/logger"
	"github.com/kart-io/caseflow/numbering"
	"github.com/kart-io/caseflow/observability"
	"github.com/kart-io/caseflow/routing"
	"github.com/kart-io/caseflow/sla"
	"github.com/kart-io/caseflow/triage"
)

// Core type aliases so callers can work with a single import

type (
	// Case is a governed unit of work
	Case = cases.Case

	// Policy is an SLA policy with calendar and escalation configuration
	Policy = sla.Policy

	// Calendar is an installation-wide business-hours default set
	Calendar = sla.Calendar

	// RoutingRule is an operator-defined routing rule
	RoutingRule = routing.Rule

	// RoutingDecision is the outcome of routing a case
	RoutingDecision = routing.Decision

	// TriageInput carries the raw intake signals
	TriageInput = triage.Input

	// TriageResult is the classifier's suggestion
	TriageResult = triage.Result

	// User is a directory entry considered for assignment
	User = routing.User
)

// Engine evaluates case lifecycle rules. It owns no storage and no
// timers; callers invoke it synchronously with consistent snapshots and
// persist what it returns.
type Engine struct {
	classifier *triage.Classifier
	resolver   *routing.Resolver
	sequence   numbering.Sequence
	calendar   *sla.Calendar
	directory  *directory.Resolver
	logger     logger.Interface
	telemetry  *observability.TelemetryProvider
	now        func() time.Time
}

// New creates an engine with the given options
func New(opts ...Option) (*Engine, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	telemetry := cfg.telemetry
	if telemetry == nil {
		var err error
		telemetry, err = observability.NewTelemetryProvider(cfg.telemetryConfig)
		if err != nil {
			return nil, err
		}
	}

	dir := cfg.directory
	if dir == nil {
		dir = directory.NewResolver()
	}

	return &Engine{
		classifier: triage.NewClassifierWithRules(cfg.typeRules, cfg.priorityRules),
		resolver:   routing.NewResolverWithTable(cfg.roleTable),
		sequence:   cfg.sequence,
		calendar:   cfg.calendar,
		directory:  dir,
		logger:     cfg.logger,
		telemetry:  telemetry,
		now:        cfg.now,
	}, nil
}

// NextNumber derives the next case number for a year from the set of
// already-issued numbers. Pure; see AllocateNumber for the serialized
// authority.
func (e *Engine) NextNumber(year int, existing []string) string {
	return numbering.NextNumber(year, existing)
}

// AllocateNumber issues a case number through the configured sequence
// authority. Without one it falls back to deriving from the supplied set,
// which is only race-free for a single writer.
func (e *Engine) AllocateNumber(ctx context.Context, year int, existing []string) (string, error) {
	if year == 0 {
		year = e.now().Year()
	}
	if e.sequence == nil {
		return numbering.NextNumber(year, existing), nil
	}

	seq, err := e.sequence.Next(ctx, year)
	if err != nil {
		e.logger.Error(ctx, "sequence allocation failed", "year", year, "error", err)
		return "", err
	}
	return numbering.Format(year, seq), nil
}

// Triage classifies the intake signals into a suggested type, priority and
// owning role. Never fails.
func (e *Engine) Triage(ctx context.Context, input TriageInput) TriageResult {
	begin := time.Now()
	result := e.classifier.Classify(input)

	e.telemetry.RecordTriage(ctx, string(result.SuggestedType), result.Confidence, time.Since(begin))
	e.logger.Debug(ctx, "triage classified case",
		"type", result.SuggestedType,
		"priority", result.SuggestedPriority,
		"role", result.SuggestedRole,
		"confidence", result.Confidence)

	return result
}

// SuggestTemplates scores candidate intake templates against the input
func (e *Engine) SuggestTemplates(input TriageInput, templates []triage.Template) []triage.TemplateScore {
	return e.classifier.SuggestTemplates(input, templates)
}

// Route decides ownership for a case, consulting operator rules before the
// static fallback table. Always produces a target.
func (e *Engine) Route(ctx context.Context, c *Case, rules []RoutingRule) RoutingDecision {
	begin := time.Now()
	decision := e.resolver.Resolve(c, rules)

	e.telemetry.RecordRouting(ctx, string(decision.TargetType), decision.MatchedRule != "", time.Since(begin))
	e.logger.Debug(ctx, "routing decided",
		"target", decision.TargetID,
		"rule", decision.MatchedRule,
		"confidence", decision.Confidence)

	return decision
}

// AvailableAssignees filters the directory to active users holding the role
func (e *Engine) AvailableAssignees(role string, users []User) []User {
	return routing.AvailableAssignees(role, users)
}

// AutoAssign picks the least-loaded active user with the role
func (e *Engine) AutoAssign(role string, users []User) (User, bool) {
	return routing.AutoAssign(role, users)
}

// SuggestReassignment proposes up to five skill-matched alternative
// assignees
func (e *Engine) SuggestReassignment(currentAssigneeID string, caseType cases.Type, priority cases.Priority, users []User) []routing.Suggestion {
	return routing.SuggestReassignment(currentAssigneeID, caseType, priority, users)
}

// RegisterDirectoryProvider adds a named provider to the engine's user
// directory
func (e *Engine) RegisterDirectoryProvider(name string, provider directory.Provider) {
	e.directory.RegisterProvider(name, provider)
}

// ResolveAssignees expands directory expressions of the form
// provider:expression into candidate users, deduplicated by ID
func (e *Engine) ResolveAssignees(ctx context.Context, expressions []string) ([]User, error) {
	users, err := e.directory.ResolveUsers(ctx, expressions)
	if err != nil {
		e.logger.Error(ctx, "directory resolution failed", "error", err)
		return nil, err
	}
	return users, nil
}

// AssignFromDirectory resolves the expressions and picks the least-loaded
// active user holding the role. ok is false when no resolved user
// qualifies.
func (e *Engine) AssignFromDirectory(ctx context.Context, role string, expressions []string) (User, bool, error) {
	users, err := e.ResolveAssignees(ctx, expressions)
	if err != nil {
		return User{}, false, err
	}
	assignee, ok := routing.AutoAssign(role, users)
	return assignee, ok, nil
}

// MatchPolicy selects the most specific applicable policy, or nil when the
// case proceeds without SLA tracking
func (e *Engine) MatchPolicy(caseType cases.Type, priority cases.Priority, policies []*Policy) *Policy {
	return sla.FindPolicy(caseType, priority, policies)
}

// ComputeDueDates converts the policy's budgets into absolute timestamps.
// When the engine carries a default calendar, business-hours policies with
// unset calendar fields inherit it first.
func (e *Engine) ComputeDueDates(createdAt time.Time, policy *Policy) (sla.DueDates, error) {
	if e.calendar != nil {
		policy = e.calendar.Apply(policy)
	}
	return sla.ComputeDueDates(createdAt, policy)
}

// CheckBreach compares the clock against the case's due dates
func (e *Engine) CheckBreach(ctx context.Context, c *Case) sla.BreachResult {
	result := sla.CheckBreach(c, e.now())
	if result.IsBreached {
		e.telemetry.RecordBreach(ctx, string(result.BreachType))
		e.logger.Info(ctx, "SLA breach detected",
			"case", c.Number,
			"breach_type", result.BreachType,
			"hours_overdue", result.HoursOverdue)
	}
	return result
}

// CheckEscalation computes the escalation level the case should move to.
// The caller must persist the returned level before the next check.
func (e *Engine) CheckEscalation(ctx context.Context, c *Case, policy *Policy) sla.EscalationCheck {
	result := sla.EscalationLevel(c, policy, e.now())
	if result.ShouldEscalate {
		e.telemetry.RecordEscalation(ctx, result.Level)
		e.logger.Info(ctx, "escalation level raised",
			"case", c.Number,
			"level", result.Level,
			"notify_roles", result.NotifyRoles)
	}
	return result
}

// FormatTimeRemaining renders the signed time until a due date
func (e *Engine) FormatTimeRemaining(dueAt time.Time) string {
	return sla.FormatTimeRemaining(dueAt, e.now())
}

// IntakeRequest carries everything the creation pipeline needs: the raw
// intake signals plus snapshots of the collaborating data sets
type IntakeRequest struct {
	Title           string
	Description     string
	SourceType      string
	SourceID        string
	ExistingNumbers []string
	RoutingRules    []RoutingRule
	Policies        []*Policy
}

// IntakeResult is the outcome of the creation pipeline. The caller
// persists the case and records the reasoning trail on its timeline.
type IntakeResult struct {
	Case     *Case
	Triage   TriageResult
	Routing  RoutingDecision
	Policy   *Policy
	DueDates sla.DueDates
}

// Process runs the creation-time pipeline: number allocation, triage,
// routing, policy matching and due-date computation. Cases without a
// matching policy carry no due dates.
func (e *Engine) Process(ctx context.Context, req IntakeRequest) (*IntakeResult, error) {
	// The configured clock stamps the case; elapsed time is measured against
	// the wall clock so a pinned clock cannot skew the trace.
	wall := time.Now()
	begin := e.now()

	number, err := e.AllocateNumber(ctx, 0, req.ExistingNumbers)
	if err != nil {
		return nil, err
	}

	triageResult := e.Triage(ctx, TriageInput{
		Title:       req.Title,
		Description: req.Description,
		SourceType:  req.SourceType,
		SourceID:    req.SourceID,
	})

	c := cases.New()
	c.CreatedAt = begin
	c.UpdatedAt = begin
	c.Number = number
	c.Title = req.Title
	c.Description = req.Description
	c.SourceType = req.SourceType
	c.SourceID = req.SourceID
	c.Type = triageResult.SuggestedType
	c.Priority = triageResult.SuggestedPriority

	decision := e.Route(ctx, c, req.RoutingRules)
	if decision.TargetType == routing.TargetRole {
		c.AssignedRole = decision.TargetID
	}

	result := &IntakeResult{
		Case:    c,
		Triage:  triageResult,
		Routing: decision,
	}

	policy := e.MatchPolicy(c.Type, c.Priority, req.Policies)
	if policy != nil {
		dueDates, err := e.ComputeDueDates(c.CreatedAt, policy)
		if err != nil {
			e.logger.Error(ctx, "due date computation failed", "case", number, "policy", policy.Name, "error", err)
			return nil, err
		}
		c.SLAPolicyName = policy.Name
		c.ResponseDueAt = dueDates.ResponseDueAt
		due := dueDates.DueAt
		c.DueAt = &due
		result.Policy = policy
		result.DueDates = dueDates
	}

	e.logger.Trace(ctx, wall, func() (string, int64) {
		return "process intake " + number, 1
	}, nil)

	return result, nil
}
