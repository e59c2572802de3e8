package triage

import (
	"github.com/kart-io/caseflow/core/cases"
)

// TypeRule maps a text pattern to a suggested case type. Rules are evaluated
// in order and the first match wins, so table order encodes precedence.
type TypeRule struct {
	Pattern string     `json:"pattern" yaml:"pattern"`
	Type    cases.Type `json:"type" yaml:"type"`
	Weight  float64    `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// PriorityRule maps a text pattern to a suggested priority
type PriorityRule struct {
	Pattern  string         `json:"pattern" yaml:"pattern"`
	Priority cases.Priority `json:"priority" yaml:"priority"`
	Weight   float64        `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// DefaultTypeRules returns the built-in bilingual keyword table. Incident
// patterns come first, then change, then problem; request is the fallback
// and needs no rule.
func DefaultTypeRules() []TypeRule {
	return []TypeRule{
		// incident signals
		{Pattern: "error", Type: cases.TypeIncident},
		{Pattern: "fail", Type: cases.TypeIncident},
		{Pattern: "down", Type: cases.TypeIncident},
		{Pattern: "broken", Type: cases.TypeIncident},
		{Pattern: "outage", Type: cases.TypeIncident},
		{Pattern: "crash", Type: cases.TypeIncident},
		{Pattern: "сбой", Type: cases.TypeIncident},
		{Pattern: "ошибка", Type: cases.TypeIncident},
		{Pattern: "не работает", Type: cases.TypeIncident},

		// change signals
		{Pattern: "change", Type: cases.TypeChange},
		{Pattern: "update", Type: cases.TypeChange},
		{Pattern: "modify", Type: cases.TypeChange},
		{Pattern: "upgrade", Type: cases.TypeChange},
		{Pattern: "изменить", Type: cases.TypeChange},
		{Pattern: "обновить", Type: cases.TypeChange},

		// problem / investigation signals
		{Pattern: "investigate", Type: cases.TypeProblem},
		{Pattern: "recurring", Type: cases.TypeProblem},
		{Pattern: "root cause", Type: cases.TypeProblem},
		{Pattern: "keeps happening", Type: cases.TypeProblem},
		{Pattern: "расследовать", Type: cases.TypeProblem},
		{Pattern: "повторяется", Type: cases.TypeProblem},
	}
}

// DefaultPriorityRules returns the built-in priority keyword table.
// Critical patterns come first so they take precedence over high.
func DefaultPriorityRules() []PriorityRule {
	return []PriorityRule{
		{Pattern: "critical", Priority: cases.PriorityCritical},
		{Pattern: "urgent", Priority: cases.PriorityCritical},
		{Pattern: "asap", Priority: cases.PriorityCritical},
		{Pattern: "production down", Priority: cases.PriorityCritical},
		{Pattern: "срочно", Priority: cases.PriorityCritical},
		{Pattern: "критич", Priority: cases.PriorityCritical},

		{Pattern: "important", Priority: cases.PriorityHigh},
		{Pattern: "blocked", Priority: cases.PriorityHigh},
		{Pattern: "cannot work", Priority: cases.PriorityHigh},
		{Pattern: "важно", Priority: cases.PriorityHigh},
		{Pattern: "заблокирован", Priority: cases.PriorityHigh},
	}
}

// incidentSources are source signals that imply a data incident
var incidentSources = map[string]bool{
	"dq":   true,
	"sync": true,
}

// roleBySource maps request source types to routing roles
var roleBySource = map[string]string{
	"billing": "finance",
	"portal":  "rm",
}
