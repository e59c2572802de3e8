// Package triage performs heuristic first-pass classification of incoming
// cases: suggested type, priority and owning role, with a confidence score
// and a reasoning trail. Classification is best-effort and never fails.
package triage

import (
	"fmt"
	"strings"

	"github.com/kart-io/caseflow/core/cases"
)

// Input carries the raw signals available at intake. It is ephemeral and
// never persisted.
type Input struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	SourceType   string `json:"source_type,omitempty"`
	SourceID     string `json:"source_id,omitempty"`
	ReporterType string `json:"reporter_type,omitempty"`
}

// Result is the classifier's best-effort suggestion
type Result struct {
	SuggestedType     cases.Type     `json:"suggested_type"`
	SuggestedPriority cases.Priority `json:"suggested_priority"`
	SuggestedRole     string         `json:"suggested_role"`
	Confidence        float64        `json:"confidence"`
	Reasoning         []string       `json:"reasoning"`
}

// Confidence bounds and the fixed deltas applied as successive signals match
const (
	baseConfidence = 0.6
	maxConfidence  = 0.95
)

var confidenceDeltas = []float64{0.20, 0.15, 0.10}

// Classifier suggests case attributes from free text and the source signal.
// The keyword tables are data-driven so deployments can extend or localize
// them without code changes; rule order encodes match precedence.
type Classifier struct {
	typeRules     []TypeRule
	priorityRules []PriorityRule
}

// NewClassifier creates a classifier with the built-in keyword tables
func NewClassifier() *Classifier {
	return &Classifier{
		typeRules:     DefaultTypeRules(),
		priorityRules: DefaultPriorityRules(),
	}
}

// NewClassifierWithRules creates a classifier with custom keyword tables.
// Nil tables fall back to the defaults.
func NewClassifierWithRules(typeRules []TypeRule, priorityRules []PriorityRule) *Classifier {
	if typeRules == nil {
		typeRules = DefaultTypeRules()
	}
	if priorityRules == nil {
		priorityRules = DefaultPriorityRules()
	}
	return &Classifier{
		typeRules:     typeRules,
		priorityRules: priorityRules,
	}
}

// Classify suggests a type, priority and routing role for the input.
// It always returns a result; the default chain terminates at
// request/medium/operations.
func (c *Classifier) Classify(input Input) Result {
	text := strings.ToLower(strings.TrimSpace(input.Title + " " + input.Description))
	source := strings.ToLower(input.SourceType)

	result := Result{
		SuggestedType:     cases.TypeRequest,
		SuggestedPriority: cases.PriorityMedium,
		Confidence:        baseConfidence,
		Reasoning:         make([]string, 0, 4),
	}
	signals := 0

	// Type classification, first match wins
	switch {
	case incidentSources[source]:
		result.SuggestedType = cases.TypeIncident
		result.Reasoning = append(result.Reasoning, fmt.Sprintf("source %q indicates a data incident", source))
		signals = c.bump(&result, signals)
	default:
		if rule, ok := matchTypeRule(c.typeRules, text); ok {
			result.SuggestedType = rule.Type
			result.Reasoning = append(result.Reasoning, fmt.Sprintf("text matches %s keyword %q", rule.Type, rule.Pattern))
			signals = c.bumpWeighted(&result, signals, rule.Weight)
		} else {
			result.Reasoning = append(result.Reasoning, "no type keywords matched, defaulting to request")
		}
	}

	// Priority classification, independent precedence chain
	if rule, ok := matchPriorityRule(c.priorityRules, text); ok {
		result.SuggestedPriority = rule.Priority
		result.Reasoning = append(result.Reasoning, fmt.Sprintf("text matches %s-priority keyword %q", rule.Priority, rule.Pattern))
		signals = c.bumpWeighted(&result, signals, rule.Weight)
	} else if result.SuggestedType == cases.TypeIncident && source == "sync" {
		result.SuggestedPriority = cases.PriorityHigh
		result.Reasoning = append(result.Reasoning, "sync incidents default to high priority")
		signals = c.bump(&result, signals)
	} else if result.SuggestedType == cases.TypeRequest && source == "portal" {
		result.SuggestedPriority = cases.PriorityMedium
		result.Reasoning = append(result.Reasoning, "portal requests default to medium priority")
		signals = c.bump(&result, signals)
	} else {
		result.Reasoning = append(result.Reasoning, "no priority signals, defaulting to medium")
	}

	// Routing-role suggestion, keyed by type first, then by source for requests
	result.SuggestedRole = suggestRole(result.SuggestedType, source)
	result.Reasoning = append(result.Reasoning, fmt.Sprintf("suggested owner role %q for %s cases from source %q", result.SuggestedRole, result.SuggestedType, source))

	return result
}

// bump raises confidence by the next fixed delta for a matched signal
func (c *Classifier) bump(result *Result, signals int) int {
	return c.bumpWeighted(result, signals, 0)
}

// bumpWeighted raises confidence by the rule's weight when set, otherwise by
// the next fixed delta. Confidence is capped at maxConfidence.
func (c *Classifier) bumpWeighted(result *Result, signals int, weight float64) int {
	delta := weight
	if delta == 0 && signals < len(confidenceDeltas) {
		delta = confidenceDeltas[signals]
	}
	result.Confidence += delta
	if result.Confidence > maxConfidence {
		result.Confidence = maxConfidence
	}
	return signals + 1
}

func matchTypeRule(rules []TypeRule, text string) (TypeRule, bool) {
	for _, rule := range rules {
		if rule.Pattern != "" && strings.Contains(text, rule.Pattern) {
			return rule, true
		}
	}
	return TypeRule{}, false
}

func matchPriorityRule(rules []PriorityRule, text string) (PriorityRule, bool) {
	for _, rule := range rules {
		if rule.Pattern != "" && strings.Contains(text, rule.Pattern) {
			return rule, true
		}
	}
	return PriorityRule{}, false
}

// suggestRole maps the suggested type and source signal to an owning role
func suggestRole(t cases.Type, source string) string {
	switch t {
	case cases.TypeIncident:
		if incidentSources[source] {
			return "data_ops"
		}
		return "support"
	case cases.TypeChange:
		return "compliance"
	case cases.TypeProblem:
		return "engineering"
	default:
		if role, ok := roleBySource[source]; ok {
			return role
		}
		return "operations"
	}
}
