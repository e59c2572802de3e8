package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kart-io/caseflow/core/cases"
)

func TestClassifyTypePrecedence(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		input Input
		want  cases.Type
	}{
		{
			name:  "dq source wins over text",
			input: Input{Title: "please update the mapping", SourceType: "dq"},
			want:  cases.TypeIncident,
		},
		{
			name:  "sync source classifies as incident",
			input: Input{Title: "anything at all", SourceType: "sync"},
			want:  cases.TypeIncident,
		},
		{
			name:  "incident keyword",
			input: Input{Title: "Export fails with error 500", SourceType: "email"},
			want:  cases.TypeIncident,
		},
		{
			name:  "russian incident keyword",
			input: Input{Title: "Сбой в выгрузке отчетов", SourceType: "portal"},
			want:  cases.TypeIncident,
		},
		{
			name:  "incident keyword wins over change keyword",
			input: Input{Title: "update job is down", SourceType: "email"},
			want:  cases.TypeIncident,
		},
		{
			name:  "change keyword",
			input: Input{Title: "Please update beneficiary details", SourceType: "portal"},
			want:  cases.TypeChange,
		},
		{
			name:  "problem keyword",
			input: Input{Title: "Investigate recurring reconciliation gap", SourceType: "internal"},
			want:  cases.TypeProblem,
		},
		{
			name:  "default is request",
			input: Input{Title: "Quarterly statement copy", SourceType: "portal"},
			want:  cases.TypeRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			assert.Equal(t, tt.want, got.SuggestedType)
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		input Input
		want  cases.Priority
	}{
		{
			name:  "critical keyword beats high keyword",
			input: Input{Title: "urgent: blocked payments", SourceType: "email"},
			want:  cases.PriorityCritical,
		},
		{
			name:  "high keyword",
			input: Input{Title: "workflow is blocked for the team", SourceType: "email"},
			want:  cases.PriorityHigh,
		},
		{
			name:  "sync incident defaults to high",
			input: Input{Title: "nightly feed", SourceType: "sync"},
			want:  cases.PriorityHigh,
		},
		{
			name:  "portal request defaults to medium",
			input: Input{Title: "statement copy", SourceType: "portal"},
			want:  cases.PriorityMedium,
		},
		{
			name:  "fallback is medium",
			input: Input{Title: "misc note", SourceType: "api"},
			want:  cases.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			assert.Equal(t, tt.want, got.SuggestedPriority)
		})
	}
}

func TestClassifyRoleSuggestion(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{name: "sync incident routes to data_ops", input: Input{Title: "feed error", SourceType: "sync"}, want: "data_ops"},
		{name: "dq incident routes to data_ops", input: Input{Title: "dq alert", SourceType: "dq"}, want: "data_ops"},
		{name: "other incident routes to support", input: Input{Title: "portal error", SourceType: "email"}, want: "support"},
		{name: "change routes to compliance", input: Input{Title: "update address", SourceType: "email"}, want: "compliance"},
		{name: "problem routes to engineering", input: Input{Title: "investigate slowness", SourceType: "email"}, want: "engineering"},
		{name: "billing request routes to finance", input: Input{Title: "invoice copy", SourceType: "billing"}, want: "finance"},
		{name: "portal request routes to rm", input: Input{Title: "statement copy", SourceType: "portal"}, want: "rm"},
		{name: "request fallback is operations", input: Input{Title: "misc", SourceType: "api"}, want: "operations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			assert.Equal(t, tt.want, got.SuggestedRole)
		})
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := NewClassifier()

	inputs := []Input{
		{},
		{Title: "urgent error in production down сбой critical", SourceType: "sync"},
		{Title: "statement copy", SourceType: "portal"},
		{Title: "Сбой срочно", SourceType: "dq"},
	}

	for _, input := range inputs {
		got := c.Classify(input)
		assert.GreaterOrEqual(t, got.Confidence, 0.6, "input %+v", input)
		assert.LessOrEqual(t, got.Confidence, 0.95, "input %+v", input)
		assert.NotEmpty(t, got.Reasoning)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	c := NewClassifier()
	input := Input{Title: "Export fails nightly", Description: "blocked since Monday", SourceType: "email"}

	first := c.Classify(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(input))
	}
}

func TestClassifyConfidenceDeltas(t *testing.T) {
	c := NewClassifier()

	// No signals: baseline only
	none := c.Classify(Input{Title: "quarterly statement", SourceType: "api"})
	assert.InDelta(t, 0.6, none.Confidence, 1e-9)

	// One signal (type keyword), default priority
	one := c.Classify(Input{Title: "export error", SourceType: "email"})
	assert.InDelta(t, 0.8, one.Confidence, 1e-9)

	// Two signals: source incident + structural priority
	two := c.Classify(Input{Title: "nightly feed", SourceType: "sync"})
	assert.InDelta(t, 0.95, two.Confidence, 1e-9)
}

func TestClassifyCustomRules(t *testing.T) {
	typeRules := []TypeRule{
		{Pattern: "breach", Type: cases.TypeIncident, Weight: 0.3},
	}
	c := NewClassifierWithRules(typeRules, nil)

	got := c.Classify(Input{Title: "possible data breach", SourceType: "email"})
	assert.Equal(t, cases.TypeIncident, got.SuggestedType)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)

	// Default table no longer applies
	fallback := c.Classify(Input{Title: "export error", SourceType: "email"})
	assert.Equal(t, cases.TypeRequest, fallback.SuggestedType)
}
