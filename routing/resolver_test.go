package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kart-io/caseflow/core/cases"
)

func newCase(t cases.Type, priority cases.Priority, sourceType string) *cases.Case {
	c := cases.New()
	c.Type = t
	c.Priority = priority
	c.SourceType = sourceType
	return c
}

func TestResolveFallbackTable(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name     string
		c        *cases.Case
		wantRole string
	}{
		{name: "sync incident", c: newCase(cases.TypeIncident, cases.PriorityHigh, "sync"), wantRole: "data_ops"},
		{name: "dq incident", c: newCase(cases.TypeIncident, cases.PriorityHigh, "dq"), wantRole: "data_ops"},
		{name: "email incident", c: newCase(cases.TypeIncident, cases.PriorityHigh, "email"), wantRole: "support"},
		{name: "any change", c: newCase(cases.TypeChange, cases.PriorityMedium, "portal"), wantRole: "compliance"},
		{name: "any problem", c: newCase(cases.TypeProblem, cases.PriorityMedium, "whatever"), wantRole: "engineering"},
		{name: "billing request", c: newCase(cases.TypeRequest, cases.PriorityMedium, "billing"), wantRole: "finance"},
		{name: "portal request", c: newCase(cases.TypeRequest, cases.PriorityMedium, "portal"), wantRole: "rm"},
		{name: "unknown request source", c: newCase(cases.TypeRequest, cases.PriorityMedium, "api"), wantRole: "operations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.c, nil)
			assert.Equal(t, TargetRole, got.TargetType)
			assert.Equal(t, tt.wantRole, got.TargetID)
			assert.Empty(t, got.MatchedRule)
			assert.Equal(t, fallbackConfidence, got.Confidence)
		})
	}
}

func TestResolveCustomRules(t *testing.T) {
	r := NewResolver()
	c := newCase(cases.TypeIncident, cases.PriorityCritical, "sync")
	c.Tags = []string{"vip", "reporting"}

	rules := []Rule{
		{
			Name:     "critical incidents to sre team",
			Active:   true,
			Priority: 10,
			Conditions: []Condition{
				{Field: FieldCaseType, Operator: OperatorEquals, Value: "incident"},
				{Field: FieldPriority, Operator: OperatorIn, Value: []string{"high", "critical"}},
			},
			Target: Target{Type: TargetTeam, ID: "sre", Name: "SRE"},
		},
		{
			Name:     "vip cases to senior rm",
			Active:   true,
			Priority: 5,
			Conditions: []Condition{
				{Field: FieldTags, Operator: OperatorContains, Value: "vip"},
			},
			Target: Target{Type: TargetUser, ID: "u-42", Name: "Senior RM"},
		},
	}

	got := r.Resolve(c, rules)
	assert.Equal(t, TargetTeam, got.TargetType)
	assert.Equal(t, "sre", got.TargetID)
	assert.Equal(t, "critical incidents to sre team", got.MatchedRule)
	assert.Equal(t, ruleConfidence, got.Confidence)
}

func TestResolveHigherPriorityRuleWins(t *testing.T) {
	r := NewResolver()
	c := newCase(cases.TypeRequest, cases.PriorityMedium, "portal")

	rules := []Rule{
		{
			Name:       "low priority catch-all",
			Active:     true,
			Priority:   1,
			Conditions: []Condition{{Field: FieldSourceType, Operator: OperatorEquals, Value: "portal"}},
			Target:     Target{Type: TargetRole, ID: "rm", Name: "RM"},
		},
		{
			Name:       "portal override",
			Active:     true,
			Priority:   20,
			Conditions: []Condition{{Field: FieldSourceType, Operator: OperatorEquals, Value: "portal"}},
			Target:     Target{Type: TargetTeam, ID: "portal-desk", Name: "Portal Desk"},
		},
	}

	got := r.Resolve(c, rules)
	assert.Equal(t, "portal override", got.MatchedRule)
}

func TestResolveInactiveRulesIgnored(t *testing.T) {
	r := NewResolver()
	c := newCase(cases.TypeRequest, cases.PriorityMedium, "portal")

	rules := []Rule{
		{
			Name:       "disabled rule",
			Active:     false,
			Priority:   100,
			Conditions: []Condition{{Field: FieldSourceType, Operator: OperatorEquals, Value: "portal"}},
			Target:     Target{Type: TargetTeam, ID: "nowhere", Name: "Nowhere"},
		},
	}

	got := r.Resolve(c, rules)
	assert.Empty(t, got.MatchedRule)
	assert.Equal(t, "rm", got.TargetID)
}

func TestResolveConditionsAreANDed(t *testing.T) {
	r := NewResolver()
	c := newCase(cases.TypeIncident, cases.PriorityLow, "sync")

	rules := []Rule{
		{
			Name:     "needs both",
			Active:   true,
			Priority: 1,
			Conditions: []Condition{
				{Field: FieldCaseType, Operator: OperatorEquals, Value: "incident"},
				{Field: FieldPriority, Operator: OperatorEquals, Value: "critical"},
			},
			Target: Target{Type: TargetTeam, ID: "sre", Name: "SRE"},
		},
	}

	got := r.Resolve(c, rules)
	assert.Empty(t, got.MatchedRule, "rule with one failing condition must not match")
	assert.Equal(t, "data_ops", got.TargetID)
}

func TestEvaluateCondition(t *testing.T) {
	c := newCase(cases.TypeIncident, cases.PriorityHigh, "billing-portal")
	c.ScopeType = "portfolio"
	c.Tags = []string{"vip", "reporting"}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"equals match", Condition{Field: FieldCaseType, Operator: OperatorEquals, Value: "incident"}, true},
		{"equals mismatch", Condition{Field: FieldCaseType, Operator: OperatorEquals, Value: "request"}, false},
		{"in with []interface{} from JSON", Condition{Field: FieldPriority, Operator: OperatorIn, Value: []interface{}{"high", "critical"}}, true},
		{"in mismatch", Condition{Field: FieldPriority, Operator: OperatorIn, Value: []string{"low"}}, false},
		{"contains on string is substring", Condition{Field: FieldSourceType, Operator: OperatorContains, Value: "billing"}, true},
		{"contains on tags is membership", Condition{Field: FieldTags, Operator: OperatorContains, Value: "vip"}, true},
		{"in on tags against list", Condition{Field: FieldTags, Operator: OperatorIn, Value: []string{"reporting", "other"}}, true},
		{"tags miss", Condition{Field: FieldTags, Operator: OperatorContains, Value: "absent"}, false},
		{"scope type equals", Condition{Field: FieldScopeType, Operator: OperatorEquals, Value: "portfolio"}, true},
		{"unknown field never matches", Condition{Field: "nope", Operator: OperatorEquals, Value: "x"}, false},
		{"unknown operator never matches", Condition{Field: FieldCaseType, Operator: "regex", Value: "incident"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluateCondition(c, tt.cond))
		})
	}
}
