// Package routing decides case ownership: operator-defined rules are
// consulted first, then a static fallback table that always terminates at
// the operations role.
package routing

import (
	"sort"
	"strings"

	"github.com/kart-io/caseflow/core/cases"
)

// Confidence levels reported with routing decisions
const (
	ruleConfidence     = 0.9
	fallbackConfidence = 0.7
)

// fallbackRole is the last resort of the static table
const fallbackRole = "operations"

// defaultRoleTable is the static two-level fallback: case type, then source
// type, with a per-type default entry.
var defaultRoleTable = map[cases.Type]map[string]string{
	cases.TypeIncident: {
		"sync":    "data_ops",
		"dq":      "data_ops",
		"default": "support",
	},
	cases.TypeChange: {
		"default": "compliance",
	},
	cases.TypeProblem: {
		"default": "engineering",
	},
	cases.TypeRequest: {
		"billing": "finance",
		"portal":  "rm",
		"default": fallbackRole,
	},
}

// Resolver determines the team, user or role that should own a case
type Resolver struct {
	roleTable map[cases.Type]map[string]string
}

// NewResolver creates a resolver with the built-in fallback table
func NewResolver() *Resolver {
	return &Resolver{roleTable: defaultRoleTable}
}

// NewResolverWithTable creates a resolver with a custom fallback table.
// A nil table falls back to the default.
func NewResolverWithTable(table map[cases.Type]map[string]string) *Resolver {
	if table == nil {
		table = defaultRoleTable
	}
	return &Resolver{roleTable: table}
}

// Resolve routes a case. Custom rules are filtered to active rules whose
// conditions all hold, sorted by descending priority; the top match wins.
// Without a rule match the static table applies. Resolve always produces a
// target.
func (r *Resolver) Resolve(c *cases.Case, rules []Rule) Decision {
	if match, ok := r.matchRules(c, rules); ok {
		return Decision{
			TargetType:  match.Target.Type,
			TargetID:    match.Target.ID,
			TargetName:  match.Target.Name,
			MatchedRule: match.Name,
			Confidence:  ruleConfidence,
		}
	}

	role := r.fallbackRole(c)
	return Decision{
		TargetType: TargetRole,
		TargetID:   role,
		TargetName: role,
		Confidence: fallbackConfidence,
	}
}

// matchRules returns the highest-priority active rule whose conditions all
// evaluate true against the case
func (r *Resolver) matchRules(c *cases.Case, rules []Rule) (Rule, bool) {
	var matches []Rule
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		if r.ruleMatches(c, rule) {
			matches = append(matches, rule)
		}
	}
	if len(matches) == 0 {
		return Rule{}, false
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority > matches[j].Priority
	})
	return matches[0], true
}

func (r *Resolver) ruleMatches(c *cases.Case, rule Rule) bool {
	for _, cond := range rule.Conditions {
		if !evaluateCondition(c, cond) {
			return false
		}
	}
	return true
}

// evaluateCondition applies a single condition to the case. Unknown fields
// or operators never match.
func evaluateCondition(c *cases.Case, cond Condition) bool {
	switch cond.Field {
	case FieldTags:
		return evaluateListField(c.Tags, cond)
	case FieldCaseType:
		return evaluateStringField(string(c.Type), cond)
	case FieldPriority:
		return evaluateStringField(string(c.Priority), cond)
	case FieldSourceType:
		return evaluateStringField(c.SourceType, cond)
	case FieldScopeType:
		return evaluateStringField(c.ScopeType, cond)
	default:
		return false
	}
}

func evaluateStringField(value string, cond Condition) bool {
	switch cond.Operator {
	case OperatorEquals:
		expected, ok := cond.Value.(string)
		return ok && value == expected
	case OperatorIn:
		return valueInList(value, cond.Value)
	case OperatorContains:
		expected, ok := cond.Value.(string)
		return ok && strings.Contains(value, expected)
	default:
		return false
	}
}

// evaluateListField handles conditions against the tags field: contains
// means any element equals the condition value (or is contained in a
// condition list), in means any element is a member of the condition list.
func evaluateListField(values []string, cond Condition) bool {
	switch cond.Operator {
	case OperatorContains, OperatorIn:
		for _, v := range values {
			if expected, ok := cond.Value.(string); ok && v == expected {
				return true
			}
			if valueInList(v, cond.Value) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// valueInList reports whether value occurs in the condition's list value.
// JSON decoding yields []interface{}, callers building rules in Go tend to
// use []string; both are supported.
func valueInList(value string, listValue interface{}) bool {
	switch list := listValue.(type) {
	case []string:
		for _, item := range list {
			if item == value {
				return true
			}
		}
	case []interface{}:
		for _, item := range list {
			if s, ok := item.(string); ok && s == value {
				return true
			}
		}
	}
	return false
}

// fallbackRole walks the static table: the case type's source entry, the
// type's default entry, the request table, then the operations role.
func (r *Resolver) fallbackRole(c *cases.Case) string {
	if table, ok := r.roleTable[c.Type]; ok {
		if role, ok := table[c.SourceType]; ok {
			return role
		}
		if role, ok := table["default"]; ok {
			return role
		}
	}
	if table, ok := r.roleTable[cases.TypeRequest]; ok {
		if role, ok := table[c.SourceType]; ok {
			return role
		}
		if role, ok := table["default"]; ok {
			return role
		}
	}
	return fallbackRole
}
