package sla

import (
	"github.com/kart-io/caseflow/core/cases"
)

// FindPolicy selects the most specific applicable policy for a type and
// priority pair. Specificity tiers, most specific first: exact type and
// priority, exact type with wildcard priority, wildcard type with exact
// priority, then the full-wildcard default policy. Ties within a tier
// resolve to input order. Returns nil when nothing applies; the case then
// proceeds without SLA tracking.
func FindPolicy(caseType cases.Type, priority cases.Priority, policies []*Policy) *Policy {
	type tier func(p *Policy) bool

	typeMatches := func(p *Policy) bool { return p.AppliesToType == string(caseType) }
	priorityMatches := func(p *Policy) bool { return p.AppliesToPriority == string(priority) }

	tiers := []tier{
		func(p *Policy) bool { return typeMatches(p) && priorityMatches(p) },
		func(p *Policy) bool { return typeMatches(p) && p.priorityIsWildcard() },
		func(p *Policy) bool { return p.typeIsWildcard() && priorityMatches(p) },
		func(p *Policy) bool { return p.typeIsWildcard() && p.priorityIsWildcard() },
	}

	for _, matches := range tiers {
		for _, p := range policies {
			if p != nil && matches(p) {
				return p
			}
		}
	}
	return nil
}
