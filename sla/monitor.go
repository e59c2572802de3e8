package sla

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kart-io/caseflow/core/cases"
)

// BreachType distinguishes which due date was missed
type BreachType string

const (
	BreachNone       BreachType = ""
	BreachResponse   BreachType = "response"
	BreachResolution BreachType = "resolution"
)

// BreachResult reports whether a case has passed one of its due dates
type BreachResult struct {
	IsBreached   bool       `json:"is_breached"`
	HoursOverdue float64    `json:"hours_overdue"`
	BreachType   BreachType `json:"breach_type"`
}

// CheckBreach compares the current time against the case's computed due
// dates. Terminal-status cases never breach. While the case is still open a
// missed response due date takes precedence; once the status advances past
// open only the resolution due date applies. A case is never reported as
// both.
func CheckBreach(c *cases.Case, now time.Time) BreachResult {
	if c.Status.IsTerminal() {
		return BreachResult{}
	}

	if c.Status == cases.StatusOpen && c.ResponseDueAt != nil && now.After(*c.ResponseDueAt) {
		return BreachResult{
			IsBreached:   true,
			HoursOverdue: now.Sub(*c.ResponseDueAt).Hours(),
			BreachType:   BreachResponse,
		}
	}

	if c.DueAt != nil && now.After(*c.DueAt) {
		return BreachResult{
			IsBreached:   true,
			HoursOverdue: now.Sub(*c.DueAt).Hours(),
			BreachType:   BreachResolution,
		}
	}

	return BreachResult{}
}

// EscalationCheck reports the escalation level a case should move to
type EscalationCheck struct {
	Level          int      `json:"level"`
	ShouldEscalate bool     `json:"should_escalate"`
	NotifyRoles    []string `json:"notify_roles,omitempty"`
	Action         string   `json:"action,omitempty"`
}

// EscalationLevel computes the escalation level for a case under a policy.
// Rules are scanned by descending level; the first rule whose level exceeds
// the case's current level and whose remaining-time threshold has been
// crossed wins. The engine only proposes levels strictly greater than the
// one it was given, so the level is monotonic as long as the caller
// persists it between checks. Terminal cases and cases without a due date
// or escalation rules never escalate.
func EscalationLevel(c *cases.Case, policy *Policy, now time.Time) EscalationCheck {
	current := EscalationCheck{Level: c.EscalationLevel}

	if c.Status.IsTerminal() {
		return current
	}
	if policy == nil || len(policy.EscalationRules) == 0 || c.DueAt == nil {
		return current
	}

	hoursUntilDue := c.DueAt.Sub(now).Hours()

	rules := make([]EscalationRule, len(policy.EscalationRules))
	copy(rules, policy.EscalationRules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Level > rules[j].Level
	})

	for _, rule := range rules {
		if rule.Level <= c.EscalationLevel {
			continue
		}
		if hoursUntilDue <= rule.HoursBeforeDue {
			return EscalationCheck{
				Level:          rule.Level,
				ShouldEscalate: true,
				NotifyRoles:    rule.NotifyRoles,
				Action:         rule.Action,
			}
		}
	}

	return current
}

// FormatTimeRemaining renders the signed time until the due date in a
// human-readable form, with a distinct overdue phrasing when the due date
// has passed
func FormatTimeRemaining(dueAt, now time.Time) string {
	remaining := dueAt.Sub(now)
	overdue := remaining < 0
	if overdue {
		remaining = -remaining
	}

	var quantity string
	switch {
	case remaining < time.Hour:
		quantity = fmt.Sprintf("%dm", int(math.Round(remaining.Minutes())))
	case remaining < 24*time.Hour:
		quantity = fmt.Sprintf("%dh", int(math.Round(remaining.Hours())))
	default:
		quantity = fmt.Sprintf("%dd", int(math.Round(remaining.Hours()/24)))
	}

	if overdue {
		return fmt.Sprintf("overdue by %s", quantity)
	}
	return fmt.Sprintf("%s remaining", quantity)
}
