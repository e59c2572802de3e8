// Package sla selects SLA policies, converts their hour budgets into
// absolute due timestamps under an optional business-hours calendar, and
// tracks breach and escalation state for open cases.
package sla

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kart-io/caseflow/core/errors"
)

// Wildcard marks a policy filter that applies to every value
const Wildcard = "all"

// Calendar defaults applied when a policy leaves them unset
const (
	DefaultBusinessStart = "09:00"
	DefaultBusinessEnd   = "18:00"
)

// EscalationRule defines one escalation threshold: when remaining time
// before the resolution due date drops to HoursBeforeDue, the case moves to
// Level and the listed roles are notified.
type EscalationRule struct {
	Level          int      `json:"level"`
	HoursBeforeDue float64  `json:"hoursBeforeDue"`
	NotifyRoles    []string `json:"notifyRoles,omitempty"`
	Action         string   `json:"action,omitempty"`
}

// Policy is a named bundle of response/resolution budgets with an optional
// business-hours calendar and escalation thresholds
type Policy struct {
	Name               string                `json:"name"`
	AppliesToType      string                `json:"applies_to_type,omitempty"`
	AppliesToPriority  string                `json:"applies_to_priority,omitempty"`
	ResponseHours      float64               `json:"response_hours,omitempty"`
	ResolutionHours    float64               `json:"resolution_hours"`
	BusinessHoursOnly  bool                  `json:"business_hours_only"`
	BusinessHoursStart string                `json:"business_hours_start,omitempty"`
	BusinessHoursEnd   string                `json:"business_hours_end,omitempty"`
	BusinessDays       map[time.Weekday]bool `json:"business_days,omitempty"`
	EscalationRules    []EscalationRule      `json:"escalation_rules,omitempty"`
}

// typeIsWildcard reports whether the type filter matches every case type
func (p *Policy) typeIsWildcard() bool {
	return p.AppliesToType == "" || p.AppliesToType == Wildcard
}

// priorityIsWildcard reports whether the priority filter matches every priority
func (p *Policy) priorityIsWildcard() bool {
	return p.AppliesToPriority == "" || p.AppliesToPriority == Wildcard
}

// RawPolicy is the storage representation of a policy, carrying calendar
// and escalation configuration as serialized blobs
type RawPolicy struct {
	Name               string  `json:"name"`
	AppliesToType      string  `json:"applies_to_type,omitempty"`
	AppliesToPriority  string  `json:"applies_to_priority,omitempty"`
	ResponseHours      float64 `json:"response_hours,omitempty"`
	ResolutionHours    float64 `json:"resolution_hours"`
	BusinessHoursOnly  bool    `json:"business_hours_only"`
	BusinessHoursStart string  `json:"business_hours_start,omitempty"`
	BusinessHoursEnd   string  `json:"business_hours_end,omitempty"`
	BusinessDaysJSON   string  `json:"business_days_json,omitempty"`
	EscalationJSON     string  `json:"escalation_json,omitempty"`
}

// DecodePolicy validates a stored policy and decodes its serialized fields
// into the structured form the engine consumes. Missing calendar fields get
// documented defaults (09:00-18:00, Monday through Friday). A
// business-hours policy whose decoded calendar has no business days is
// rejected: the due-date walk could never terminate on it.
func DecodePolicy(raw RawPolicy) (*Policy, error) {
	if raw.Name == "" {
		return nil, errors.NewWithField(errors.CodeInvalidPolicy, errors.CategorySLA, "policy name is required", "name")
	}
	if raw.ResolutionHours <= 0 {
		return nil, errors.NewWithField(errors.CodeInvalidPolicy, errors.CategorySLA, "resolution hours must be positive", "resolutionHours")
	}

	policy := &Policy{
		Name:               raw.Name,
		AppliesToType:      raw.AppliesToType,
		AppliesToPriority:  raw.AppliesToPriority,
		ResponseHours:      raw.ResponseHours,
		ResolutionHours:    raw.ResolutionHours,
		BusinessHoursOnly:  raw.BusinessHoursOnly,
		BusinessHoursStart: raw.BusinessHoursStart,
		BusinessHoursEnd:   raw.BusinessHoursEnd,
	}

	if policy.BusinessHoursStart == "" {
		policy.BusinessHoursStart = DefaultBusinessStart
	}
	if policy.BusinessHoursEnd == "" {
		policy.BusinessHoursEnd = DefaultBusinessEnd
	}

	days, err := decodeBusinessDays(raw.BusinessDaysJSON)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidCalendar, errors.CategoryConfig, "business days could not be decoded", err)
	}
	policy.BusinessDays = days

	if raw.EscalationJSON != "" {
		var rules []EscalationRule
		if err := json.Unmarshal([]byte(raw.EscalationJSON), &rules); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidEscalation, errors.CategorySLA, "escalation rules could not be decoded", err)
		}
		for _, rule := range rules {
			if rule.Level <= 0 {
				return nil, errors.NewWithField(errors.CodeInvalidEscalation, errors.CategorySLA, "escalation level must be positive", "level")
			}
		}
		policy.EscalationRules = rules
	}

	if policy.BusinessHoursOnly {
		if len(policy.BusinessDays) == 0 {
			return nil, errors.ErrNoBusinessDays
		}
		startMin, err := parseClock(policy.BusinessHoursStart)
		if err != nil {
			return nil, err
		}
		endMin, err := parseClock(policy.BusinessHoursEnd)
		if err != nil {
			return nil, err
		}
		if startMin >= endMin {
			return nil, errors.ErrInvalidCalendar
		}
	}

	return policy, nil
}

// DefaultBusinessDays returns the Monday-Friday working week
func DefaultBusinessDays() map[time.Weekday]bool {
	return map[time.Weekday]bool{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
	}
}

// Calendar carries business-hours settings applied to policies that leave
// their own calendar fields unset. It lets an installation define one
// working week instead of repeating it on every policy.
type Calendar struct {
	Start string
	End   string
	Days  map[time.Weekday]bool
}

// DefaultCalendar returns the documented defaults: 09:00-18:00, Monday
// through Friday
func DefaultCalendar() Calendar {
	return Calendar{
		Start: DefaultBusinessStart,
		End:   DefaultBusinessEnd,
		Days:  DefaultBusinessDays(),
	}
}

// Apply fills the unset calendar fields of a business-hours policy from the
// calendar. The policy is not mutated; a filled copy is returned when any
// field was missing. Calendar-time policies pass through untouched.
func (cal Calendar) Apply(p *Policy) *Policy {
	if p == nil || !p.BusinessHoursOnly {
		return p
	}
	if p.BusinessHoursStart != "" && p.BusinessHoursEnd != "" && len(p.BusinessDays) > 0 {
		return p
	}

	filled := *p
	if filled.BusinessHoursStart == "" {
		filled.BusinessHoursStart = cal.Start
	}
	if filled.BusinessHoursEnd == "" {
		filled.BusinessHoursEnd = cal.End
	}
	if len(filled.BusinessDays) == 0 {
		filled.BusinessDays = cal.Days
	}
	return &filled
}

// decodeBusinessDays decodes the stored weekday list (integers 0-6, Sunday
// is 0). Empty input yields the Monday-Friday default.
func decodeBusinessDays(raw string) (map[time.Weekday]bool, error) {
	if raw == "" {
		return DefaultBusinessDays(), nil
	}

	var nums []int
	if err := json.Unmarshal([]byte(raw), &nums); err != nil {
		return nil, err
	}

	days := make(map[time.Weekday]bool, len(nums))
	for _, n := range nums {
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("weekday %d out of range", n)
		}
		days[time.Weekday(n)] = true
	}
	return days, nil
}

// parseClock converts an HH:MM string to minutes past midnight
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, errors.NewWithField(errors.CodeInvalidCalendar, errors.CategoryConfig, "clock value must be HH:MM", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, errors.NewWithField(errors.CodeInvalidCalendar, errors.CategoryConfig, "clock hours out of range", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, errors.NewWithField(errors.CodeInvalidCalendar, errors.CategoryConfig, "clock minutes out of range", clock)
	}
	return hours*60 + minutes, nil
}
