package sla

import (
	"errors"
	"testing"
	"time"

	caseerrors "github.com/kart-io/caseflow/core/errors"
)

func TestDecodePolicyDefaults(t *testing.T) {
	policy, err := DecodePolicy(RawPolicy{
		Name:            "standard",
		ResolutionHours: 24,
	})
	if err != nil {
		t.Fatalf("DecodePolicy() error = %v", err)
	}

	if policy.BusinessHoursStart != "09:00" {
		t.Errorf("BusinessHoursStart = %q, want 09:00", policy.BusinessHoursStart)
	}
	if policy.BusinessHoursEnd != "18:00" {
		t.Errorf("BusinessHoursEnd = %q, want 18:00", policy.BusinessHoursEnd)
	}
	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		if !policy.BusinessDays[day] {
			t.Errorf("expected %v to be a default business day", day)
		}
	}
	if policy.BusinessDays[time.Saturday] || policy.BusinessDays[time.Sunday] {
		t.Error("weekend must not be in the default business days")
	}
}

func TestDecodePolicySerializedFields(t *testing.T) {
	policy, err := DecodePolicy(RawPolicy{
		Name:             "critical incidents",
		ResolutionHours:  8,
		ResponseHours:    1,
		BusinessDaysJSON: "[1,2,3,4,5,6]",
		EscalationJSON:   `[{"level":1,"hoursBeforeDue":24,"notifyRoles":["team_lead"]},{"level":2,"hoursBeforeDue":4,"notifyRoles":["manager"],"action":"page"}]`,
	})
	if err != nil {
		t.Fatalf("DecodePolicy() error = %v", err)
	}

	if !policy.BusinessDays[time.Saturday] {
		t.Error("expected Saturday to be decoded as a business day")
	}
	if len(policy.EscalationRules) != 2 {
		t.Fatalf("decoded %d escalation rules, want 2", len(policy.EscalationRules))
	}
	if policy.EscalationRules[1].Action != "page" {
		t.Errorf("rule action = %q, want page", policy.EscalationRules[1].Action)
	}
}

func TestDecodePolicyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawPolicy
		wantErr error
	}{
		{
			name:    "missing name",
			raw:     RawPolicy{ResolutionHours: 24},
			wantErr: nil, // any error is fine, field-specific
		},
		{
			name:    "zero resolution hours",
			raw:     RawPolicy{Name: "p", ResolutionHours: 0},
			wantErr: nil,
		},
		{
			name:    "zero business days with business hours",
			raw:     RawPolicy{Name: "p", ResolutionHours: 8, BusinessHoursOnly: true, BusinessDaysJSON: "[]"},
			wantErr: caseerrors.ErrNoBusinessDays,
		},
		{
			name:    "inverted business window",
			raw:     RawPolicy{Name: "p", ResolutionHours: 8, BusinessHoursOnly: true, BusinessHoursStart: "18:00", BusinessHoursEnd: "09:00"},
			wantErr: caseerrors.ErrInvalidCalendar,
		},
		{
			name:    "malformed escalation json",
			raw:     RawPolicy{Name: "p", ResolutionHours: 8, EscalationJSON: "{"},
			wantErr: caseerrors.ErrInvalidEscalation,
		},
		{
			name:    "non-positive escalation level",
			raw:     RawPolicy{Name: "p", ResolutionHours: 8, EscalationJSON: `[{"level":0,"hoursBeforeDue":4}]`},
			wantErr: nil,
		},
		{
			name:    "weekday out of range",
			raw:     RawPolicy{Name: "p", ResolutionHours: 8, BusinessDaysJSON: "[7]"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePolicy(tt.raw)
			if err == nil {
				t.Fatal("DecodePolicy() expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodePolicy() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalendarApplyFillsUnsetFields(t *testing.T) {
	cal := Calendar{
		Start: "08:00",
		End:   "20:00",
		Days:  map[time.Weekday]bool{time.Monday: true, time.Wednesday: true},
	}

	policy := &Policy{Name: "bare", ResolutionHours: 8, BusinessHoursOnly: true}
	got := cal.Apply(policy)

	if got == policy {
		t.Fatal("Apply() must return a copy when it fills fields")
	}
	if got.BusinessHoursStart != "08:00" || got.BusinessHoursEnd != "20:00" {
		t.Errorf("window = %s-%s, want 08:00-20:00", got.BusinessHoursStart, got.BusinessHoursEnd)
	}
	if !got.BusinessDays[time.Wednesday] || got.BusinessDays[time.Friday] {
		t.Error("business days must come from the calendar")
	}
	if policy.BusinessHoursStart != "" {
		t.Error("Apply() must not mutate the original policy")
	}
}

func TestCalendarApplyKeepsPolicySettings(t *testing.T) {
	cal := DefaultCalendar()

	policy := &Policy{
		Name:               "weekend desk",
		ResolutionHours:    4,
		BusinessHoursOnly:  true,
		BusinessHoursStart: "10:00",
		BusinessHoursEnd:   "16:00",
		BusinessDays:       map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
	}
	if got := cal.Apply(policy); got != policy {
		t.Error("Apply() must pass a fully specified policy through unchanged")
	}
}

func TestCalendarApplyIgnoresCalendarTimePolicies(t *testing.T) {
	cal := DefaultCalendar()

	policy := &Policy{Name: "24x7", ResolutionHours: 48}
	if got := cal.Apply(policy); got != policy {
		t.Error("Apply() must not touch calendar-time policies")
	}
	if got := cal.Apply(nil); got != nil {
		t.Error("Apply(nil) must return nil")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"18:30", 1110, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got, err := parseClock(tt.clock)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClock(%q) error = %v, wantErr %v", tt.clock, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseClock(%q) = %d, want %d", tt.clock, got, tt.want)
			}
		})
	}
}
