package cases

import (
	"testing"
)

func TestNewDefaults(t *testing.T) {
	c := New()

	if c.ID == "" {
		t.Error("expected a generated ID")
	}
	if c.Type != TypeRequest {
		t.Errorf("Type = %v, want request", c.Type)
	}
	if c.Priority != PriorityMedium {
		t.Errorf("Priority = %v, want medium", c.Priority)
	}
	if c.Status != StatusOpen {
		t.Errorf("Status = %v, want open", c.Status)
	}
	if c.EscalationLevel != 0 {
		t.Errorf("EscalationLevel = %d, want 0", c.EscalationLevel)
	}
	if c.SLABreached {
		t.Error("new case must not be breached")
	}
}

func TestStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusOpen, false},
		{StatusInProgress, false},
		{StatusAwaitingClient, false},
		{StatusResolved, true},
		{StatusClosed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	c := New()
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() on a fresh case = %v", err)
	}

	c.Type = "weird"
	if err := c.Validate(); err == nil {
		t.Error("expected an error for an unknown type")
	}

	c = New()
	c.Priority = "urgent"
	if err := c.Validate(); err == nil {
		t.Error("expected an error for an unknown priority")
	}

	c = New()
	c.Status = "parked"
	if err := c.Validate(); err == nil {
		t.Error("expected an error for an unknown status")
	}

	c = New()
	c.EscalationLevel = -1
	if err := c.Validate(); err == nil {
		t.Error("expected an error for a negative escalation level")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	c.AddTag("vip")

	clone := c.Clone()
	clone.AddTag("reporting")

	if len(c.Tags) != 1 {
		t.Errorf("original tags = %v, want only vip", c.Tags)
	}
	if !clone.HasTag("vip") || !clone.HasTag("reporting") {
		t.Errorf("clone tags = %v", clone.Tags)
	}
}

func TestDecodeTags(t *testing.T) {
	tags, err := DecodeTags(`["vip","reporting"]`)
	if err != nil {
		t.Fatalf("DecodeTags() error = %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("decoded %d tags, want 2", len(tags))
	}

	tags, err = DecodeTags("")
	if err != nil {
		t.Fatalf("DecodeTags(\"\") error = %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("decoded %d tags from empty input, want 0", len(tags))
	}

	if _, err := DecodeTags("{"); err == nil {
		t.Error("expected an error for malformed input")
	}
}
