package cases

import (
	"encoding/json"
	"time"

	"github.com/kart-io/caseflow/internal"
)

// Type represents the classified kind of a case
type Type string

const (
	TypeRequest  Type = "request"
	TypeIncident Type = "incident"
	TypeChange   Type = "change"
	TypeProblem  Type = "problem"
)

// Priority represents the urgency of a case
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Status represents the lifecycle state of a case
type Status string

const (
	StatusOpen           Status = "open"
	StatusInProgress     Status = "in_progress"
	StatusAwaitingClient Status = "awaiting_client"
	StatusResolved       Status = "resolved"
	StatusClosed         Status = "closed"
)

// IsTerminal reports whether the status ends SLA tracking
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Case represents a governed unit of work flowing through the engine.
// Due dates, the breach flag and the escalation level are computed by the
// engine and persisted back by the caller.
type Case struct {
	ID              string     `json:"id"`
	Number          string     `json:"number"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Type            Type       `json:"type"`
	Priority        Priority   `json:"priority"`
	Status          Status     `json:"status"`
	SourceType      string     `json:"source_type,omitempty"`
	SourceID        string     `json:"source_id,omitempty"`
	ScopeType       string     `json:"scope_type,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	SLAPolicyName   string     `json:"sla_policy_name,omitempty"`
	ResponseDueAt   *time.Time `json:"response_due_at,omitempty"`
	DueAt           *time.Time `json:"due_at,omitempty"`
	SLABreached     bool       `json:"sla_breached"`
	EscalationLevel int        `json:"escalation_level"`
	AssigneeID      string     `json:"assignee_id,omitempty"`
	AssignedRole    string     `json:"assigned_role,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// New creates a new case with default values
func New() *Case {
	now := time.Now()
	return &Case{
		ID:        internal.GenerateID(),
		Type:      TypeRequest,
		Priority:  PriorityMedium,
		Status:    StatusOpen,
		Tags:      make([]string, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetTitle sets the case title
func (c *Case) SetTitle(title string) *Case {
	c.Title = title
	c.UpdatedAt = time.Now()
	return c
}

// SetDescription sets the case description
func (c *Case) SetDescription(description string) *Case {
	c.Description = description
	c.UpdatedAt = time.Now()
	return c
}

// SetType sets the case type
func (c *Case) SetType(t Type) *Case {
	c.Type = t
	c.UpdatedAt = time.Now()
	return c
}

// SetPriority sets the case priority
func (c *Case) SetPriority(p Priority) *Case {
	c.Priority = p
	c.UpdatedAt = time.Now()
	return c
}

// SetStatus sets the case status
func (c *Case) SetStatus(s Status) *Case {
	c.Status = s
	c.UpdatedAt = time.Now()
	return c
}

// SetSource sets the source signal that produced the case
func (c *Case) SetSource(sourceType, sourceID string) *Case {
	c.SourceType = sourceType
	c.SourceID = sourceID
	c.UpdatedAt = time.Now()
	return c
}

// AddTag appends a classification tag
func (c *Case) AddTag(tag string) *Case {
	c.Tags = append(c.Tags, tag)
	c.UpdatedAt = time.Now()
	return c
}

// HasTag reports whether the case carries the given tag
func (c *Case) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone creates a copy of the case with its own tag slice
func (c *Case) Clone() *Case {
	clone := *c
	clone.Tags = make([]string, len(c.Tags))
	copy(clone.Tags, c.Tags)
	if c.ResponseDueAt != nil {
		t := *c.ResponseDueAt
		clone.ResponseDueAt = &t
	}
	if c.DueAt != nil {
		t := *c.DueAt
		clone.DueAt = &t
	}
	return &clone
}

// Validate checks the case's classified attributes
func (c *Case) Validate() error {
	switch c.Type {
	case TypeRequest, TypeIncident, TypeChange, TypeProblem:
	default:
		return ErrInvalidCaseType
	}
	switch c.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
	default:
		return ErrInvalidPriority
	}
	switch c.Status {
	case StatusOpen, StatusInProgress, StatusAwaitingClient, StatusResolved, StatusClosed:
	default:
		return ErrInvalidStatus
	}
	if c.EscalationLevel < 0 {
		return ErrInvalidEscalationLevel
	}
	return nil
}

// DecodeTags decodes a serialized tag list as stored on related entities.
// Empty input yields an empty set rather than an error.
func DecodeTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
