package cases

import (
	"github.com/kart-io/caseflow/core/errors"
)

// Re-export standard errors for the case entity
var (
	// ErrInvalidCaseType indicates an unknown case type
	ErrInvalidCaseType = errors.ErrInvalidCaseType

	// ErrInvalidPriority indicates an unknown priority value
	ErrInvalidPriority = errors.ErrInvalidPriority

	// ErrInvalidStatus indicates an unknown lifecycle status
	ErrInvalidStatus = errors.ErrInvalidStatus

	// ErrInvalidEscalationLevel indicates a negative escalation level
	ErrInvalidEscalationLevel = errors.New(errors.CodeInvalidStatus, errors.CategoryValidation, "escalation level cannot be negative")
)
