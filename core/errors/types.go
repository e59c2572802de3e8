package errors

import (
	"fmt"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Configuration errors
	CodeInvalidConfig   ErrorCode = "INVALID_CONFIG"
	CodeMissingConfig   ErrorCode = "MISSING_CONFIG"
	CodeNoBusinessDays  ErrorCode = "NO_BUSINESS_DAYS"
	CodeInvalidCalendar ErrorCode = "INVALID_CALENDAR"

	// Case validation errors
	CodeInvalidCaseType   ErrorCode = "INVALID_CASE_TYPE"
	CodeInvalidPriority   ErrorCode = "INVALID_PRIORITY"
	CodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	CodeInvalidCaseNumber ErrorCode = "INVALID_CASE_NUMBER"

	// Policy errors
	CodeInvalidPolicy     ErrorCode = "INVALID_POLICY"
	CodeInvalidEscalation ErrorCode = "INVALID_ESCALATION"

	// Routing errors
	CodeInvalidRule      ErrorCode = "INVALID_RULE"
	CodeInvalidCondition ErrorCode = "INVALID_CONDITION"

	// Sequence authority errors
	CodeSequenceFailed ErrorCode = "SEQUENCE_FAILED"
	CodeNetworkError   ErrorCode = "NETWORK_ERROR"
	CodeTimeout        ErrorCode = "TIMEOUT"

	// General errors
	CodeProcessingFailed ErrorCode = "PROCESSING_FAILED"
	CodeUnknownError     ErrorCode = "UNKNOWN_ERROR"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "CONFIG"
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryNumbering  ErrorCategory = "NUMBERING"
	CategoryRouting    ErrorCategory = "ROUTING"
	CategorySLA        ErrorCategory = "SLA"
	CategoryNetwork    ErrorCategory = "NETWORK"
	CategoryInternal   ErrorCategory = "INTERNAL"
)

// EngineError represents a standardized error with category and code
type EngineError struct {
	Code     ErrorCode     `json:"code"`
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
	Field    string        `json:"field,omitempty"`
	Cause    error         `json:"-"`
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] %s (field: %s)", e.Category, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code && e.Category == t.Category
	}
	return false
}

// IsRetryable returns true if the error indicates a retryable condition
func (e *EngineError) IsRetryable() bool {
	switch e.Code {
	case CodeNetworkError, CodeTimeout, CodeSequenceFailed:
		return true
	default:
		return false
	}
}

// IsConfiguration returns true if the error reports an operator-fixable
// configuration problem rather than a transient failure
func (e *EngineError) IsConfiguration() bool {
	return e.Category == CategoryConfig
}

// New creates a new EngineError
func New(code ErrorCode, category ErrorCategory, message string) *EngineError {
	return &EngineError{
		Code:     code,
		Category: category,
		Message:  message,
	}
}

// NewWithField creates a new EngineError carrying the offending field name
func NewWithField(code ErrorCode, category ErrorCategory, message, field string) *EngineError {
	return &EngineError{
		Code:     code,
		Category: category,
		Message:  message,
		Field:    field,
	}
}

// Wrap wraps an existing error with EngineError
func Wrap(code ErrorCode, category ErrorCategory, message string, cause error) *EngineError {
	return &EngineError{
		Code:     code,
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}
