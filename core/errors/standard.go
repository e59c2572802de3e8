package errors

// Standard error definitions shared across the engine packages

// Configuration errors
var (
	ErrInvalidConfig   = New(CodeInvalidConfig, CategoryConfig, "invalid configuration")
	ErrMissingConfig   = New(CodeMissingConfig, CategoryConfig, "missing required configuration")
	ErrNoBusinessDays  = New(CodeNoBusinessDays, CategoryConfig, "policy calendar has no business days configured")
	ErrInvalidCalendar = New(CodeInvalidCalendar, CategoryConfig, "business hours window is invalid")
)

// Case validation errors
var (
	ErrInvalidCaseType   = New(CodeInvalidCaseType, CategoryValidation, "case type must be one of request, incident, change, problem")
	ErrInvalidPriority   = New(CodeInvalidPriority, CategoryValidation, "priority must be one of low, medium, high, critical")
	ErrInvalidStatus     = New(CodeInvalidStatus, CategoryValidation, "invalid case status")
	ErrInvalidCaseNumber = New(CodeInvalidCaseNumber, CategoryNumbering, "case number does not match CS-YYYY-NNNN")
)

// Policy errors
var (
	ErrInvalidPolicy     = New(CodeInvalidPolicy, CategorySLA, "policy is missing required fields")
	ErrInvalidEscalation = New(CodeInvalidEscalation, CategorySLA, "escalation rules could not be decoded")
)

// Routing errors
var (
	ErrInvalidRule      = New(CodeInvalidRule, CategoryRouting, "routing rule is malformed")
	ErrInvalidCondition = New(CodeInvalidCondition, CategoryRouting, "routing condition references an unknown field or operator")
)

// Sequence authority errors
var (
	ErrSequenceFailed = New(CodeSequenceFailed, CategoryNumbering, "sequence allocation failed")
	ErrNetworkError   = New(CodeNetworkError, CategoryNetwork, "network communication failed")
	ErrTimeout        = New(CodeTimeout, CategoryNetwork, "request timeout")
)

// NewNumberingError creates a numbering-specific error
func NewNumberingError(code ErrorCode, message string) *EngineError {
	return New(code, CategoryNumbering, message)
}

// NewPolicyError creates an SLA-policy-specific error
func NewPolicyError(code ErrorCode, message string) *EngineError {
	return New(code, CategorySLA, message)
}
