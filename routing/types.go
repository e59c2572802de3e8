package routing

// Operator is a condition comparison operator
type Operator string

const (
	OperatorEquals   Operator = "equals"
	OperatorIn       Operator = "in"
	OperatorContains Operator = "contains"
)

// Field names a case attribute a condition can test
type Field string

const (
	FieldCaseType   Field = "caseType"
	FieldPriority   Field = "priority"
	FieldSourceType Field = "sourceType"
	FieldScopeType  Field = "scopeType"
	FieldTags       Field = "tags"
)

// TargetType classifies who a rule assigns the case to
type TargetType string

const (
	TargetRole TargetType = "role"
	TargetUser TargetType = "user"
	TargetTeam TargetType = "team"
)

// Condition is a single field test. All conditions of a rule must hold for
// the rule to match.
type Condition struct {
	Field    Field       `json:"field" yaml:"field"`
	Operator Operator    `json:"operator" yaml:"operator"`
	Value    interface{} `json:"value" yaml:"value"`
}

// Target identifies the owner a matched rule assigns
type Target struct {
	Type TargetType `json:"type" yaml:"type"`
	ID   string     `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`
}

// Rule is an operator-defined routing rule. Higher priority wins when
// several rules match.
type Rule struct {
	Name       string      `json:"name" yaml:"name"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
	Target     Target      `json:"target" yaml:"target"`
	Priority   int         `json:"priority" yaml:"priority"`
	Active     bool        `json:"active" yaml:"active"`
}

// Decision is the routing outcome for a case
type Decision struct {
	TargetType  TargetType `json:"target_type"`
	TargetID    string     `json:"target_id"`
	TargetName  string     `json:"target_name"`
	MatchedRule string     `json:"matched_rule,omitempty"`
	Confidence  float64    `json:"confidence"`
}

// User is a directory entry considered for assignment
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Active    bool     `json:"active"`
	Skills    []string `json:"skills,omitempty"`
	OpenCases int      `json:"open_cases"`
}

// Suggestion pairs a candidate assignee with a one-line reason
type Suggestion struct {
	User   User   `json:"user"`
	Reason string `json:"reason"`
}
