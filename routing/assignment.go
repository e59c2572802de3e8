package routing

import (
	"fmt"

	"github.com/kart-io/caseflow/core/cases"
)

// maxReassignmentSuggestions caps SuggestReassignment output
const maxReassignmentSuggestions = 5

// typeSkills maps a case type to the skills relevant for working it
var typeSkills = map[cases.Type][]string{
	cases.TypeIncident: {"incident_response", "data_quality", "support"},
	cases.TypeChange:   {"compliance", "change_management"},
	cases.TypeProblem:  {"engineering", "root_cause_analysis"},
	cases.TypeRequest:  {"client_service", "operations"},
}

// AvailableAssignees filters the directory to active users holding the role
func AvailableAssignees(role string, users []User) []User {
	available := make([]User, 0, len(users))
	for _, u := range users {
		if u.Active && u.Role == role {
			available = append(available, u)
		}
	}
	return available
}

// AutoAssign picks the active user with the role who has the fewest open
// cases. Ties resolve to input order. Returns false when nobody holds the
// role.
func AutoAssign(role string, users []User) (User, bool) {
	candidates := AvailableAssignees(role, users)
	if len(candidates) == 0 {
		return User{}, false
	}

	best := candidates[0]
	for _, u := range candidates[1:] {
		if u.OpenCases < best.OpenCases {
			best = u
		}
	}
	return best, true
}

// SuggestReassignment returns up to five active users, excluding the
// current assignee, whose declared skills intersect the skills relevant to
// the case type. Each suggestion carries a one-line reason.
func SuggestReassignment(currentAssigneeID string, caseType cases.Type, priority cases.Priority, users []User) []Suggestion {
	relevant := typeSkills[caseType]

	suggestions := make([]Suggestion, 0, maxReassignmentSuggestions)
	for _, u := range users {
		if !u.Active || u.ID == currentAssigneeID {
			continue
		}
		skill, ok := matchSkill(u.Skills, relevant)
		if !ok {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			User:   u,
			Reason: fmt.Sprintf("%s has the %s skill relevant to %s priority %s cases", u.Name, skill, priority, caseType),
		})
		if len(suggestions) == maxReassignmentSuggestions {
			break
		}
	}
	return suggestions
}

func matchSkill(skills, relevant []string) (string, bool) {
	for _, s := range skills {
		for _, r := range relevant {
			if s == r {
				return s, true
			}
		}
	}
	return "", false
}
