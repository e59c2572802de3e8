package triage

import (
	"sort"
	"strings"

	"github.com/kart-io/caseflow/core/cases"
)

// Template is a candidate intake template supplied by the caller
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	DefaultType cases.Type `json:"default_type,omitempty"`
}

// TemplateScore pairs a template with its relevance score
type TemplateScore struct {
	Template Template `json:"template"`
	Score    int      `json:"score"`
}

// Scoring increments for template suggestion
const (
	wordOverlapScore   = 2
	structuralBonus    = 3
	minOverlapWordLen  = 4
	maxTemplateMatches = 5
)

// SuggestTemplates scores candidate templates against the input text by
// keyword overlap with the template name, plus structural bonuses for
// matching source signals. Returns at most five templates by descending
// score; zero-score templates are excluded.
func (c *Classifier) SuggestTemplates(input Input, templates []Template) []TemplateScore {
	text := strings.ToLower(input.Title + " " + input.Description)
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) >= minOverlapWordLen {
			words[w] = true
		}
	}
	source := strings.ToLower(input.SourceType)

	scored := make([]TemplateScore, 0, len(templates))
	for _, tpl := range templates {
		score := 0
		for _, w := range strings.Fields(strings.ToLower(tpl.Name)) {
			if len([]rune(w)) >= minOverlapWordLen && words[w] {
				score += wordOverlapScore
			}
		}
		if source == "dq" && tpl.DefaultType == cases.TypeIncident {
			score += structuralBonus
		}
		if source == "billing" && strings.EqualFold(tpl.Category, "billing") {
			score += structuralBonus
		}
		if score > 0 {
			scored = append(scored, TemplateScore{Template: tpl, Score: score})
		}
	}

	// Stable sort keeps input order for equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxTemplateMatches {
		scored = scored[:maxTemplateMatches]
	}
	return scored
}
