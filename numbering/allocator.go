// Package numbering allocates human-readable, year-scoped case numbers of
// the form CS-YYYY-NNNN.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Prefix is the fixed case number prefix
const Prefix = "CS"

// numberPattern matches CS-YYYY-NNNN with a sequence of at least 4 digits
var numberPattern = regexp.MustCompile(`^CS-(\d{4})-(\d{4,})$`)

// ParsedNumber is the structured form of a valid case number
type ParsedNumber struct {
	Year     int `json:"year"`
	Sequence int `json:"sequence"`
}

// NextNumber returns the next unused case number for the given year, derived
// from the set of already-issued numbers. Numbers that do not parse are
// skipped. A year of 0 means the current year. The sequence starts at 1 when
// the year has no issued numbers yet.
func NextNumber(year int, existing []string) string {
	if year == 0 {
		year = time.Now().Year()
	}

	maxSeq := 0
	for _, number := range existing {
		parsed, ok := Parse(number)
		if !ok || parsed.Year != year {
			continue
		}
		if parsed.Sequence > maxSeq {
			maxSeq = parsed.Sequence
		}
	}

	return Format(year, maxSeq+1)
}

// Format renders a case number, zero-padding the sequence to 4 digits
func Format(year, sequence int) string {
	return fmt.Sprintf("%s-%d-%04d", Prefix, year, sequence)
}

// Parse extracts the year and sequence from a case number
func Parse(number string) (ParsedNumber, bool) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return ParsedNumber{}, false
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return ParsedNumber{}, false
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return ParsedNumber{}, false
	}

	return ParsedNumber{Year: year, Sequence: seq}, true
}

// Validate reports whether the string is a well-formed case number
func Validate(number string) bool {
	return numberPattern.MatchString(number)
}
