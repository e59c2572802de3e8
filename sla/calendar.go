package sla

import (
	"math"
	"time"

	"github.com/kart-io/caseflow/core/errors"
)

// DueDates carries the absolute timestamps computed from a policy's hour
// budgets. ResponseDueAt is nil when the policy has no response budget.
type DueDates struct {
	ResponseDueAt *time.Time `json:"response_due_at,omitempty"`
	DueAt         time.Time  `json:"due_at"`
}

// ComputeDueDates converts the policy's budgets into due timestamps.
// Without businessHoursOnly the budgets are plain calendar offsets from
// createdAt. With it, each budget is walked independently through the
// policy's business-hours calendar from the same start instant.
func ComputeDueDates(createdAt time.Time, policy *Policy) (DueDates, error) {
	if policy == nil {
		return DueDates{}, errors.ErrInvalidPolicy
	}

	if !policy.BusinessHoursOnly {
		result := DueDates{
			DueAt: createdAt.Add(hoursToDuration(policy.ResolutionHours)),
		}
		if policy.ResponseHours > 0 {
			t := createdAt.Add(hoursToDuration(policy.ResponseHours))
			result.ResponseDueAt = &t
		}
		return result, nil
	}

	if len(policy.BusinessDays) == 0 {
		// The walk below cannot terminate on a calendar with no business
		// days; reject instead of hanging.
		return DueDates{}, errors.ErrNoBusinessDays
	}
	startMin, err := parseClock(policy.BusinessHoursStart)
	if err != nil {
		return DueDates{}, err
	}
	endMin, err := parseClock(policy.BusinessHoursEnd)
	if err != nil {
		return DueDates{}, err
	}
	if startMin >= endMin {
		return DueDates{}, errors.ErrInvalidCalendar
	}

	result := DueDates{
		DueAt: addBusinessMinutes(createdAt, hoursToMinutes(policy.ResolutionHours), startMin, endMin, policy.BusinessDays),
	}
	if policy.ResponseHours > 0 {
		t := addBusinessMinutes(createdAt, hoursToMinutes(policy.ResponseHours), startMin, endMin, policy.BusinessDays)
		result.ResponseDueAt = &t
	}
	return result, nil
}

// addBusinessMinutes walks day by day from the start instant, consuming the
// minute budget only inside the business window. The window start is
// inclusive, the end exclusive; a cursor at or past the end rolls to the
// next day. Each pass either consumes budget or advances the cursor to the
// next day's window, so the walk terminates for any non-empty business-day
// set. The cursor is snapped to whole minutes so a sub-minute start cannot
// push the result past the window end.
func addBusinessMinutes(start time.Time, minutes, startMin, endMin int, days map[time.Weekday]bool) time.Time {
	remaining := minutes
	cursor := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute(), 0, 0, start.Location())

	for {
		if !days[cursor.Weekday()] {
			cursor = nextDayAt(cursor, startMin)
			continue
		}

		clock := cursor.Hour()*60 + cursor.Minute()
		if clock < startMin {
			cursor = sameDayAt(cursor, startMin)
			continue
		}
		if clock >= endMin {
			cursor = nextDayAt(cursor, startMin)
			continue
		}

		minutesLeftToday := endMin - clock
		if remaining <= minutesLeftToday {
			return cursor.Add(time.Duration(remaining) * time.Minute)
		}
		remaining -= minutesLeftToday
		cursor = nextDayAt(cursor, startMin)
	}
}

// sameDayAt snaps the cursor to the given clock minute on the same day,
// dropping seconds
func sameDayAt(t time.Time, clockMin int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), clockMin/60, clockMin%60, 0, 0, t.Location())
}

// nextDayAt moves the cursor to the given clock minute on the following day
func nextDayAt(t time.Time, clockMin int) time.Time {
	next := t.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), clockMin/60, clockMin%60, 0, 0, next.Location())
}

// hoursToDuration converts a real-valued hour budget to a duration
func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// hoursToMinutes converts a real-valued hour budget to whole minutes
func hoursToMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
