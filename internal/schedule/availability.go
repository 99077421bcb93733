// Package schedule implements the doctor availability rule: parsing the
// stored rule string and deciding whether a candidate appointment time
// falls inside the bookable window.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"clinic-management-backend/internal/apperrors"
)

// Day indices are Monday=0 .. Sunday=6.
var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var dayIndex = map[string]int{
	"Mon": 0, "Tue": 1, "Wed": 2, "Thu": 3, "Fri": 4, "Sat": 5, "Sun": 6,
}

// Rule is a parsed availability window: an inclusive day range and a
// half-open time-of-day range in minutes since midnight.
type Rule struct {
	StartDay    int
	EndDay      int
	StartMinute int
	EndMinute   int
}

// ParseRule parses an availability string of the form
// "<StartDay>-<EndDay>, <h> AM|PM - <h> AM|PM", e.g. "Mon-Fri, 9 AM - 5 PM".
// The grammar is deliberately strict: no token normalization is attempted,
// and inverted day or time ranges are rejected as malformed rather than
// treated as never-available.
func ParseRule(s string) (Rule, error) {
	var rule Rule

	parts := strings.SplitN(s, ", ", 2)
	if len(parts) != 2 {
		return rule, fmt.Errorf("%w: missing day/time separator in %q", apperrors.ErrScheduleFormat, s)
	}

	days := strings.SplitN(parts[0], "-", 2)
	if len(days) != 2 {
		return rule, fmt.Errorf("%w: day range %q must be <StartDay>-<EndDay>", apperrors.ErrScheduleFormat, parts[0])
	}

	startDay, ok := dayIndex[days[0]]
	if !ok {
		return rule, fmt.Errorf("%w: unknown day %q", apperrors.ErrScheduleFormat, days[0])
	}
	endDay, ok := dayIndex[days[1]]
	if !ok {
		return rule, fmt.Errorf("%w: unknown day %q", apperrors.ErrScheduleFormat, days[1])
	}
	if startDay > endDay {
		return rule, fmt.Errorf("%w: day range %q wraps across the week boundary", apperrors.ErrScheduleFormat, parts[0])
	}

	times := strings.SplitN(parts[1], " - ", 2)
	if len(times) != 2 {
		return rule, fmt.Errorf("%w: time range %q must be <start> - <end>", apperrors.ErrScheduleFormat, parts[1])
	}

	startMinute, err := parseClock(times[0])
	if err != nil {
		return rule, err
	}
	endMinute, err := parseClock(times[1])
	if err != nil {
		return rule, err
	}
	if startMinute >= endMinute {
		return rule, fmt.Errorf("%w: time range %q is empty or inverted", apperrors.ErrScheduleFormat, parts[1])
	}

	rule.StartDay = startDay
	rule.EndDay = endDay
	rule.StartMinute = startMinute
	rule.EndMinute = endMinute
	return rule, nil
}

// parseClock converts a "<h> AM|PM" token into minutes since midnight.
// 12 AM is midnight, 12 PM is noon.
func parseClock(token string) (int, error) {
	fields := strings.Fields(token)
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: time %q must be \"<h> AM|PM\"", apperrors.ErrScheduleFormat, token)
	}

	hour, err := strconv.Atoi(fields[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: hour %q must be 1-12", apperrors.ErrScheduleFormat, fields[0])
	}

	switch fields[1] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("%w: meridiem %q must be AM or PM", apperrors.ErrScheduleFormat, fields[1])
	}

	return hour * 60, nil
}

// formatClock renders minutes since midnight back into "<h> AM|PM" form.
func formatClock(minute int) string {
	hour := minute / 60
	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	if rem := minute % 60; rem != 0 {
		return fmt.Sprintf("%d:%02d %s", hour, rem, meridiem)
	}
	return fmt.Sprintf("%d %s", hour, meridiem)
}

// String renders the canonical rule form; parsing the result yields an
// equal Rule.
func (r Rule) String() string {
	return fmt.Sprintf("%s-%s, %s - %s",
		dayNames[r.StartDay], dayNames[r.EndDay],
		formatClock(r.StartMinute), formatClock(r.EndMinute))
}
