package schedule

import (
	"fmt"
	"time"

	"clinic-management-backend/internal/apperrors"
)

// mondayIndex converts Go's Sunday=0 weekday to the Monday=0 indexing
// used by availability rules.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// CheckSlot decides whether the candidate appointment time t falls inside
// the rule's window. The day check runs first, then the time check; the
// returned *apperrors.SlotUnavailableError carries a reason naming which
// one failed. The time range is half-open: a slot exactly at the closing
// hour is rejected.
func (r Rule) CheckSlot(t time.Time) error {
	day := mondayIndex(t.Weekday())
	if day < r.StartDay || day > r.EndDay {
		return apperrors.NewSlotUnavailable(fmt.Sprintf(
			"doctor is not available on %s (working days %s-%s)",
			t.Weekday(), dayNames[r.StartDay], dayNames[r.EndDay]))
	}

	minute := t.Hour()*60 + t.Minute()
	if minute < r.StartMinute || minute >= r.EndMinute {
		return apperrors.NewSlotUnavailable(fmt.Sprintf(
			"requested time %02d:%02d is outside working hours %s - %s",
			t.Hour(), t.Minute(), formatClock(r.StartMinute), formatClock(r.EndMinute)))
	}

	return nil
}

// CheckAvailability parses the stored availability string and validates t
// against it. An unparseable schedule surfaces as ErrScheduleFormat,
// distinct from a slot that is simply outside the window.
func CheckAvailability(availability string, t time.Time) error {
	rule, err := ParseRule(availability)
	if err != nil {
		return err
	}
	return rule.CheckSlot(t)
}
