package schedule

import (
	"errors"
	"testing"
	"time"

	"clinic-management-backend/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-31 is a Monday, 2026-08-29 a Saturday.
var (
	monday   = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func officeHours(t *testing.T) Rule {
	t.Helper()
	rule, err := ParseRule("Mon-Fri, 9 AM - 5 PM")
	require.NoError(t, err)
	return rule
}

func TestCheckSlotInsideWindow(t *testing.T) {
	rule := officeHours(t)

	assert.NoError(t, rule.CheckSlot(at(monday, 10, 0)))
	assert.NoError(t, rule.CheckSlot(at(monday, 9, 0)))   // opening hour included
	assert.NoError(t, rule.CheckSlot(at(monday, 16, 59))) // last minute before close
}

func TestCheckSlotClosingHourExcluded(t *testing.T) {
	rule := officeHours(t)

	err := rule.CheckSlot(at(monday, 17, 0))
	require.Error(t, err)

	var slotErr *apperrors.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	assert.Contains(t, slotErr.Reason, "working hours")
}

func TestCheckSlotWrongDay(t *testing.T) {
	rule := officeHours(t)

	err := rule.CheckSlot(at(saturday, 10, 0))
	require.Error(t, err)

	var slotErr *apperrors.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	assert.Contains(t, slotErr.Reason, "Saturday")
	assert.Contains(t, slotErr.Reason, "working days")
}

// The day check runs before the time check, so a wrong day outside hours
// reports the day mismatch.
func TestCheckSlotDayCheckedFirst(t *testing.T) {
	rule := officeHours(t)

	err := rule.CheckSlot(at(saturday, 22, 0))
	require.Error(t, err)

	var slotErr *apperrors.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	assert.Contains(t, slotErr.Reason, "not available on Saturday")
}

func TestCheckAvailability(t *testing.T) {
	// Valid schedule, valid slot
	assert.NoError(t, CheckAvailability("Mon-Fri, 9 AM - 5 PM", at(monday, 10, 0)))

	// Valid schedule, slot outside hours
	err := CheckAvailability("Mon-Fri, 9 AM - 5 PM", at(monday, 17, 0))
	var slotErr *apperrors.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))

	// Unparseable schedule is distinct from a rejected slot
	err = CheckAvailability("whenever", at(monday, 10, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrScheduleFormat))
	assert.False(t, errors.As(err, &slotErr))
}

// Wraparound ranges like Fri-Mon are malformed input for every slot, not
// schedules that never match.
func TestCheckAvailabilityWraparoundRejected(t *testing.T) {
	for d := 0; d < 7; d++ {
		slot := at(monday.AddDate(0, 0, d), 10, 0)
		err := CheckAvailability("Fri-Mon, 9 AM - 5 PM", slot)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrScheduleFormat))
	}
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, mondayIndex(time.Monday))
	assert.Equal(t, 4, mondayIndex(time.Friday))
	assert.Equal(t, 5, mondayIndex(time.Saturday))
	assert.Equal(t, 6, mondayIndex(time.Sunday))
}
