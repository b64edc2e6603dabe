package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelfi/barbershop-booking/pkg/types"
)

func TestSlotsForDate_StandardMonday(t *testing.T) {
	// GIVEN: 09:00-19:00, lunch 12:00-13:00, 30min slots, Mon-Sat
	// WHEN: asking for a regular Monday
	// THEN: 18 slots, lunch hour excluded, 18:30 included, 19:00 excluded
	cfg := DefaultScheduleConfig()
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	slots := cfg.SlotsForDate(monday)

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("11:30"), slots[5])
	assert.Equal(t, types.TimeString("13:00"), slots[6])
	assert.Equal(t, types.TimeString("18:30"), slots[17])
	assert.NotContains(t, slots, types.TimeString("12:00"))
	assert.NotContains(t, slots, types.TimeString("12:30"))
	assert.NotContains(t, slots, types.TimeString("19:00"))
}

func TestSlotsForDate_SlotsStrictlyIncreasing(t *testing.T) {
	cfg := DefaultScheduleConfig()
	slots := cfg.SlotsForDate(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC))

	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slot %s should come before %s", slots[i-1], slots[i])
	}
	for _, s := range slots {
		assert.False(t, s.IsBefore(cfg.OpenTime))
		assert.True(t, s.IsBefore(cfg.CloseTime))
	}
}

func TestSlotsForDate_ClosedOnSunday(t *testing.T) {
	cfg := DefaultScheduleConfig()
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, cfg.SlotsForDate(sunday))
}

func TestSlotsForDate_Holiday(t *testing.T) {
	cfg := DefaultScheduleConfig()
	cfg.Holidays = map[string]bool{"2024-12-25": true}
	christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC) // a Wednesday

	assert.Empty(t, cfg.SlotsForDate(christmas))
}

func TestSlotsForDate_StepRollsMinutesIntoHours(t *testing.T) {
	cfg := DefaultScheduleConfig()
	cfg.OpenTime = "09:45"
	cfg.CloseTime = "11:00"
	cfg.LunchStart = ""
	cfg.LunchEnd = ""

	slots := cfg.SlotsForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, []types.TimeString{"09:45", "10:15", "10:45"}, slots)
}

func TestSlotsForDate_UnalignedCloseTruncates(t *testing.T) {
	cfg := DefaultScheduleConfig()
	cfg.OpenTime = "09:00"
	cfg.CloseTime = "10:15"
	cfg.LunchStart = ""
	cfg.LunchEnd = ""

	slots := cfg.SlotsForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	// 10:00 starts before close; no partial slot after it
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, slots)
}

func TestSlotsForDate_CloseNotAfterOpen(t *testing.T) {
	cfg := DefaultScheduleConfig()
	cfg.OpenTime = "19:00"
	cfg.CloseTime = "09:00"

	assert.Empty(t, cfg.SlotsForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))

	cfg.CloseTime = "19:00"
	assert.Empty(t, cfg.SlotsForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
}

func TestSlotsForDate_LunchOutsideHoursIsNoop(t *testing.T) {
	cfg := DefaultScheduleConfig()
	cfg.OpenTime = "14:00"
	cfg.CloseTime = "16:00"
	cfg.LunchStart = "12:00"
	cfg.LunchEnd = "13:00"

	slots := cfg.SlotsForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00", "15:30"}, slots)
}
