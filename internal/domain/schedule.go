package domain

import (
	"time"

	"github.com/guelfi/barbershop-booking/pkg/types"
)

// ScheduleConfig describes the barbershop business hours: opening interval,
// lunch break, slot granularity, operating weekdays and exact-date holidays.
// It is loaded at startup and treated as immutable, so SlotsForDate is pure
// and callers may cache results per date.
type ScheduleConfig struct {
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	LunchStart  types.TimeString
	LunchEnd    types.TimeString
	SlotMinutes int
	Weekdays    map[time.Weekday]bool
	Holidays    map[string]bool // keys in DateFormat
}

// DefaultScheduleConfig returns the shop's standard hours: Monday to Saturday,
// 09:00-19:00 with lunch 12:00-13:00, 30-minute slots.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		OpenTime:    "09:00",
		CloseTime:   "19:00",
		LunchStart:  "12:00",
		LunchEnd:    "13:00",
		SlotMinutes: 30,
		Weekdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
			time.Saturday:  true,
		},
		Holidays: map[string]bool{},
	}
}

// IsWorkingDay reports whether the shop operates on the given date.
func (c ScheduleConfig) IsWorkingDay(date time.Time) bool {
	if !c.Weekdays[date.Weekday()] {
		return false
	}
	return !c.Holidays[date.Format(DateFormat)]
}

// SlotsForDate returns every bookable start time for the date, in increasing
// order. Closed days and holidays yield an empty sequence. Slots are emitted
// from OpenTime in SlotMinutes increments, strictly before CloseTime, skipping
// any start inside [LunchStart, LunchEnd). A close time that does not align on
// the slot size truncates; close <= open yields nothing.
func (c ScheduleConfig) SlotsForDate(date time.Time) []types.TimeString {
	slots := []types.TimeString{}

	if !c.IsWorkingDay(date) {
		return slots
	}
	if c.SlotMinutes <= 0 || !c.OpenTime.IsBefore(c.CloseTime) {
		return slots
	}

	current := c.OpenTime
	for current.IsBefore(c.CloseTime) {
		if !c.inLunchBreak(current) {
			slots = append(slots, current)
		}

		next, err := current.AddMinutes(c.SlotMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// inLunchBreak reports whether t falls inside [LunchStart, LunchEnd).
func (c ScheduleConfig) inLunchBreak(t types.TimeString) bool {
	if c.LunchStart.IsZero() || c.LunchEnd.IsZero() || !c.LunchStart.IsBefore(c.LunchEnd) {
		return false
	}
	return !t.IsBefore(c.LunchStart) && t.IsBefore(c.LunchEnd)
}
