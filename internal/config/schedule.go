package config

import (
	"fmt"
	"time"

	"github.com/guelfi/barbershop-booking/internal/domain"
	"github.com/guelfi/barbershop-booking/pkg/types"
)

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ToDomainSchedule converts the TOML section into the domain schedule.
// An empty section falls back to the shop defaults.
func (c ScheduleConfig) ToDomainSchedule() (domain.ScheduleConfig, error) {
	if c.OpenTime == "" && c.CloseTime == "" {
		return domain.DefaultScheduleConfig(), nil
	}

	open, err := types.NewTimeStringFromString(c.OpenTime)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule.open_time: %w", err)
	}
	closing, err := types.NewTimeStringFromString(c.CloseTime)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule.close_time: %w", err)
	}

	schedule := domain.ScheduleConfig{
		OpenTime:    open,
		CloseTime:   closing,
		SlotMinutes: c.SlotMinutes,
		Weekdays:    make(map[time.Weekday]bool, len(c.Weekdays)),
		Holidays:    make(map[string]bool, len(c.Holidays)),
	}

	if c.LunchStart != "" || c.LunchEnd != "" {
		schedule.LunchStart, err = types.NewTimeStringFromString(c.LunchStart)
		if err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule.lunch_start: %w", err)
		}
		schedule.LunchEnd, err = types.NewTimeStringFromString(c.LunchEnd)
		if err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("config: invalid schedule.lunch_end: %w", err)
		}
	}

	for _, name := range c.Weekdays {
		day, ok := weekdayNames[name]
		if !ok {
			return domain.ScheduleConfig{}, fmt.Errorf("config: unknown weekday %q", name)
		}
		schedule.Weekdays[day] = true
	}

	for _, date := range c.Holidays {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("config: invalid holiday %q: %w", date, err)
		}
		schedule.Holidays[date] = true
	}

	return schedule, nil
}
