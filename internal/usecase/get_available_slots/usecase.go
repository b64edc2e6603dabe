package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/guelfi/barbershop-booking/internal/domain"
	"github.com/guelfi/barbershop-booking/pkg/types"
)

// UseCase computes the free slots for a date: the calendar grid minus every
// start time held by a confirmed appointment. For today, slots that already
// passed are dropped as well.
type UseCase struct {
	repo         AppointmentRepository
	schedule     domain.ScheduleConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the usecase.
func NewUseCase(repo AppointmentRepository, schedule domain.ScheduleConfig, logger Logger) *UseCase {
	return &UseCase{
		repo:         repo,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock (for tests).
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute returns the available slots for req.Date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	if !uc.schedule.IsWorkingDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, IsOpen: false, Available: []types.TimeString{}}, nil
	}

	confirmed, err := uc.repo.GetConfirmedByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load confirmed appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load confirmed appointments: %w", ErrInternal, err)
	}

	taken := make(map[types.TimeString]bool, len(confirmed))
	for _, appt := range confirmed {
		taken[appt.StartTime] = true
	}

	available := []types.TimeString{}
	for _, slot := range uc.schedule.SlotsForDate(req.Date) {
		if taken[slot] {
			continue
		}
		if sameDay(req.Date, now) {
			instant, err := slot.At(req.Date)
			if err != nil || !instant.After(now) {
				continue
			}
		}
		available = append(available, slot)
	}

	uc.logger.Info("GetAvailableSlots: %d slots free on %s", len(available), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, IsOpen: true, Available: available}, nil
}

// validateDate rejects dates strictly before today.
func validateDate(date time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
