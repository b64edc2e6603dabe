package get_available_slots

import (
	"context"
	"time"

	"github.com/guelfi/barbershop-booking/internal/domain"
)

// AppointmentRepository is the slice of the booking ledger this usecase needs.
type AppointmentRepository interface {
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface this usecase depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
