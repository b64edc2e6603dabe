package appointments

import (
	"context"
	"time"

	"github.com/guelfi/barbershop-booking/internal/domain"
)

// AppointmentRepository is the slice of the booking ledger this service needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetFutureByPhone(ctx context.Context, phone string, fromDate time.Time) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id string, reason string) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id string) error
	GetStats(ctx context.Context, from, to *time.Time) (*domain.AppointmentStats, error)
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface this service depends on.
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
