package create_appointment

import (
	"context"
	"time"

	"github.com/guelfi/barbershop-booking/internal/domain"
)

// AppointmentRepository is the slice of the booking ledger this usecase needs.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// AbuseGuard gates the attempt before any ledger access happens.
type AbuseGuard interface {
	Check(ctx context.Context, clientAddr string, phone string) error
}

// TransactionManager runs fn inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
