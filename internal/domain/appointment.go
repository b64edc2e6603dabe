package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/pkg/types"
)

// AppointmentStatus represents the status of an appointment.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmado"
	StatusCancelled AppointmentStatus = "cancelado"
	StatusCompleted AppointmentStatus = "concluido"
	StatusNoShow    AppointmentStatus = "nao_compareceu"
)

// Appointment represents a booked slot in the barbershop calendar.
// DurationMinutes and Price are copied from the service catalog at creation
// time and never change afterwards, even if the catalog does.
type Appointment struct {
	ID               string
	ConfirmationCode string
	ClientName       string
	ClientPhone      string // canonical "(DD) DDDDD-DDDD" format
	ServiceCode      ServiceCode
	ServiceName      string
	Date             time.Time // date only, no time component
	StartTime        types.TimeString
	DurationMinutes  int
	Price            decimal.Decimal
	Status           AppointmentStatus

	Notes    *string
	ClientIP string // audit only

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true while the appointment still holds its slot.
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// IsTerminal returns true once the appointment reached a final status.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted || a.Status == StatusNoShow
}

// CanTransitionTo reports whether the status machine allows moving to target.
// The only valid transitions are confirmado -> {cancelado, concluido,
// nao_compareceu}; terminal states accept nothing.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if a.Status != StatusConfirmed {
		return false
	}
	switch target {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// SlotInstant combines Date and StartTime into the instant the service starts.
func (a *Appointment) SlotInstant() (time.Time, error) {
	return a.StartTime.At(a.Date)
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}
