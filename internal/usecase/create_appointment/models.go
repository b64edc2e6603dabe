package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/pkg/types"
)

// Request carries the data needed to book an appointment.
type Request struct {
	ClientName  string
	ClientPhone string // "(DD) DDDDD-DDDD"
	ServiceCode string
	Date        time.Time        // date only
	StartTime   types.TimeString // e.g. "10:00"
	Notes       *string
	ClientIP    string // remote address, used by the abuse guard and audit
}

// Response is the created appointment.
type Response struct {
	ID               string
	ConfirmationCode string
	ClientName       string
	ClientPhone      string
	ServiceCode      string
	ServiceName      string
	Date             time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	Price            decimal.Decimal
	Status           string
	Notes            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
