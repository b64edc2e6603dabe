package get_available_slots

import (
	"time"

	"github.com/guelfi/barbershop-booking/pkg/types"
)

// Request asks for the free slots on a date.
type Request struct {
	Date time.Time // date only
}

// Response lists the bookable start times left on the date, in order.
// A closed day (or a fully booked one) comes back with an empty list.
type Response struct {
	Date      time.Time
	IsOpen    bool
	Available []types.TimeString
}
