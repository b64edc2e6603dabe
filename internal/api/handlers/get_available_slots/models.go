package get_available_slots

import (
	"github.com/guelfi/barbershop-booking/internal/domain"
	getAvailableSlots "github.com/guelfi/barbershop-booking/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date      string   `json:"data"`
	IsOpen    bool     `json:"aberto"`
	Available []string `json:"horarios"`
}

// FromUseCaseResponse converts the usecase response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Available))
	for _, s := range resp.Available {
		slots = append(slots, s.String())
	}

	return &SlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		IsOpen:    resp.IsOpen,
		Available: slots,
	}
}
