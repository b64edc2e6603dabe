package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	"github.com/guelfi/barbershop-booking/internal/domain"
	getAvailableSlots "github.com/guelfi/barbershop-booking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "parâmetro data é obrigatório"
	msgInvalidDate = "formato de data inválido, esperado YYYY-MM-DD"
	msgPastDate    = "não é possível consultar uma data passada"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date %q: %v", raw, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Past date: %s", raw)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case handlers.IsTimeout(err):
			h.logger.Error("GET /slots - Timed out: %v", err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /slots - Failed to resolve availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - %d slots free on %s", len(result.Available), raw)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
