package get_appointments_by_phone

import (
	"errors"
	"net/http"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	appointmentsService "github.com/guelfi/barbershop-booking/internal/service/appointments"
	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
)

const (
	msgMissingPhone = "parâmetro telefone é obrigatório"
	msgInvalidPhone = "telefone inválido, esperado (DD) DDDDD-DDDD"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?telefone=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("telefone")
	if phone == "" {
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	result, err := h.service.GetByPhone(r.Context(), &models.GetByPhoneRequest{Phone: phone})
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid phone: %s", phone)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case handlers.IsTimeout(err):
			h.logger.Error("GET /appointments - Timed out: %v", err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /appointments - Failed to fetch appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - %d appointments for phone=%s", result.Total, phone)
	handlers.RespondJSON(w, http.StatusOK, result)
}
