package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	appointmentsService "github.com/guelfi/barbershop-booking/internal/service/appointments"
	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidInput       = "dados inválidos"
	msgNotFound           = "agendamento não encontrado"
	msgPhoneMismatch      = "telefone não confere com o agendamento"
	msgCannotCancel       = "este agendamento não pode mais ser cancelado"
	msgTooLateToCancel    = "cancelamento permitido até 2 horas antes do horário"
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

// Handle PATCH /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%s/cancel - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/%s/cancel - Validation failed: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%s/cancel - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentsService.ErrPhoneMismatch):
			h.logger.Warn("PATCH /appointments/%s/cancel - Phone mismatch", id)
			handlers.RespondForbidden(w, msgPhoneMismatch)

		case errors.Is(err, appointmentsService.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/%s/cancel - Not cancellable", id)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgCannotCancel)

		case errors.Is(err, appointmentsService.ErrTooLateToCancel):
			h.logger.Warn("PATCH /appointments/%s/cancel - Inside notice window", id)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgTooLateToCancel)

		case handlers.IsTimeout(err):
			h.logger.Error("PATCH /appointments/%s/cancel - Timed out: %v", id, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("PATCH /appointments/%s/cancel - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%s/cancel - Cancelled", id)
	w.WriteHeader(http.StatusNoContent)
}
