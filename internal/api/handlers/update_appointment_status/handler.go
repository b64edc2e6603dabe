package update_appointment_status

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
	msgInvalidStatus      = "status inválido, esperado concluido ou nao_compareceu"
	msgNotFound           = "agendamento não encontrado"
	msgInvalidTransition  = "transição de status não permitida"
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

// Handle PATCH /api/v1/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%s/status - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/%s/status - Invalid status: %s", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%s/status - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/%s/status - Forbidden transition to %s", id, req.Status)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgInvalidTransition)

		case handlers.IsTimeout(err):
			h.logger.Error("PATCH /appointments/%s/status - Timed out: %v", id, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("PATCH /appointments/%s/status - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%s/status - Updated to %s", id, req.Status)
	w.WriteHeader(http.StatusNoContent)
}
