package delete_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	appointmentsService "github.com/guelfi/barbershop-booking/internal/service/appointments"
)

const (
	msgNotFound        = "agendamento não encontrado"
	msgTooLateToDelete = "remoção permitida até 2 horas antes do horário"
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

// Handle DELETE /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/%s - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentsService.ErrTooLateToDelete):
			h.logger.Warn("DELETE /appointments/%s - Inside notice window", id)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgTooLateToDelete)

		case handlers.IsTimeout(err):
			h.logger.Error("DELETE /appointments/%s - Timed out: %v", id, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("DELETE /appointments/%s - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/%s - Removed", id)
	w.WriteHeader(http.StatusNoContent)
}
