package get_stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	"github.com/guelfi/barbershop-booking/internal/domain"
	appointmentsService "github.com/guelfi/barbershop-booking/internal/service/appointments"
	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
)

const (
	msgInvalidPeriod = "formato de período inválido, esperado YYYY-MM-DD"
	msgPeriodOrder   = "fim do período anterior ao início"
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

// Handle GET /api/v1/stats?inicio=YYYY-MM-DD&fim=YYYY-MM-DD
// Both bounds are optional; when present they filter by creation date.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.StatsRequest{}

	if raw := r.URL.Query().Get("inicio"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /stats - Invalid inicio %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.From = &from
	}

	if raw := r.URL.Query().Get("fim"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /stats - Invalid fim %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.To = &to
	}

	result, err := h.service.Stats(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /stats - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgPeriodOrder)

		case handlers.IsTimeout(err):
			h.logger.Error("GET /stats - Timed out: %v", err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /stats - Failed to aggregate: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stats - %d appointments aggregated", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
