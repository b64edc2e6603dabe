package get_services

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	"github.com/guelfi/barbershop-booking/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ServiceResponse is one catalog entry on the wire.
type ServiceResponse struct {
	Code            string          `json:"codigo"`
	Name            string          `json:"nome"`
	Description     string          `json:"descricao"`
	DurationMinutes int             `json:"duracaoMinutos"`
	Price           decimal.Decimal `json:"valor"`
}

// ServicesResponse lists the catalog.
type ServicesResponse struct {
	Services []ServiceResponse `json:"servicos"`
}

type Handler struct {
	catalog *domain.ServiceCatalog
	logger  Logger
}

func NewHandler(catalog *domain.ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	entries := h.catalog.List()

	resp := ServicesResponse{Services: make([]ServiceResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Services = append(resp.Services, ServiceResponse{
			Code:            string(e.Code),
			Name:            e.Name,
			Description:     e.Description,
			DurationMinutes: e.DurationMinutes,
			Price:           e.Price,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
