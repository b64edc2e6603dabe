package get_schedule

import (
	"net/http"
	"sort"
	"time"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	"github.com/guelfi/barbershop-booking/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ScheduleResponse is the read-only business-hours document.
type ScheduleResponse struct {
	OpenTime    string   `json:"abertura"`
	CloseTime   string   `json:"fechamento"`
	LunchStart  string   `json:"almocoInicio"`
	LunchEnd    string   `json:"almocoFim"`
	SlotMinutes int      `json:"duracaoSlot"`
	Weekdays    []string `json:"diasAtendimento"`
	Holidays    []string `json:"feriados"`
}

type Handler struct {
	schedule domain.ScheduleConfig
	logger   Logger
}

func NewHandler(schedule domain.ScheduleConfig, logger Logger) *Handler {
	return &Handler{
		schedule: schedule,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	resp := ScheduleResponse{
		OpenTime:    h.schedule.OpenTime.String(),
		CloseTime:   h.schedule.CloseTime.String(),
		LunchStart:  h.schedule.LunchStart.String(),
		LunchEnd:    h.schedule.LunchEnd.String(),
		SlotMinutes: h.schedule.SlotMinutes,
		Weekdays:    []string{},
		Holidays:    []string{},
	}

	// Monday-first wire order
	for offset := 0; offset < 7; offset++ {
		day := time.Weekday((offset + 1) % 7)
		if h.schedule.Weekdays[day] {
			resp.Weekdays = append(resp.Weekdays, day.String())
		}
	}

	for date := range h.schedule.Holidays {
		resp.Holidays = append(resp.Holidays, date)
	}
	sort.Strings(resp.Holidays)

	handlers.RespondJSON(w, http.StatusOK, resp)
}
