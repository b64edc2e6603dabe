package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
	"github.com/guelfi/barbershop-booking/internal/domain"
	createAppointment "github.com/guelfi/barbershop-booking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidDate        = "formato de data inválido, esperado YYYY-MM-DD"
	msgInvalidTime        = "formato de horário inválido, esperado HH:MM"
	msgUnknownService     = "serviço não encontrado"
	msgPastDate           = "não é possível agendar para uma data passada"
	msgShopClosed         = "a barbearia está fechada nesta data"
	msgInvalidTimeSlot    = "horário fora da grade de atendimento"
	msgTooLateToBook      = "este horário já passou"
	msgSlotNotAvailable   = "este horário já está reservado"
	msgRateLimited        = "muitas tentativas de agendamento, aguarde alguns minutos"
	msgQuotaExceeded      = "limite de agendamentos ativos para este telefone atingido"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(handlers.ClientIP(r))
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if _, dateErr := time.Parse(domain.DateFormat, req.Date); dateErr != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrUnknownService):
			h.logger.Warn("POST /appointments - Unknown service: %s", req.ServiceCode)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Past date: %s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrShopClosed):
			h.logger.Warn("POST /appointments - Shop closed: %s", req.Date)
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid slot: %s %s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Slot already passed: %s %s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot taken: %s %s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrRateLimited):
			h.logger.Warn("POST /appointments - Rate limited: addr=%s", useCaseReq.ClientIP)
			handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, msgRateLimited)

		case errors.Is(err, createAppointment.ErrQuotaExceeded):
			h.logger.Warn("POST /appointments - Quota exceeded: phone=%s", req.ClientPhone)
			handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeQuotaExceeded, msgQuotaExceeded)

		case handlers.IsTimeout(err):
			h.logger.Error("POST /appointments - Timed out: %v", err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s code=%s",
		result.ID, result.ConfirmationCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
