package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/internal/domain"
)

// Request models

// CancelRequest cancels an appointment on behalf of its owner. The phone must
// match the one stored on the appointment.
type CancelRequest struct {
	Phone  string `json:"telefone"`
	Reason string `json:"motivo,omitempty"`
}

// UpdateStatusRequest moves an appointment to an admin-settable status
// (concluido or nao_compareceu).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetByPhoneRequest asks for the future confirmed appointments of a phone.
type GetByPhoneRequest struct {
	Phone string `json:"telefone"`
}

// StatsRequest bounds the statistics by creation date, both ends inclusive.
// Nil means unbounded.
type StatsRequest struct {
	From *time.Time
	To   *time.Time
}

// Response models

// AppointmentResponse is the wire form of an appointment.
type AppointmentResponse struct {
	ID               string          `json:"id"`
	ConfirmationCode string          `json:"numeroConfirmacao"`
	ClientName       string          `json:"nome"`
	ClientPhone      string          `json:"telefone"`
	ServiceCode      string          `json:"codigoServico"`
	ServiceName      string          `json:"servico"`
	Date             string          `json:"data"`    // "2025-10-15"
	StartTime        string          `json:"horario"` // "10:00"
	DurationMinutes  int             `json:"duracaoMinutos"`
	Price            decimal.Decimal `json:"valor"`
	Status           string          `json:"status"`

	Notes              *string `json:"observacoes,omitempty"`
	CancellationReason *string `json:"motivoCancelamento,omitempty"`
	CancelledAt        *string `json:"canceladoEm,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse wraps a list of appointments.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"agendamentos"`
	Total        int                    `json:"total"`
}

// StatsResponse summarizes the ledger for the admin dashboard.
type StatsResponse struct {
	Total     int `json:"totalAgendamentos"`
	Confirmed int `json:"confirmados"`
	Cancelled int `json:"cancelados"`
	Completed int `json:"concluidos"`
	NoShows   int `json:"naoComparecimentos"`

	TotalRevenue     decimal.Decimal `json:"faturamentoTotal"`
	AverageTicket    decimal.Decimal `json:"ticketMedio"`
	CancellationRate decimal.Decimal `json:"taxaCancelamento"` // percent, 2 decimals
}

// FromDomainAppointment converts a domain appointment to its wire form.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 a.ID,
		ConfirmationCode:   a.ConfirmationCode,
		ClientName:         a.ClientName,
		ClientPhone:        a.ClientPhone,
		ServiceCode:        string(a.ServiceCode),
		ServiceName:        a.ServiceName,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Price:              a.Price,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		formatted := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}

	return resp
}

// FromDomainAppointmentList converts a list of domain appointments.
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}
