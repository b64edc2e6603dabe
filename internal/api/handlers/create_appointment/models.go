package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guelfi/barbershop-booking/internal/domain"
	createAppointment "github.com/guelfi/barbershop-booking/internal/usecase/create_appointment"
	"github.com/guelfi/barbershop-booking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName  string  `json:"nome"`
	ClientPhone string  `json:"telefone"`
	ServiceCode string  `json:"servico"`
	Date        string  `json:"data"`    // "2025-10-15"
	StartTime   string  `json:"horario"` // "10:00"
	Notes       *string `json:"observacoes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	Success          bool            `json:"success"`
	ID               string          `json:"id"`
	ConfirmationCode string          `json:"numeroConfirmacao"`
	ClientName       string          `json:"nome"`
	ClientPhone      string          `json:"telefone"`
	ServiceCode      string          `json:"codigoServico"`
	ServiceName      string          `json:"servico"`
	Date             string          `json:"data"`
	StartTime        string          `json:"horario"`
	DurationMinutes  int             `json:"duracaoMinutos"`
	Price            decimal.Decimal `json:"valor"`
	Status           string          `json:"status"`
	Notes            *string         `json:"observacoes,omitempty"`
	CreatedAt        string          `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and time.
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientIP string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ServiceCode: r.ServiceCode,
		Date:        date,
		StartTime:   startTime,
		Notes:       r.Notes,
		ClientIP:    clientIP,
	}, nil
}

// FromUseCaseResponse converts the usecase response into the HTTP model.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		Success:          true,
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode,
		ClientName:       resp.ClientName,
		ClientPhone:      resp.ClientPhone,
		ServiceCode:      resp.ServiceCode,
		ServiceName:      resp.ServiceName,
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Price:            resp.Price,
		Status:           resp.Status,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
