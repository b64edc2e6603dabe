package get_appointments_by_phone

import (
	"context"

	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByPhone(ctx context.Context, req *models.GetByPhoneRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
