package cancel_appointment

import (
	"context"

	"github.com/guelfi/barbershop-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	Cancel(ctx context.Context, id string, req *models.CancelRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
