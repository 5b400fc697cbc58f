package get_appointment

import (
	"context"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id string, userID int64, role domain.UserRole) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
