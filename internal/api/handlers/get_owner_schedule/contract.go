package get_owner_schedule

import (
	"context"

	"github.com/slotly/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetOwnerSchedule(ctx context.Context, req *models.GetOwnerScheduleRequest) (*models.OwnerScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
