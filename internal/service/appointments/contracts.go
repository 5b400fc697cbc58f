package appointments

import (
	"context"
	"time"

	"github.com/slotly/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID int64, from *time.Time) ([]*domain.Appointment, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerScheduleFilter) ([]*domain.Appointment, error)
}

// IntervalRepository интерфейс репозитория занятых интервалов
type IntervalRepository interface {
	ListByOwnerAndRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.BookedInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
