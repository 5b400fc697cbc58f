package cancel_appointment

import (
	"context"
	"time"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// IntervalRepository интерфейс репозитория занятых интервалов
type IntervalRepository interface {
	// DeleteByAppointmentID удаляет интервалы записи и возвращает число удаленных строк
	DeleteByAppointmentID(ctx context.Context, appointmentID string) (int64, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ScheduleNotifier интерфейс публикации событий изменения расписания
type ScheduleNotifier interface {
	ScheduleChanged(ctx context.Context, event notify.ScheduleChangedEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
