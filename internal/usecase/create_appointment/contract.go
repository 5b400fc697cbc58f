package create_appointment

import (
	"context"
	"time"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
	"github.com/slotly/appointment-service/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// IntervalRepository интерфейс репозитория занятых интервалов
type IntervalRepository interface {
	// ListByOwnerAndRange получает занятые интервалы владельца, пересекающие [from, to).
	// Внутри транзакции строки блокируются через FOR UPDATE.
	ListByOwnerAndRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.BookedInterval, error)
	Create(ctx context.Context, interval *domain.BookedInterval) (*domain.BookedInterval, error)
}

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.ScheduleConfig, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, ownerID, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
