package schedule

import (
	"context"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// ScheduleNotifier интерфейс публикации событий изменения расписания
type ScheduleNotifier interface {
	ScheduleChanged(ctx context.Context, event notify.ScheduleChangedEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
