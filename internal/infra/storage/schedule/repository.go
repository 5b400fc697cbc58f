package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/pkg/dbmetrics"
	"github.com/slotly/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации расписания владельцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwnerID получает конфигурацию расписания владельца.
// Если в контексте передана активная транзакция, использует её:
// создание записи читает конфигурацию в той же транзакции, что и интервалы.
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"open_time",
		"close_time",
		"slot_interval_minutes",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("owner_schedule_config").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.OwnerID,
		&config.OpenTime,
		&config.CloseTime,
		&config.SlotIntervalMinutes,
		&config.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Upsert создает или обновляет конфигурацию владельца.
// У владельца ровно одна конфигурация (owner_id UNIQUE).
func (r *Repository) Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("owner_schedule_config").
		Columns(
			"owner_id",
			"open_time",
			"close_time",
			"slot_interval_minutes",
			"min_booking_notice_minutes",
		).
		Values(
			config.OwnerID,
			config.OpenTime,
			config.CloseTime,
			config.SlotIntervalMinutes,
			config.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = now()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}
