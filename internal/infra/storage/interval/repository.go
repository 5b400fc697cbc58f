package interval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/pkg/dbmetrics"
	"github.com/slotly/appointment-service/pkg/psqlbuilder"
)

// Код exclusion_violation в PostgreSQL
const pgExclusionViolation = "23P01"

// Repository репозиторий занятых интервалов календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория интервалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет занятый интервал записи.
// Вызывается только в одной транзакции с созданием самой записи.
// Конфликт по exclusion constraint (пересечение с другим интервалом
// того же владельца) возвращается как ErrIntervalConflict.
func (r *Repository) Create(ctx context.Context, interval *domain.BookedInterval) (*domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booked_intervals").
		Columns(
			"owner_id",
			"appointment_id",
			"start_at",
			"end_at",
		).
		Values(
			interval.OwnerID,
			interval.AppointmentID,
			interval.StartAt,
			interval.EndAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&interval.ID)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - owner_id=%d [%s, %s)", ErrIntervalConflict,
				interval.OwnerID,
				interval.StartAt.Format(time.RFC3339),
				interval.EndAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return interval, nil
}

// ListByOwnerAndRange получает занятые интервалы владельца, пересекающиеся
// с полуоткрытым диапазоном [from, to). Сортировка по времени начала.
// Внутри транзакции добавляет FOR UPDATE: строки дня блокируются на время
// проверки пересечений перед вставкой новой записи.
func (r *Repository) ListByOwnerAndRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"owner_id",
		"appointment_id",
		"start_at",
		"end_at",
	).
		From("booked_intervals").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.BookedInterval, 0)
	for rows.Next() {
		var interval domain.BookedInterval
		err := rows.Scan(
			&interval.ID,
			&interval.OwnerID,
			&interval.AppointmentID,
			&interval.StartAt,
			&interval.EndAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwnerAndRange - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerAndRange - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// DeleteByAppointmentID удаляет интервалы записи и возвращает число удалённых.
// Ноль удалённых строк не является ошибкой: вызывающий код решает, что
// делать с нарушенным инвариантом (запись без интервала).
func (r *Repository) DeleteByAppointmentID(ctx context.Context, appointmentID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booked_intervals").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAppointmentID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAppointmentID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAppointmentID - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// isExclusionViolation проверяет, что ошибка вызвана exclusion constraint
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}
