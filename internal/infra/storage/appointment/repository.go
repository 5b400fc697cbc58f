package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/pkg/dbmetrics"
	"github.com/slotly/appointment-service/pkg/psqlbuilder"
)

const appointmentColumns = "id, owner_id, customer_id, service_id, service_name, " +
	"service_price_minor, service_duration_minutes, start_at, end_at, " +
	"customer_name, customer_phone, customer_email, created_at"

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись. ID (UUID) генерирует вызывающий код.
// Если в контексте передана активная транзакция, использует её:
// запись и её занятый интервал должны фиксироваться атомарно.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"owner_id",
			"customer_id",
			"service_id",
			"service_name",
			"service_price_minor",
			"service_duration_minutes",
			"start_at",
			"end_at",
			"customer_name",
			"customer_phone",
			"customer_email",
		).
		Values(
			appointment.ID,
			appointment.OwnerID,
			appointment.CustomerID,
			appointment.ServiceID,
			appointment.ServiceName,
			appointment.ServicePriceMinorUnits,
			appointment.ServiceDurationMinutes,
			appointment.StartAt,
			appointment.EndAt,
			appointment.CustomerName,
			appointment.CustomerPhone,
			appointment.CustomerEmail,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByCustomerID получает историю записей клиента.
// Если from задан, возвращает только записи, начинающиеся не раньше from.
// Сортировка: сначала новые.
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, from *time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *from})
	}

	query, args, err := selectBuilder.
		OrderBy("start_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByOwnerWithFilter получает записи владельца за период для календаря.
// Сортировка по времени начала (ASC).
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerScheduleFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"owner_id": filter.OwnerID})

	// Фильтрация по периоду: запись попадает в период, если пересекается с ним
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	query, args, err := selectBuilder.
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Delete удаляет запись. Запись удаляется физически:
// отменённая запись не должна блокировать слот и не участвует в истории.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.OwnerID,
		&appointment.CustomerID,
		&appointment.ServiceID,
		&appointment.ServiceName,
		&appointment.ServicePriceMinorUnits,
		&appointment.ServiceDurationMinutes,
		&appointment.StartAt,
		&appointment.EndAt,
		&appointment.CustomerName,
		&appointment.CustomerPhone,
		&appointment.CustomerEmail,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
