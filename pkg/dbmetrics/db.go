package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/slotly/appointment-service/pkg/metrics"
)

const defaultPoolStatsInterval = 10 * time.Second

// DB оборачивает *sql.DB и записывает метрики каждого запроса.
// Удовлетворяет интерфейсу DBExecutor, поэтому репозитории работают
// с обёрткой так же, как с обычным *sql.DB.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	service string
}

// Wrap оборачивает соединение без запуска сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, service string) *DB {
	return &DB{db: db, metrics: m, service: service}
}

// WrapWithDefault оборачивает соединение и запускает фоновый сбор
// статистики connection pool до закрытия stop канала.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, service string, stop <-chan struct{}) *DB {
	wrapped := Wrap(db, m, service)
	go wrapped.collectPoolStats(defaultPoolStatsInterval, stop)
	return wrapped
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.record(query, err, start)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с записью метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.record(query, row.Err(), start)
	return row
}

// ExecContext выполняет запрос без результата с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.record(query, err, start)
	return result, err
}

// BeginTx начинает транзакцию. Запросы внутри неё тоже попадают в метрики.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, db: d}, nil
}

func (d *DB) record(query string, err error, start time.Time) {
	if d.metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordDBQuery(d.service, operationFromQuery(query), status, time.Since(start).Seconds())
}

// collectPoolStats периодически снимает статистику connection pool
func (d *DB) collectPoolStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if d.metrics != nil {
				d.metrics.UpdateDBPoolStats(d.service, d.db.Stats())
			}
		}
	}
}

// operationFromQuery извлекает тип операции (SELECT, INSERT, ...) для label
func operationFromQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToUpper(fields[0])
}

// Tx транзакция с записью метрик каждого запроса
type Tx struct {
	tx *sql.Tx
	db *DB
}

// QueryContext выполняет запрос внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.db.record(query, err, start)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.db.record(query, row.Err(), start)
	return row
}

// ExecContext выполняет запрос без результата внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.db.record(query, err, start)
	return result, err
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.db.record("COMMIT", err, start)
	return err
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
