package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/slotly/appointment-service/pkg/dbmetrics"
)

var (
	ErrBeginTransaction  = errors.New("failed to begin transaction")
	ErrCommitTransaction = errors.New("failed to commit transaction")
)

const (
	maxSerializableRetries = 3
	retryBackoff           = 10 * time.Millisecond
)

// TransactionManager управляет транзакциями поверх обёрнутого в метрики соединения
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает transaction manager
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn внутри транзакции с уровнем изоляции по умолчанию.
// Транзакция доступна репозиториям через контекст.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, nil, fn)
}

// DoSerializable выполняет fn внутри SERIALIZABLE транзакции.
// Serialization failures (40001) и deadlocks (40P01) повторяются ограниченное
// число раз: такая транзакция гарантированно не была зафиксирована. Ошибки с
// неизвестным исходом (обрыв соединения) не повторяются.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; ; attempt++ {
		err = m.do(ctx, opts, fn)
		if err == nil || !IsSerializationFailure(err) || attempt >= maxSerializableRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * retryBackoff):
		}
	}
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTransaction, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTransaction, err)
	}

	return nil
}

// IsSerializationFailure сообщает, вызвана ли ошибка конфликтом сериализации
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
