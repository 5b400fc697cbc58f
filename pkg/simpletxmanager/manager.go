package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/slotly/appointment-service/pkg/dbmetrics"
	"github.com/slotly/appointment-service/pkg/txmanager"
)

const (
	maxSerializableRetries = 3
	retryBackoff           = 10 * time.Millisecond
)

// TransactionManager вариант transaction manager для работы без метрик,
// поверх обычного *sql.DB. Семантика совпадает с pkg/txmanager.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает transaction manager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn внутри транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, nil, fn)
}

// DoSerializable выполняет fn внутри SERIALIZABLE транзакции с повтором
// при serialization failures. Ошибки с неизвестным исходом не повторяются.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; ; attempt++ {
		err = m.do(ctx, opts, fn)
		if err == nil || !txmanager.IsSerializationFailure(err) || attempt >= maxSerializableRetries {
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
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTransaction, err)
	}

	wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}
	if err := fn(dbmetrics.WithTx(ctx, wrapped)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", txmanager.ErrCommitTransaction, err)
	}

	return nil
}
