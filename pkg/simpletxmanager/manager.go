package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/m04kA/CourtBook-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CourtBook-ReservationService/pkg/txmanager"
)

const (
	maxRetries       = 3
	retryBaseBackoff = 10 * time.Millisecond
)

// TransactionManager вариант txmanager.TransactionManager для чистого *sql.DB
// (без обёртки метрик). Логика идентична.
type TransactionManager struct {
	db          *sql.DB
	lockTimeout time.Duration
}

// NewTransactionManager создает transaction manager поверх *sql.DB
func NewTransactionManager(db *sql.DB, lockTimeout time.Duration) *TransactionManager {
	return &TransactionManager{db: db, lockTimeout: lockTimeout}
}

// DoSerializable выполняет fn внутри сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return m.runOnce(ctx, fn)
	})
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	if m.lockTimeout > 0 {
		setLockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, setLockTimeout); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("simpletxmanager: set lock_timeout: %w", err)
		}
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		if txmanager.IsSerializationFailure(err) {
			return retry.RetryableError(err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return retry.RetryableError(fmt.Errorf("simpletxmanager: commit: %w", err))
		}
		return fmt.Errorf("simpletxmanager: commit: %w", err)
	}

	return nil
}
