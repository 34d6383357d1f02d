package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/m04kA/CourtBook-ReservationService/pkg/dbmetrics"
)

const (
	maxRetries       = 3
	retryBaseBackoff = 10 * time.Millisecond
)

// TxBeginner интерфейс для начала инструментированных транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри сериализуемых транзакций.
// Сериализационные сбои (40001, 40P01) повторяются с экспоненциальной задержкой:
// это безопасно, так как при сбое транзакция ничего не зафиксировала.
type TransactionManager struct {
	db          TxBeginner
	lockTimeout time.Duration
}

// NewTransactionManager создает новый transaction manager.
// lockTimeout ограничивает ожидание блокировок внутри транзакции (0 - без ограничения).
func NewTransactionManager(db TxBeginner, lockTimeout time.Duration) *TransactionManager {
	return &TransactionManager{db: db, lockTimeout: lockTimeout}
}

// DoSerializable выполняет fn внутри сериализуемой транзакции.
// Транзакция передается через контекст (dbmetrics.WithExecutor),
// репозитории автоматически используют её.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return m.runOnce(ctx, fn)
	})
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	if m.lockTimeout > 0 {
		setLockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, setLockTimeout); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("txmanager: set lock_timeout: %w", err)
		}
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		if IsSerializationFailure(err) {
			return retry.RetryableError(err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return retry.RetryableError(fmt.Errorf("txmanager: commit: %w", err))
		}
		return fmt.Errorf("txmanager: commit: %w", err)
	}

	return nil
}

// IsSerializationFailure возвращает true для ошибок, при которых транзакцию
// можно безопасно повторить (serialization_failure, deadlock_detected)
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
