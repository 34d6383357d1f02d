package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием.
	// Сюда транслируется нарушение частичного уникального индекса
	// bookings_active_slot_unique (код PostgreSQL 23505).
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrLockTimeout возвращается, когда ожидание блокировки строки превысило
	// lock_timeout (код PostgreSQL 55P03)
	ErrLockTimeout = errors.New("booking.repository: lock wait timeout")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// isUniqueViolation проверяет нарушение уникального ограничения (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isLockTimeout проверяет превышение lock_timeout (55P03)
func isLockTimeout(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "55P03"
}
