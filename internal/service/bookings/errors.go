package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимой смене статуса:
	// из checked_in и canceled переходов нет
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrContention возвращается, когда не удалось получить блокировку
	// бронирования за отведенное время
	ErrContention = errors.New("booking lock contention")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
