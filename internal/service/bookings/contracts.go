package bookings

import (
	"context"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListActiveByUserAndDate(ctx context.Context, userID string, date time.Time) ([]*domain.Booking, error)
	ListWithUsers(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingWithUser, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс уведомлений об изменении доступности
type Notifier interface {
	AvailabilityChanged(ctx context.Context, date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
