package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
