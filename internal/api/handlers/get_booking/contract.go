package get_booking

import (
	"context"

	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, bookingID string, actor models.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
