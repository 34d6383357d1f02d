package cancel_booking

import (
	"context"

	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, bookingID string, actor models.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
