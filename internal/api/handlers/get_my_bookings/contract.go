package get_my_bookings

import (
	"context"

	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

type BookingsService interface {
	GetUserBookings(ctx context.Context, userID string) (*models.BookingListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
