package admin_list_bookings

import (
	"context"

	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

type BookingsService interface {
	GetAdminBookings(ctx context.Context, req *models.GetAdminBookingsRequest) (*models.AdminBookingListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
