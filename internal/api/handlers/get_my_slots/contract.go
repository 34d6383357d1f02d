package get_my_slots

import (
	"context"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

type BookingsService interface {
	GetMySlots(ctx context.Context, userID string, date time.Time) (*models.MySlotsResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
