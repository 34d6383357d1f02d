package checkin_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
	bookingsvc "github.com/m04kA/CourtBook-ReservationService/internal/service/bookings"
	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

const (
	msgBookingNotFound   = "бронирование не найдено"
	msgAccessDenied      = "отметка посещения доступна только администратору"
	msgInvalidTransition = "бронирование нельзя отметить посещённым в текущем статусе"
	msgContention        = "бронирование обрабатывается другим запросом, попробуйте ещё раз"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	actor := models.Actor{UserID: identity.UserID, IsAdmin: identity.IsAdmin()}

	result, err := h.service.CheckIn(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookingsvc.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/checkin - Not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsvc.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/checkin - Access denied: booking_id=%s, user_id=%s",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsvc.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/checkin - Invalid transition: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.KindInvalidTransition, msgInvalidTransition)

		case errors.Is(err, bookingsvc.ErrContention):
			h.logger.Warn("PATCH /bookings/{id}/checkin - Contention: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.KindContention, msgContention)

		default:
			h.logger.Error("PATCH /bookings/{id}/checkin - Failed to check in: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/checkin - Booking checked in: booking_id=%s, admin_id=%s",
		bookingID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
