package get_my_bookings

import (
	"net/http"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
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

// Handle GET /api/v1/bookings/mine
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("GET /bookings/mine - Failed to list bookings: user_id=%s, error=%v",
			identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	// Контракт отдает историю плоским массивом, новые сверху
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
