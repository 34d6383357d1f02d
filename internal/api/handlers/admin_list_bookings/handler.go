package admin_list_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/admin/bookings?date=YYYY-MM-DD&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetAdminBookingsRequest{
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.service.GetAdminBookings(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
