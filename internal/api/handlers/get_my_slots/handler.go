package get_my_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

const (
	msgMissingDate = "параметр date обязателен"
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

// Handle GET /api/v1/slots/mine?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/mine - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.service.GetMySlots(r.Context(), identity.UserID, date)
	if err != nil {
		h.logger.Error("GET /slots/mine - Failed to list slots: user_id=%s, date=%s, error=%v",
			identity.UserID, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
