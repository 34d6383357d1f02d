package get_availability

import (
	"net/http"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/CourtBook-ReservationService/internal/usecase/get_availability"
)

const (
	msgMissingDate = "параметр date обязателен"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /slots - Failed to build availability: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
