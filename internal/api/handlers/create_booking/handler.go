package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
	reserveSlot "github.com/m04kA/CourtBook-ReservationService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlot        = "запрошенный слот вне рабочей сетки или в прошлом"
	msgSlotTaken          = "слот уже занят"
	msgContention         = "слот обрабатывается другим запросом, попробуйте ещё раз"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidRequestBody)
		return
	}

	// UserID берём только из токена, тело запроса им управлять не может
	useCaseReq, err := req.ToUseCaseRequest(identity.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %q", req.Date)
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%s, date=%s, court=%d, hour=%d",
				identity.UserID, req.Date, req.Court, req.Hour)
			handlers.RespondError(w, http.StatusConflict, handlers.KindSlotTaken, msgSlotTaken)

		case errors.Is(err, reserveSlot.ErrContention):
			h.logger.Warn("POST /bookings - Contention: user_id=%s, date=%s, court=%d, hour=%d",
				identity.UserID, req.Date, req.Court, req.Hour)
			handlers.RespondError(w, http.StatusConflict, handlers.KindContention, msgContention)

		case errors.Is(err, reserveSlot.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: user_id=%s, date=%s, court=%d, hour=%d",
				identity.UserID, req.Date, req.Court, req.Hour)
			handlers.RespondBadRequest(w, handlers.KindInvalidSlot, msgInvalidSlot)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s", identity.UserID)
			handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: user_id=%s, date=%s, court=%d, hour=%d, error=%v",
				identity.UserID, req.Date, req.Court, req.Hour, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, user_id=%s, date=%s, court=%d, hour=%d",
		result.ID, identity.UserID, req.Date, req.Court, req.Hour)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
