package register_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	authsvc "github.com/m04kA/CourtBook-ReservationService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmailTaken         = "пользователь с таким email уже существует"
	msgInvalidInput       = "некорректные данные регистрации"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailTaken):
			h.logger.Warn("POST /auth/register - Email taken: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, handlers.KindEmailTaken, msgEmailTaken)

		case errors.Is(err, authsvc.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid input: email=%s", req.Email)
			handlers.RespondBadRequest(w, handlers.KindInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/register - Failed to register: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
