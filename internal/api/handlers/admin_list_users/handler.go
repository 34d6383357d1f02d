package admin_list_users

import (
	"net/http"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
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

// Handle GET /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
