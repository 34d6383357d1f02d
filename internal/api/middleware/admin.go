package middleware

import (
	"net/http"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
)

// RequireAdmin пропускает только пользователей с ролью admin.
// Должен стоять после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "authentication required")
			return
		}

		if !identity.IsAdmin() {
			handlers.RespondForbidden(w, "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
