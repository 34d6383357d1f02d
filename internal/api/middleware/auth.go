package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
)

type Logger interface {
	Warn(format string, v ...any)
}

// Auth проверяет Bearer токен и кладёт идентичность пользователя в контекст
func Auth(secret string, logs Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handlers.RespondUnauthorized(w, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				handlers.RespondUnauthorized(w, "invalid authorization header format")
				return
			}

			identity, err := auth.ParseToken(secret, token)
			if err != nil {
				logs.Warn("middleware.Auth: invalid token: %v", err)
				handlers.RespondUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
