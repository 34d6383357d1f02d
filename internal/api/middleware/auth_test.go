package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBook-ReservationService/internal/api/handlers"
	"github.com/m04kA/CourtBook-ReservationService/internal/auth"
	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuth_MissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine", nil)

	Auth(testSecret, nopLogger{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.KindUnauthenticated, decodeError(t, rec).Kind)
}

func TestAuth_MalformedHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine", nil)
	req.Header.Set("Authorization", "Basic abc123")

	Auth(testSecret, nopLogger{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	Auth(testSecret, nopLogger{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.KindUnauthenticated, decodeError(t, rec).Kind)
}

func TestAuth_ValidToken(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleUser}
	token, err := auth.CreateToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	var captured auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		captured = identity
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	Auth(testSecret, nopLogger{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", captured.UserID)
	assert.False(t, captured.IsAdmin())
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)

		RequireAdmin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("regular user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)
		ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: "user-1", Role: domain.RoleUser})

		RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, handlers.KindForbidden, decodeError(t, rec).Kind)
	})

	t.Run("admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)
		ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: "admin-1", Role: domain.RoleAdmin})

		RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
