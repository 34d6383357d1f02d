package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые виды ошибок - стабильный wire-контракт.
// Клиент после любой ошибки мутации перечитывает доступность.
const (
	KindUnauthenticated   = "unauthenticated"
	KindForbidden         = "forbidden"
	KindInvalidSlot       = "invalid_slot"
	KindSlotTaken         = "slot_taken"
	KindInvalidTransition = "invalid_transition"
	KindNotFound          = "not_found"
	KindContention        = "contention"
	KindInvalidInput      = "invalid_input"
	KindEmailTaken        = "email_taken"
	KindInternal          = "internal"
)

// ErrorResponse тело ответа об ошибке
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в v, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ответ об ошибке с машиночитаемым видом
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

// RespondBadRequest отправляет 400 с указанным видом ошибки
func RespondBadRequest(w http.ResponseWriter, kind, message string) {
	RespondError(w, http.StatusBadRequest, kind, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthenticated, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindForbidden, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondInternalError отправляет 500 с общим сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, "internal server error")
}
