package reserve_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до любого обращения к хранилищу.
func validateRequest(req *Request, window domain.OperatingWindow, now time.Time) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if !window.ContainsCourt(req.Court) {
		return fmt.Errorf("%w: court %d does not exist", ErrInvalidSlot, req.Court)
	}

	if !window.ContainsHour(req.Hour) {
		return fmt.Errorf("%w: hour %d is outside operating window [%d, %d)",
			ErrInvalidSlot, req.Hour, window.OpenHour, window.CloseHour)
	}

	if isDateInPast(req.Date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidSlot)
	}

	// Для сегодняшней даты бронируются только часы, которые еще не начались
	if isSameDay(req.Date, now) && req.Hour <= now.Hour() {
		return fmt.Errorf("%w: hour %d has already started", ErrInvalidSlot, req.Hour)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
