package models

import (
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// Actor проверенная личность, выполняющая операцию
type Actor struct {
	UserID  string
	IsAdmin bool
}

// GetAdminBookingsRequest запрос на админский список бронирований
type GetAdminBookingsRequest struct {
	Date            *time.Time // Фильтр по дате (опционально)
	IncludeInactive bool       // Включать ли отменённые бронирования
}

// BookingResponse ответ с данными бронирования.
// Имена полей - стабильный wire-контракт, переименование ломает клиентов.
type BookingResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	Date       string  `json:"date"` // "2025-06-01"
	Court      int     `json:"court"`
	Hour       int     `json:"hour"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
	CanceledAt *string `json:"canceledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// MySlotsResponse ответ со слотами пользователя на дату
type MySlotsResponse struct {
	Mine []string `json:"mine"` // ["court:hour", ...]
}

// AdminBookingItem строка админского списка бронирований
type AdminBookingItem struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Court    int     `json:"court"`
	Hour     int     `json:"hour"`
	Status   string  `json:"status"`
	UserName string  `json:"userName"`
	Note     *string `json:"note,omitempty"`
}

// AdminBookingListResponse ответ с админским списком бронирований
type AdminBookingListResponse struct {
	Bookings []AdminBookingItem `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Date:      b.Date.Format(domain.DateFormat),
		Court:     b.Court,
		Hour:      b.Hour,
		Status:    string(b.Status),
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CanceledAt != nil {
		canceledStr := b.CanceledAt.Format(time.RFC3339)
		resp.CanceledAt = &canceledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainBookingWithUser конвертирует domain модель в админскую строку
func FromDomainBookingWithUser(b *domain.BookingWithUser) AdminBookingItem {
	return AdminBookingItem{
		ID:       b.ID,
		Date:     b.Date.Format(domain.DateFormat),
		Court:    b.Court,
		Hour:     b.Hour,
		Status:   string(b.Status),
		UserName: b.UserName,
		Note:     b.Note,
	}
}
