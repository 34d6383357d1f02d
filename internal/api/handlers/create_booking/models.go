package create_booking

import (
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	reserveSlot "github.com/m04kA/CourtBook-ReservationService/internal/usecase/reserve_slot"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date  string  `json:"date"` // "2025-06-01"
	Court int     `json:"court"`
	Hour  int     `json:"hour"`
	Note  *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Court     int       `json:"court"`
	Hour      int       `json:"hour"`
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*reserveSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		UserID: userID,
		Date:   date,
		Court:  r.Court,
		Hour:   r.Hour,
		Note:   r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		Date:      resp.Date.Format(domain.DateFormat),
		Court:     resp.Court,
		Hour:      resp.Hour,
		Status:    resp.Status,
		Note:      resp.Note,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
}
