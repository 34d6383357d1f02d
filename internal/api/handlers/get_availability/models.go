package get_availability

import (
	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/CourtBook-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse статус одной ячейки сетки
type SlotResponse struct {
	Court  int    `json:"court"`
	Hour   int    `json:"hour"`
	Status string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Court:  slot.Court,
			Hour:   slot.Hour,
			Status: string(slot.Status),
		})
	}

	return &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
