package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// UseCase use case для получения сетки доступности слотов на дату.
// Путь только для чтения: один консистентный снимок активных бронирований,
// никаких блокировок. Допустимо слегка устаревшее чтение - инвариант
// эксклюзивности защищается на пути записи.
type UseCase struct {
	bookingRepo BookingRepository
	window      domain.OperatingWindow
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, window domain.OperatingWindow, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		window:      window,
		logger:      logger,
	}
}

// Execute строит полную сетку (корт x час) на дату: free для свободных
// ячеек, иначе статус занимающего бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := uc.bookingRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list bookings for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// Статусы занятых ячеек
	occupied := make(map[string]domain.SlotStatus, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		occupied[b.SlotKey()] = slotStatus(b.Status)
	}

	slots := make([]Slot, 0, uc.window.Courts*uc.window.Hours())
	for court := 1; court <= uc.window.Courts; court++ {
		for hour := uc.window.OpenHour; hour < uc.window.CloseHour; hour++ {
			status, ok := occupied[domain.SlotKey(court, hour)]
			if !ok {
				status = domain.SlotFree
			}
			slots = append(slots, Slot{Court: court, Hour: hour, Status: status})
		}
	}

	uc.logger.Info("GetAvailability: date=%s, %d slots, %d occupied",
		req.Date.Format(domain.DateFormat), len(slots), len(occupied))

	return &Response{Date: req.Date, Slots: slots}, nil
}

func slotStatus(status domain.BookingStatus) domain.SlotStatus {
	if status == domain.StatusCheckedIn {
		return domain.SlotCheckedIn
	}
	return domain.SlotBooked
}
