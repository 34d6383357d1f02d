package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/booking"
)

// UseCase use case для бронирования слота.
// Единственный путь записи, требующий настоящего контроля конкурентности:
// несколько пользователей могут одновременно претендовать на один слот.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	window       domain.OperatingWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	window domain.OperatingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование слота.
//
// Сериализационная единица - конкретный слот (дата, корт, час), а не
// глобальная блокировка: несвязанные слоты бронируются параллельно.
// Внутри сериализуемой транзакции строка активного бронирования слота
// блокируется (FOR UPDATE), инвариант эксклюзивности перепроверяется,
// и только затем выполняется вставка. Частичный уникальный индекс в БД
// страхует инвариант при конкурирующих вставках в свободный слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Reserve: user=%s, date=%s, court=%d, hour=%d",
		req.UserID, req.Date.Format(domain.DateFormat), req.Court, req.Hour)

	// 1. Валидация до обращения к хранилищу
	now := uc.timeProvider.Now()
	if err := validateRequest(req, uc.window, now); err != nil {
		uc.logger.Warn("Reserve: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Критическая секция на слот
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Перепроверяем занятость слота под блокировкой
		existing, err := uc.bookingRepo.GetActiveBySlot(txCtx, req.Date, req.Court, req.Hour)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			if errors.Is(err, bookingRepo.ErrLockTimeout) {
				uc.logger.Warn("Reserve: lock contention on slot date=%s court=%d hour=%d",
					req.Date.Format(domain.DateFormat), req.Court, req.Hour)
				return ErrContention
			}
			uc.logger.Error("Reserve: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		if existing != nil {
			uc.logger.Warn("Reserve: slot taken by booking id=%s", existing.ID)
			return ErrSlotTaken
		}

		// 2.2. Слот свободен - создаем бронирование
		booking := &domain.Booking{
			UserID: req.UserID,
			Date:   req.Date,
			Court:  req.Court,
			Hour:   req.Hour,
			Status: domain.StatusBooked,
			Note:   req.Note,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Проигрыш гонки на вставке: уникальный индекс сработал раньше
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("Reserve: lost insert race on slot date=%s court=%d hour=%d",
					req.Date.Format(domain.DateFormat), req.Court, req.Hour)
				return ErrSlotTaken
			}
			if errors.Is(err, bookingRepo.ErrLockTimeout) {
				return ErrContention
			}
			uc.logger.Error("Reserve: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("Reserve: successfully created booking id=%s", result.ID)

	// 3. Уведомляем потребителей после коммита
	uc.notifier.AvailabilityChanged(ctx, req.Date)

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		Date:      result.Date,
		Court:     result.Court,
		Hour:      result.Hour,
		Status:    string(result.Status),
		Note:      result.Note,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
