package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: отмена, check-in,
// история пользователя, админские списки
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// Cancel отменяет бронирование: booked -> canceled.
// Владелец отменяет свое бронирование, администратор - любое.
// Выполняется в той же критической секции на слот, что и Reserve:
// отмена и новое бронирование на освободившийся слот не перемешиваются.
// После успешной отмены слот немедленно свободен.
func (s *Service) Cancel(ctx context.Context, bookingID string, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%s by user=%s (admin=%t)", bookingID, actor.UserID, actor.IsAdmin)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем строку бронирования (FOR UPDATE внутри транзакции)
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}

		// Проверка владельца: не владелец и не администратор - отказ
		if booking.UserID != actor.UserID && !actor.IsAdmin {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}

		// Из checked_in и canceled переходов нет
		if !booking.CanBeCanceled() {
			s.logger.Warn("Cancel: invalid transition for booking id=%s, status=%s", bookingID, booking.Status)
			return ErrInvalidTransition
		}

		canceled, err := s.bookingRepo.Cancel(txCtx, bookingID)
		if err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}

		result = canceled
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully canceled booking id=%s", bookingID)

	// Слот освободился - уведомляем потребителей
	s.notifier.AvailabilityChanged(ctx, result.Date)

	return models.FromDomainBooking(result), nil
}

// CheckIn отмечает прибытие: booked -> checked_in. Только для администратора.
// Занятость слота не меняется, уведомление не отправляется.
func (s *Service) CheckIn(ctx context.Context, bookingID string, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%s by admin=%s", bookingID, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("CheckIn: access denied for user=%s", actor.UserID)
		return nil, ErrAccessDenied
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return s.mapRepoError("CheckIn", bookingID, err)
		}

		if !booking.CanBeCheckedIn() {
			s.logger.Warn("CheckIn: invalid transition for booking id=%s, status=%s", bookingID, booking.Status)
			return ErrInvalidTransition
		}

		updated, err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCheckedIn)
		if err != nil {
			return s.mapRepoError("CheckIn", bookingID, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: successfully checked in booking id=%s", bookingID)
	return models.FromDomainBooking(result), nil
}

// GetByID получает бронирование по ID.
// Пользователь видит только свое бронирование, администратор - любое.
func (s *Service) GetByID(ctx context.Context, bookingID string, actor models.Actor) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapRepoError("GetByID", bookingID, err)
	}

	if booking.UserID != actor.UserID && !actor.IsAdmin {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя независимо от
// статуса, новые сверху
func (s *Service) GetUserBookings(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMySlots получает слоты, занятые пользователем на дату.
// Используется интерфейсом для различения "мои" и "занятые другими".
func (s *Service) GetMySlots(ctx context.Context, userID string, date time.Time) (*models.MySlotsResponse, error) {
	bookings, err := s.bookingRepo.ListActiveByUserAndDate(ctx, userID, date)
	if err != nil {
		s.logger.Error("GetMySlots: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMySlots - repository error: %v", ErrInternal, err)
	}

	mine := make([]string, 0, len(bookings))
	for _, b := range bookings {
		mine = append(mine, b.SlotKey())
	}

	return &models.MySlotsResponse{Mine: mine}, nil
}

// GetAdminBookings получает бронирования с именами владельцев для
// админской панели, опционально по дате
func (s *Service) GetAdminBookings(ctx context.Context, req *models.GetAdminBookingsRequest) (*models.AdminBookingListResponse, error) {
	filter := domain.BookingsFilter{
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	}

	bookings, err := s.bookingRepo.ListWithUsers(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminBookings - repository error: %v", ErrInternal, err)
	}

	items := make([]models.AdminBookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, models.FromDomainBookingWithUser(b))
	}

	s.logger.Info("GetAdminBookings: fetched %d bookings", len(items))
	return &models.AdminBookingListResponse{Bookings: items}, nil
}

// mapRepoError транслирует ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(op, bookingID string, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%s not found", op, bookingID)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrLockTimeout):
		s.logger.Warn("%s: lock contention on booking id=%s", op, bookingID)
		return ErrContention
	default:
		s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
