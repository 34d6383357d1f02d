package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	"github.com/m04kA/CourtBook-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CourtBook-ReservationService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"booking_date",
	"court",
	"hour",
	"status",
	"note",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом booked.
// ID генерируется на стороне сервиса (UUID).
//
// Эксклюзивность слота обеспечивает частичный уникальный индекс
// bookings_active_slot_unique: конкурентная вставка в занятый слот
// вернет ErrSlotTaken независимо от того, что увидела предшествующая
// проверка. Это последний рубеж инварианта, держится на уровне БД,
// поэтому работает и при нескольких экземплярах сервиса.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"booking_date",
			"court",
			"hour",
			"status",
			"note",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.Date,
			booking.Court,
			booking.Hour,
			booking.Status,
			booking.Note,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		if isLockTimeout(err) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы смена статуса
// не гонялась с конкурентной отменой или check-in.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isLockTimeout(err) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveBySlot получает активное бронирование, занимающее слот
// (booking_date, court, hour). Возвращает ErrBookingNotFound, если слот
// свободен. Внутри транзакции блокирует строку (FOR UPDATE) - это
// сериализационная единица пути Reserve/Cancel на один слот.
func (r *Repository) GetActiveBySlot(ctx context.Context, date time.Time, court, hour int) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": date,
			"court":        court,
			"hour":         hour,
		}).
		Where(squirrel.Eq{"status": activeStatusStrings()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isLockTimeout(err) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: GetActiveBySlot - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveByDate получает все активные бронирования на дату.
// Используется для построения сетки доступности.
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": date,
			"status":       activeStatusStrings(),
		}).
		OrderBy("court ASC, hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListActiveByUserAndDate получает активные бронирования пользователя на дату
func (r *Repository) ListActiveByUserAndDate(ctx context.Context, userID string, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"user_id":      userID,
			"booking_date": date,
			"status":       activeStatusStrings(),
		}).
		OrderBy("court ASC, hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByUserAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByUserAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByUserID получает историю бронирований пользователя независимо от
// статуса, новые сверху
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, hour DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListWithUsers получает бронирования с именами владельцев для админской
// панели. Для конкретной даты сортирует по корту и часу, иначе новые сверху.
func (r *Repository) ListWithUsers(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingWithUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.user_id",
		"b.booking_date",
		"b.court",
		"b.hour",
		"b.status",
		"b.note",
		"b.canceled_at",
		"b.created_at",
		"b.updated_at",
		"u.name",
	).
		From("bookings b").
		Join("users u ON u.id = b.user_id")

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"b.booking_date": *filter.Date}).
			OrderBy("b.court ASC, b.hour ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.booking_date DESC, b.hour DESC")
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": activeStatusStrings()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithUser, 0)
	for rows.Next() {
		var item domain.BookingWithUser
		var note sql.NullString
		var canceledAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Date,
			&item.Court,
			&item.Hour,
			&item.Status,
			&note,
			&canceledAt,
			&createdAt,
			&updatedAt,
			&item.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithUsers - scan row: %v", ErrScanRow, err)
		}

		if note.Valid {
			item.Note = &note.String
		}
		if canceledAt.Valid {
			item.CanceledAt = &canceledAt.Time
		}
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithUsers - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус бронирования и возвращает обновленную запись
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(bookingColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Cancel переводит бронирование в статус canceled, фиксируя момент отмены.
// Запись не удаляется - история бронирований пользователя сохраняется.
func (r *Repository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCanceled).
		Set("canceled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(bookingColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var note sql.NullString
	var canceledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Date,
		&booking.Court,
		&booking.Hour,
		&booking.Status,
		&note,
		&canceledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if note.Valid {
		booking.Note = &note.String
	}
	if canceledAt.Valid {
		booking.CanceledAt = &canceledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
