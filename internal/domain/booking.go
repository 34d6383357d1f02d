package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCanceled  BookingStatus = "canceled"
)

// Booking represents a court reservation in the system.
// The slot triple (Date, Court, Hour) is immutable after creation;
// moving a booking means cancelling it and creating a new one.
type Booking struct {
	ID     string
	UserID string

	Date  time.Time
	Court int
	Hour  int

	Status BookingStatus
	Note   *string

	CanceledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusBooked || b.Status == StatusCheckedIn
}

// CanBeCanceled returns true if the booking can still be cancelled
func (b *Booking) CanBeCanceled() bool {
	return b.Status == StatusBooked
}

// CanBeCheckedIn returns true if the booking can be marked as checked in
func (b *Booking) CanBeCheckedIn() bool {
	return b.Status == StatusBooked
}

// IsTerminal returns true if no further status transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCheckedIn || b.Status == StatusCanceled
}

// SlotKey returns the "court:hour" key used by the wire contract
func (b *Booking) SlotKey() string {
	return SlotKey(b.Court, b.Hour)
}

// BookingWithUser бронирование с данными владельца (для админского списка)
type BookingWithUser struct {
	Booking
	UserName string
}

// BookingsFilter фильтр для получения бронирований (админский список)
type BookingsFilter struct {
	Date            *time.Time // Конкретная дата (опционально, если nil - все даты)
	IncludeInactive bool       // Включать ли отменённые бронирования
}
