package domain

// Default operating window (overridable via config)
const (
	DefaultOpenHour  = 9
	DefaultCloseHour = 21
	DefaultCourts    = 6
)

// Business validation constants
const (
	MaxNoteLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование занимает слот.
// Используется для фильтрации при расчёте доступности.
var ActiveStatuses = []BookingStatus{
	StatusBooked,
	StatusCheckedIn,
}

// AllStatuses список всех допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusBooked,
	StatusCheckedIn,
	StatusCanceled,
}
