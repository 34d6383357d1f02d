package reserve_slot

import "time"

// Request модель запроса на бронирование слота
type Request struct {
	UserID string    // Проверенный ID пользователя (из identity запроса)
	Date   time.Time // Дата бронирования (без времени)
	Court  int       // Номер корта
	Hour   int       // Час начала слота
	Note   *string   // Заметка (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID     string
	UserID string
	Date   time.Time
	Court  int
	Hour   int
	Status string
	Note   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
