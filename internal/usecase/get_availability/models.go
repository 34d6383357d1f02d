package get_availability

import (
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// Request модель запроса на получение сетки доступности
type Request struct {
	Date time.Time // Дата, на которую запрашивается сетка
}

// Response модель ответа с сеткой доступности
type Response struct {
	Date  time.Time
	Slots []Slot
}

// Slot статус одной ячейки сетки (корт, час)
type Slot struct {
	Court  int
	Hour   int
	Status domain.SlotStatus
}
