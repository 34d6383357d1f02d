package reserve_slot

import "errors"

var (
	// ErrInvalidSlot возвращается, когда слот вне рабочего окна,
	// дата в прошлом или корт не существует
	ErrInvalidSlot = errors.New("reserve_slot: invalid slot")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("reserve_slot: slot already taken")

	// ErrContention возвращается, когда не удалось получить блокировку слота
	// за отведенное время. Ретраибельно: вызывающий перечитывает доступность
	// и пробует снова.
	ErrContention = errors.New("reserve_slot: slot lock contention")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
