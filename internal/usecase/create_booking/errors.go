package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrRangeExceedsDay возвращается, когда диапазон слотов не помещается
	// в открытые слоты дня
	ErrRangeExceedsDay = errors.New("create_booking: slot range exceeds day capacity")

	// ErrSlotConflict возвращается, когда запрошенный диапазон пересекается
	// с существующим бронированием. Вызывающий может перечитать доступность
	// и повторить с другим диапазоном
	ErrSlotConflict = errors.New("create_booking: slot range is no longer available")

	// ErrStoreUnavailable возвращается, когда запись не была надёжно
	// зафиксирована (недоступность или таймаут хранилища). Бронирование
	// не может считаться успешным без durable записи
	ErrStoreUnavailable = errors.New("create_booking: booking store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
