package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingCancelled возвращается при операции над отменённым бронированием
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrLeadDelivery возвращается, когда заявка на перенос не доставлена оператору
	ErrLeadDelivery = errors.New("reschedule lead delivery failed")

	// ErrInvalidStatus возвращается при попытке фильтровать по недопустимому статусу
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
