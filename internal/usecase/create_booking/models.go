package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date           time.Time   // дата бронирования (без времени)
	StartSlotIndex int         // позиция стартового слота в сетке дня
	SlotCount      int         // длина непрерывного диапазона, >= 1
	Lane           domain.Lane // линия бронирования

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Note          *string

	// ClientRequestID опциональный идемпотентный ключ: повторная отправка
	// того же логического запроса возвращает уже созданное бронирование
	ClientRequestID *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	BookingDate    time.Time
	StartSlotIndex int
	SlotCount      int
	StartTime      types.TimeString
	Status         string
	Lane           domain.Lane

	// ManageToken секрет для самостоятельной отмены/переноса
	ManageToken string

	// AlreadyExisted true, если запрос был опознан по идемпотентному ключу
	// и вернулось ранее созданное бронирование
	AlreadyExisted bool

	CreatedAt time.Time
}

func toResponse(b *domain.Booking, alreadyExisted bool) *Response {
	startTime, _ := domain.SlotTimeAt(b.StartSlotIndex)

	return &Response{
		ID:             b.ID,
		BookingDate:    b.BookingDate,
		StartSlotIndex: b.StartSlotIndex,
		SlotCount:      b.SlotCount,
		StartTime:      startTime,
		Status:         string(b.Status),
		Lane:           b.Lane,
		ManageToken:    b.ManageToken,
		AlreadyExisted: alreadyExisted,
		CreatedAt:      b.CreatedAt,
	}
}
