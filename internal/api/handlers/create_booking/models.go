package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingDate    string `json:"bookingDate"` // "2026-01-15"
	StartSlotIndex int    `json:"startSlotIndex"`
	SlotCount      int    `json:"slotCount"`
	Lane           string `json:"lane,omitempty"` // standard (default) | acute

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Note          *string `json:"note,omitempty"`

	// ClientRequestID идемпотентный ключ: повторная отправка того же ключа
	// возвращает ранее созданное бронирование вместо дубля
	ClientRequestID *string `json:"clientRequestId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64  `json:"id"`
	BookingDate    string `json:"bookingDate"`
	StartSlotIndex int    `json:"startSlotIndex"`
	StartTime      string `json:"startTime"`
	SlotCount      int    `json:"slotCount"`
	Status         string `json:"status"`
	Lane           string `json:"lane"`

	// ManageToken показывается клиенту ровно один раз, при создании
	ManageToken string `json:"manageToken"`

	AlreadyExisted bool   `json:"alreadyExisted,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	lane := domain.Lane(r.Lane)
	if r.Lane == "" {
		lane = domain.LaneStandard
	}

	return &createBooking.Request{
		Date:            bookingDate,
		StartSlotIndex:  r.StartSlotIndex,
		SlotCount:       r.SlotCount,
		Lane:            lane,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Note:            r.Note,
		ClientRequestID: r.ClientRequestID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		BookingDate:    resp.BookingDate.Format(domain.DateFormat),
		StartSlotIndex: resp.StartSlotIndex,
		StartTime:      resp.StartTime.String(),
		SlotCount:      resp.SlotCount,
		Status:         resp.Status,
		Lane:           string(resp.Lane),
		ManageToken:    resp.ManageToken,
		AlreadyExisted: resp.AlreadyExisted,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
