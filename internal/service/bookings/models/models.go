package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования по manage-токену
type CancelBookingRequest struct {
	ManageToken string `json:"manageToken"`
}

// RescheduleRequest заявка на перенос бронирования по manage-токену
// Сам слот при этом не меняется - заявка уходит оператору
type RescheduleRequest struct {
	ManageToken string `json:"manageToken"`
	Note        string `json:"note,omitempty"`
}

// GetBookingsRequest запрос на получение бронирований с фильтрацией
// Используется административным списком заказов
type GetBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// SetAcceptedPriceRequest запрос на фиксацию принятого ценового диапазона
type SetAcceptedPriceRequest struct {
	PriceMin float64 `json:"priceMin"`
	PriceMax float64 `json:"priceMax"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CancelBookingResponse результат отмены бронирования
type CancelBookingResponse struct {
	BookingID        int64  `json:"bookingId"`
	Status           string `json:"status"`
	AlreadyCancelled bool   `json:"alreadyCancelled"`

	// ShortNotice выставляется, когда отмена пришла ближе 24 часов
	// к началу слота. Флаг консультативный, отмену не блокирует
	ShortNotice bool `json:"shortNotice"`
}

// BookingResponse ответ с данными бронирования
// manage-токен наружу не отдаётся: это секрет клиента, а не атрибут заказа
type BookingResponse struct {
	ID             int64  `json:"id"`
	BookingDate    string `json:"bookingDate"` // "2026-01-15"
	StartSlotIndex int    `json:"startSlotIndex"`
	StartTime      string `json:"startTime"` // "09:00"
	SlotCount      int    `json:"slotCount"`
	Status         string `json:"status"`
	Lane           string `json:"lane"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Note          *string `json:"note,omitempty"`

	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartSlotIndex: b.StartSlotIndex,
		SlotCount:      b.SlotCount,
		Status:         string(b.Status),
		Lane:           string(b.Lane),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		Note:           b.Note,
		PriceMin:       b.PriceMin,
		PriceMax:       b.PriceMax,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if startTime, ok := domain.SlotTimeAt(b.StartSlotIndex); ok {
		resp.StartTime = startTime.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
