package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Lane represents the booking lane
type Lane string

const (
	LaneStandard Lane = "standard"
	LaneAcute    Lane = "acute" // expedited, shorter availability window
)

// Booking represents a reserved contiguous slot range on one day.
// Bookings are never physically deleted: cancelled rows stay for history
// and as input to the price estimator.
type Booking struct {
	ID             int64
	BookingDate    time.Time
	StartSlotIndex int
	SlotCount      int
	Status         BookingStatus
	Lane           Lane

	// ManageToken is an opaque bearer credential for self-service
	// cancel/reschedule. Treated as a secret: never logged in full.
	ManageToken string

	// ClientRequestID optional idempotency key supplied by the caller
	ClientRequestID *string

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Note          *string

	// Accepted price band, set when the job is finalized; feeds the estimator
	PriceMin *float64
	PriceMax *float64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// OverlapsRange returns true if the booking's slot range intersects
// [startIndex, startIndex+slotCount)
func (b *Booking) OverlapsRange(startIndex, slotCount int) bool {
	return b.StartSlotIndex < startIndex+slotCount &&
		startIndex < b.StartSlotIndex+b.SlotCount
}

// BookingsFilter filter for loading bookings
type BookingsFilter struct {
	StartDate       *time.Time     // period start (inclusive), nil = unbounded
	EndDate         *time.Time     // period end (inclusive), nil = unbounded
	Status          *BookingStatus // optional exact status
	IncludeInactive bool           // include cancelled bookings
}
