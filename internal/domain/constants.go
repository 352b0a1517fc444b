package domain

// Default configuration values
const (
	DefaultStandardWindowDays = 30 // standard lane availability window
	DefaultAcuteWindowDays    = 14 // expedited lane availability window
	DefaultShortNoticeHours   = 24 // cancellations inside this window carry an advisory flag
	DefaultMaxSamples         = 200
	DefaultMinSamples         = 3
	DefaultEstimateInterval   = 40.0
	DefaultEstimateMinPrice   = 80.0
	DefaultEstimateMaxPrice   = 600.0
)

// Business validation constants
const (
	MinSlotCount        = 1
	MinDayCount         = 1
	MaxDayCount         = 90
	MinBoardCount       = 1
	MaxBoardCount       = 20
	MaxNoteLength       = 500
	MaxClientRequestLen = 64
	ManageTokenByteSize = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses excluded when computing blocked slots
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses statuses that occupy slots
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
