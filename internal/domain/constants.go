package domain

// Default booking configuration values
const (
	DefaultDurationMinutes       = 30
	DefaultSeatCapacity          = 20
	DefaultUnseatedCapacity      = 1
	DefaultSlotStepMinutes       = 30
	DefaultOpenTime              = "09:00"
	DefaultCloseTime             = "18:00"
	DefaultReminderOffsetMinutes = 30
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MaxSeatCapacity             = 100
	MaxUnseatedCapacity         = 50
	MinSlotStepMinutes          = 5
	MaxReminderOffsetMinutes    = 1440
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinRating                   = 1
	MaxRating                   = 5
	MaxOccupancyWindowDays      = 31
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that block a time range
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses never block a time range
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
