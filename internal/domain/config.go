package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BookingConfig holds scheduling parameters.
// Resolution order: barber-specific (BarberID set) > shop-wide (BarberID nil) > built-in defaults.
type BookingConfig struct {
	ID                     int64
	BarberID               *int64 // NULL = shop-wide config
	SeatCapacity           int    // numbered seats 1..SeatCapacity
	UnseatedCapacity       int    // concurrent bookings without a seat
	DefaultDurationMinutes int
	SlotStepMinutes        int
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	ReminderOffsetMinutes  int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultBookingConfig returns the built-in configuration
func DefaultBookingConfig() *BookingConfig {
	return &BookingConfig{
		SeatCapacity:           DefaultSeatCapacity,
		UnseatedCapacity:       DefaultUnseatedCapacity,
		DefaultDurationMinutes: DefaultDurationMinutes,
		SlotStepMinutes:        DefaultSlotStepMinutes,
		OpenTime:               DefaultOpenTime,
		CloseTime:              DefaultCloseTime,
		ReminderOffsetMinutes:  DefaultReminderOffsetMinutes,
	}
}

// IsShopWide returns true if this config applies to every barber
func (c *BookingConfig) IsShopWide() bool {
	return c.BarberID == nil
}

// IsValidSeat reports whether seat is within 1..SeatCapacity
func (c *BookingConfig) IsValidSeat(seat int) bool {
	return seat >= 1 && seat <= c.SeatCapacity
}

// AcceptsUnseated reports whether bookings without a seat are allowed at all
func (c *BookingConfig) AcceptsUnseated() bool {
	return c.UnseatedCapacity > 0
}

// ReminderOffset returns how long before the start a reminder is due
func (c *BookingConfig) ReminderOffset() time.Duration {
	return time.Duration(c.ReminderOffsetMinutes) * time.Minute
}

// Validate checks ranges and the opening hours
func (c *BookingConfig) Validate() error {
	switch {
	case c.SeatCapacity < 1 || c.SeatCapacity > MaxSeatCapacity:
		return NewValidationError(fmt.Sprintf("seatCapacity must be between 1 and %d", MaxSeatCapacity))
	case c.UnseatedCapacity < 0 || c.UnseatedCapacity > MaxUnseatedCapacity:
		return NewValidationError(fmt.Sprintf("unseatedCapacity must be between 0 and %d", MaxUnseatedCapacity))
	case c.DefaultDurationMinutes < MinDurationMinutes || c.DefaultDurationMinutes > MaxDurationMinutes:
		return NewValidationError(fmt.Sprintf("defaultDurationMinutes must be between %d and %d", MinDurationMinutes, MaxDurationMinutes))
	case c.SlotStepMinutes < MinSlotStepMinutes || c.SlotStepMinutes > MaxDurationMinutes:
		return NewValidationError(fmt.Sprintf("slotStepMinutes must be between %d and %d", MinSlotStepMinutes, MaxDurationMinutes))
	case c.ReminderOffsetMinutes < 0 || c.ReminderOffsetMinutes > MaxReminderOffsetMinutes:
		return NewValidationError(fmt.Sprintf("reminderOffsetMinutes must be between 0 and %d", MaxReminderOffsetMinutes))
	}

	if err := c.OpenTime.Validate(); err != nil {
		return NewValidationError("openTime must be HH:MM")
	}
	if err := c.CloseTime.Validate(); err != nil {
		return NewValidationError("closeTime must be HH:MM")
	}
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return NewValidationError("openTime must be before closeTime")
	}
	return nil
}
