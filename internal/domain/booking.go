package domain

import (
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// allowedTransitions is the full lifecycle graph; anything not listed is rejected
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValid returns true for the four known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if a booking in this status blocks its time range
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus is the demo payment marker on a booking
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Booking is a reservation of a barber's time, optionally pinned to a seat
type Booking struct {
	ID            int64
	CustomerRef   string // opaque customer identifier (id, email or phone)
	CustomerName  *string
	CustomerPhone *string
	BarberID      int64

	// Service snapshot taken at booking time
	ServiceID       *int64
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	StartTime  time.Time
	EndTime    time.Time
	SeatNumber *int

	Status        BookingStatus
	PaymentStatus PaymentStatus
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking currently occupies its range
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsSeated returns true if the booking is pinned to a numbered seat
func (b *Booking) IsSeated() bool {
	return b.SeatNumber != nil
}

// Duration returns the snapshot duration, falling back to the default
func (b *Booking) Duration() time.Duration {
	if b.DurationMinutes > 0 {
		return time.Duration(b.DurationMinutes) * time.Minute
	}
	return DefaultDurationMinutes * time.Minute
}

// End returns EndTime, or derives it from StartTime and the duration when unset
func (b *Booking) End() time.Time {
	if !b.EndTime.IsZero() {
		return b.EndTime
	}
	return b.StartTime.Add(b.Duration())
}

// Overlaps reports whether [StartTime, End) intersects [start, end)
// Touching ranges do not overlap
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.End().After(start)
}

// Clone returns a deep copy
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.CustomerName = clonePtr(b.CustomerName)
	c.CustomerPhone = clonePtr(b.CustomerPhone)
	c.ServiceID = clonePtr(b.ServiceID)
	c.SeatNumber = clonePtr(b.SeatNumber)
	c.Notes = clonePtr(b.Notes)
	c.CancellationReason = clonePtr(b.CancellationReason)
	c.CancelledAt = clonePtr(b.CancelledAt)
	c.CompletedAt = clonePtr(b.CompletedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// BookingsFilter selects bookings for listings
type BookingsFilter struct {
	BarberID    *int64
	CustomerRef *string
	From        *time.Time // bookings ending after From
	To          *time.Time // bookings starting before To
	Status      *BookingStatus
	ActiveOnly  bool
}
