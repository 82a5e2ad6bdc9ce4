package domain

import "time"

// NotificationKind identifies what a notification record is about
type NotificationKind string

const (
	NotificationBookingConfirmation  NotificationKind = "booking_confirmation"
	NotificationBookingReminder      NotificationKind = "booking_reminder"
	NotificationBookingStatusChanged NotificationKind = "booking_status_changed"
)

// Notification is a derived, best-effort record; losing one never affects a booking
type Notification struct {
	ID           string
	BookingID    int64
	RecipientRef string
	Kind         NotificationKind
	Message      string
	ScheduledFor time.Time
	CreatedAt    time.Time
}
