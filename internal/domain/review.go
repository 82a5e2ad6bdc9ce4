package domain

import "time"

// Review is a customer's rating of a completed booking
type Review struct {
	ID          int64
	BookingID   int64
	BarberID    int64
	CustomerRef string
	Rating      int
	Comment     *string
	CreatedAt   time.Time
}

// RatingSummary is the aggregate of a barber's reviews
type RatingSummary struct {
	Average float64
	Count   int
}
