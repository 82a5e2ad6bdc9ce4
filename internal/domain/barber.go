package domain

import "time"

// Barber is a bookable professional. Barbers are never hard-deleted.
type Barber struct {
	ID              int64
	Name            string
	Email           string
	Phone           *string
	ShopName        *string
	Specialization  *string
	Bio             *string
	ExperienceYears int
	IsAvailable     bool // accept-new-bookings toggle
	Rating          float64
	TotalReviews    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BarbersFilter selects barbers for listings
type BarbersFilter struct {
	OnlyAvailable bool
	Email         *string
}
