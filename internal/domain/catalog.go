package domain

import "time"

// CatalogService is an entry of the shop's service menu
type CatalogService struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
