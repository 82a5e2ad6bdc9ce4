package domain

import "time"

// AvailableSlot is a candidate start time with what is still free in it
type AvailableSlot struct {
	Start             time.Time
	End               time.Time
	FreeSeats         []int
	TotalSeats        int
	UnseatedAvailable int
	UnseatedTotal     int
}

// IsFull returns true if neither a numbered seat nor the unseated pool is free
func (s *AvailableSlot) IsFull() bool {
	return len(s.FreeSeats) == 0 && s.UnseatedAvailable <= 0
}

// OccupancyRate returns the share of taken seats as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalSeats == 0 {
		return 0
	}
	occupied := s.TotalSeats - len(s.FreeSeats)
	return float64(occupied) / float64(s.TotalSeats) * 100
}
