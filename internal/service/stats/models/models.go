package models

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// StatsResponse сводка для администратора
type StatsResponse struct {
	TotalBarbers     int            `json:"totalBarbers"`
	AvailableBarbers int            `json:"availableBarbers"`
	TotalCustomers   int            `json:"totalCustomers"`
	TotalBookings    int            `json:"totalBookings"`
	TodayBookings    int            `json:"todayBookings"`
	Revenue          float64        `json:"revenue"`
	ByStatus         map[string]int `json:"byStatus"`
}

func FromDomainStats(s *domain.Stats) *StatsResponse {
	byStatus := map[string]int{
		string(domain.StatusPending):   0,
		string(domain.StatusConfirmed): 0,
		string(domain.StatusCompleted): 0,
		string(domain.StatusCancelled): 0,
	}
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}
	return &StatsResponse{
		TotalBarbers:     s.TotalBarbers,
		AvailableBarbers: s.AvailableBarbers,
		TotalCustomers:   s.TotalCustomers,
		TotalBookings:    s.TotalBookings,
		TodayBookings:    s.TodayBookings,
		Revenue:          s.Revenue,
		ByStatus:         byStatus,
	}
}
