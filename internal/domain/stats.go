package domain

// BookingAggregates are the booking counters computed by the store
type BookingAggregates struct {
	TotalBookings  int
	TotalCustomers int
	Revenue        float64 // sum of service prices of non-cancelled bookings
	TodayBookings  int     // non-cancelled bookings starting today
	ByStatus       map[BookingStatus]int
}

// Stats is the admin dashboard summary
type Stats struct {
	TotalBarbers     int
	AvailableBarbers int
	BookingAggregates
}
