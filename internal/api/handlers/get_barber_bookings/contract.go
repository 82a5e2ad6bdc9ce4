package get_barber_bookings

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

type BookingService interface {
	ListByBarber(ctx context.Context, req *models.ListBarberBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
