package pay_booking

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
)

type PayBookingUseCase interface {
	Pay(ctx context.Context, req *updateBooking.PayRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
