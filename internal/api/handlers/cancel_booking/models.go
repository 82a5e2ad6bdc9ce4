package cancel_booking

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) *updateBooking.CancelRequest {
	return &updateBooking.CancelRequest{
		Actor:     actor,
		BookingID: bookingID,
		Reason:    r.CancellationReason,
	}
}
