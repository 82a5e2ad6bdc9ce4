package update_booking

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model, все поля опциональны
type UpdateBookingRequest struct {
	Status             *string `json:"status,omitempty"`
	StartTime          *string `json:"startTime,omitempty"` // RFC3339 или "HH:MM"
	SeatNumber         *int    `json:"seatNumber,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) *updateBooking.Request {
	return &updateBooking.Request{
		Actor:      actor,
		BookingID:  bookingID,
		Status:     r.Status,
		StartTime:  r.StartTime,
		SeatNumber: r.SeatNumber,
		Reason:     r.CancellationReason,
	}
}
