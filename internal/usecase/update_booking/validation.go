package update_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// validateRequest проверяет запрос без обращения к хранилищу
func validateRequest(req *Request) (*domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return nil, domain.NewMissingFieldsError("bookingId")
	}
	if req.Status == nil && !req.changesSchedule() && req.Reason == nil {
		return nil, domain.NewValidationError("nothing to update: pass status, startTime or seatNumber")
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, domain.NewValidationError(fmt.Sprintf("reason must not exceed %d characters", domain.MaxCancellationReasonLength))
	}
	if req.SeatNumber != nil && *req.SeatNumber < 1 {
		return nil, domain.NewValidationError("seatNumber must be positive")
	}

	if req.Status == nil {
		if req.Reason != nil {
			return nil, domain.NewValidationError("reason is only accepted with status cancelled")
		}
		return nil, nil
	}

	next, err := models.ToDomainBookingStatus(*req.Status)
	if err != nil {
		return nil, err
	}
	if req.Reason != nil && next != domain.StatusCancelled {
		return nil, domain.NewValidationError("reason is only accepted with status cancelled")
	}
	if req.changesSchedule() && next.IsTerminal() {
		return nil, domain.NewValidationError("startTime and seatNumber can only change on an active booking")
	}
	return &next, nil
}

// checkTransition проверяет граф статусов и права актора
// Клиент может только отменить свое бронирование, остальное - барбер или администратор
func checkTransition(actor domain.Actor, booking *domain.Booking, next domain.BookingStatus) error {
	if !booking.Status.CanTransitionTo(next) {
		return domain.NewValidationError(fmt.Sprintf("cannot change status from %s to %s", booking.Status, next))
	}
	if actor.CanManageBarber(booking.BarberID) {
		return nil
	}
	if next == domain.StatusCancelled && actor.IsCustomer(booking.CustomerRef) {
		return nil
	}
	return domain.Forbidden(fmt.Sprintf("%s cannot move booking to %s", actor.Role, next))
}

// parseStartTime разбирает новое время начала
// "HH:MM" переносит время на дату текущего бронирования
func parseStartTime(raw string, current time.Time) (time.Time, error) {
	if hhmm := types.TimeString(raw); len(raw) == len(domain.TimeFormat) && hhmm.Validate() == nil {
		return hhmm.OnDate(current)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("startTime must be RFC3339 or HH:MM")
	}
	return t, nil
}
