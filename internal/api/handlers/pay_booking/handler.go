package pay_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
)

type Handler struct {
	useCase PayBookingUseCase
	logger  Logger
}

func NewHandler(useCase PayBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/pay
// Демонстрационная оплата: отмечает бронирование оплаченным и подтверждает его
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/pay - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/pay - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Pay(r.Context(), &updateBooking.PayRequest{Actor: actor, BookingID: bookingID})
	if err != nil {
		if handlers.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings/{id}/pay - Failed to pay booking: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("POST /bookings/{id}/pay - Rejected: booking_id=%d, actor=%s, error=%v", bookingID, actor.ID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/pay - Booking paid: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
