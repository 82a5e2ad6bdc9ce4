package get_barber_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/bookings
// Query params: date или from/to, status, activeOnly (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/bookings - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(barberID, actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что это барбер или администратор
	result, err := h.service.ListByBarber(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /barbers/{id}/bookings - Access denied: barber_id=%d, actor=%s", barberID, actor.ID)
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid request: barber_id=%d, error=%v", barberID, err)
		default:
			h.logger.Error("GET /barbers/{id}/bookings - Failed to get bookings: barber_id=%d, error=%v", barberID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /barbers/{id}/bookings - Bookings retrieved successfully: barber_id=%d, count=%d",
		barberID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
