package get_customer_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/customers/{customerRef}/bookings
// Query params: status, activeOnly (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerRef := mux.Vars(r)["customerRef"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{ref}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.ListCustomerBookingsRequest{
		Actor:       actor,
		CustomerRef: customerRef,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}
	if activeOnlyStr := r.URL.Query().Get("activeOnly"); activeOnlyStr != "" {
		activeOnly, err := strconv.ParseBool(activeOnlyStr)
		if err != nil {
			h.logger.Warn("GET /customers/{ref}/bookings - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.ActiveOnly = activeOnly
	}

	result, err := h.service.ListByCustomer(r.Context(), serviceReq)
	if err != nil {
		if handlers.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("GET /customers/{ref}/bookings - Failed to get bookings: customer=%s, error=%v", customerRef, err)
		} else {
			h.logger.Warn("GET /customers/{ref}/bookings - Rejected: customer=%s, actor=%s, error=%v", customerRef, actor.ID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /customers/{ref}/bookings - Bookings retrieved successfully: customer=%s, count=%d",
		customerRef, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
