package get_notifications

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerRef}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerRef := mux.Vars(r)["customerRef"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{ref}/notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByRecipient(r.Context(), actor, customerRef)
	if err != nil {
		if handlers.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("GET /customers/{ref}/notifications - Failed: customer=%s, error=%v", customerRef, err)
		} else {
			h.logger.Warn("GET /customers/{ref}/notifications - Rejected: customer=%s, actor=%s, error=%v", customerRef, actor.ID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /customers/{ref}/notifications - Retrieved: customer=%s, count=%d", customerRef, len(result.Notifications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
