package get_stats

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Get(r.Context(), actor)
	if err != nil {
		if handlers.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("GET /admin/stats - Failed to collect stats: %v", err)
		} else {
			h.logger.Warn("GET /admin/stats - Rejected: actor=%s, error=%v", actor.ID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /admin/stats - Stats retrieved: bookings=%d, today=%d", result.TotalBookings, result.TodayBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
