package update_booking_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/config
// Query params: barberId (опционально, без него меняется общая конфигурация)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var barberID *int64
	if barberIDStr := r.URL.Query().Get("barberId"); barberIDStr != "" {
		id, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("PUT /config - Invalid barber ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		barberID = &id
	}

	var req UpdateBookingConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит права администратора
	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(actor, barberID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PUT /config - Access denied: actor=%s", actor.ID)
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /config - Invalid data: barber_id=%v, error=%v", barberID, err)
		default:
			h.logger.Error("PUT /config - Failed to update config: barber_id=%v, error=%v", barberID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /config - Config updated successfully: config_id=%d, source=%s", result.ID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
