package get_booking_config

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
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

// Handle GET /api/v1/config
// Query params: barberId (опционально, без него - общая конфигурация)
// Публичный endpoint. Если в БД ничего нет, сервис вернет значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var barberID *int64
	if barberIDStr := r.URL.Query().Get("barberId"); barberIDStr != "" {
		id, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /config - Invalid barber ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		barberID = &id
	}

	result, err := h.service.Get(r.Context(), barberID)
	if err != nil {
		h.logger.Error("GET /config - Failed to get config: barber_id=%v, error=%v", barberID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /config - Config retrieved successfully: source=%s", result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
