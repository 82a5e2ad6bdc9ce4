package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingDate     = "дата обязательна"
	msgInvalidParams   = "некорректный формат даты (YYYY-MM-DD) или длительности"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbers/{id}/available-slots - Missing date")
		handlers.RespondDomainError(w, domain.NewMissingFieldsError("date"))
		return
	}

	useCaseReq, err := ToUseCaseRequest(barberID, dateStr, r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.AvailableSlots(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /barbers/{id}/available-slots - Invalid request: barber_id=%d, error=%v", barberID, err)
		default:
			h.logger.Error("GET /barbers/{id}/available-slots - Failed to get slots: barber_id=%d, error=%v", barberID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /barbers/{id}/available-slots - Slots retrieved successfully: barber_id=%d, date=%s, slots_count=%d",
		barberID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
