package get_occupancy

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidParams   = "некорректные параметры: ожидается date (YYYY-MM-DD) или from/to (RFC3339)"
)

type Handler struct {
	useCase GetOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase GetOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/occupancy
// Query params: date или from + to
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/occupancy - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(barberID, query.Get("date"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/occupancy - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("GET /barbers/{id}/occupancy - Failed to get occupancy: barber_id=%d, error=%v", barberID, err)
		} else {
			h.logger.Warn("GET /barbers/{id}/occupancy - Rejected: barber_id=%d, error=%v", barberID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /barbers/{id}/occupancy - Degraded result: barber_id=%d", barberID)
	}
	h.logger.Info("GET /barbers/{id}/occupancy - Occupancy retrieved: barber_id=%d, ranges=%d",
		barberID, len(result.Occupancy))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
