package barbers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/barbers/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

// Handler обработчики справочника барберов
type Handler struct {
	service BarberService
	logger  Logger
}

func NewHandler(service BarberService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/barbers
// Query params: available (bool), email (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := false
	if availableStr := r.URL.Query().Get("available"); availableStr != "" {
		available, err := strconv.ParseBool(availableStr)
		if err != nil {
			h.logger.Warn("GET /barbers - Invalid available flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		onlyAvailable = available
	}

	var email *string
	if e := r.URL.Query().Get("email"); e != "" {
		email = &e
	}

	result, err := h.service.List(r.Context(), onlyAvailable, email)
	if err != nil {
		h.logger.Error("GET /barbers - Failed to list barbers: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /barbers - Barbers retrieved: count=%d", len(result.Barbers))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/barbers/{barberId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	result, err := h.service.GetByID(r.Context(), barberID)
	if err != nil {
		h.logFailure("GET /barbers/{id}", barberID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/barbers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logFailure("POST /barbers", 0, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /barbers - Barber created: barber_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PATCH /api/v1/barbers/{barberId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /barbers/{id} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /barbers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.BarberID = barberID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		h.logFailure("PATCH /barbers/{id}", barberID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /barbers/{id} - Barber updated: barber_id=%d, available=%t", barberID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) logFailure(route string, barberID int64, err error) {
	if handlers.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error("%s - Failed: barber_id=%d, error=%v", route, barberID, err)
		return
	}
	h.logger.Warn("%s - Rejected: barber_id=%d, error=%v", route, barberID, err)
}
