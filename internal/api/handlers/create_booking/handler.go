package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidEndTime     = "некорректный формат времени окончания, ожидается RFC3339"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidEndTime) {
			handlers.RespondBadRequest(w, msgInvalidEndTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidStartTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Slot conflict: barber_id=%d, start=%s, conflicting_booking_id=%d",
				req.BarberID, req.StartTime, conflictErr.ConflictingBookingID)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /bookings - Rejected: barber_id=%d, actor=%s, error=%v", req.BarberID, actor.ID, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: barber_id=%d, actor=%s, error=%v",
				req.BarberID, actor.ID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, barber_id=%d, customer_ref=%s",
		result.ID, result.BarberID, result.CustomerRef)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
