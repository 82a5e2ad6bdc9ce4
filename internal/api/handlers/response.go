package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Виды ошибок в теле ответа
const (
	KindValidation       = "validation"
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindForbidden        = "forbidden"
	KindUnauthorized     = "unauthorized"
	KindRateLimited      = "rate_limited"
	KindStoreUnavailable = "store_unavailable"
	KindInternal         = "internal"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgStoreUnavailable = "хранилище временно недоступно, повторите попытку позже"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Kind                 string   `json:"kind"`
	Message              string   `json:"message"`
	MissingFields        []string `json:"missingFields,omitempty"`
	ConflictingBookingID *int64   `json:"conflictingBookingId,omitempty"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с видом, выведенным из HTTP статуса
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Kind: kindForStatus(status), Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отображает доменную ошибку в HTTP ответ и возвращает статус
func RespondDomainError(w http.ResponseWriter, err error) int {
	status, body := mapDomainError(err)
	RespondJSON(w, status, body)
	return status
}

// StatusFor возвращает HTTP статус для доменной ошибки
func StatusFor(err error) int {
	status, _ := mapDomainError(err)
	return status
}

func mapDomainError(err error) (int, ErrorResponse) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		notFoundErr   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorResponse{
			Kind:          KindValidation,
			Message:       validationErr.Error(),
			MissingFields: validationErr.MissingFields,
		}

	case errors.As(err, &conflictErr):
		body := ErrorResponse{Kind: KindConflict, Message: conflictErr.Error()}
		if conflictErr.ConflictingBookingID != 0 {
			id := conflictErr.ConflictingBookingID
			body.ConflictingBookingID = &id
		}
		return http.StatusConflict, body

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, ErrorResponse{Kind: KindNotFound, Message: notFoundErr.Error()}

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Kind: KindForbidden, Message: err.Error()}

	// Sentinel без типа, например от сервисов справочников
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Kind: KindValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrorResponse{Kind: KindConflict, Message: err.Error()}

	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Kind: KindStoreUnavailable, Message: msgStoreUnavailable}

	default:
		return http.StatusInternalServerError, ErrorResponse{Kind: KindInternal, Message: msgInternalError}
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusServiceUnavailable:
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}
