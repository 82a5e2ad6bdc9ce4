package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"validation", domain.NewValidationError("bad seat"), http.StatusBadRequest, KindValidation},
		{"not found", domain.NewNotFoundError("barber", 7), http.StatusNotFound, KindNotFound},
		{"conflict", domain.NewConflictError(3, "slot taken"), http.StatusConflict, KindConflict},
		{"forbidden", domain.Forbidden("not yours"), http.StatusForbidden, KindForbidden},
		{"store", domain.NewStoreUnavailableError("CreateBooking", errors.New("conn refused")), http.StatusServiceUnavailable, KindStoreUnavailable},
		{"wrapped validation", fmt.Errorf("outer: %w", domain.NewValidationError("x")), http.StatusBadRequest, KindValidation},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			status := RespondDomainError(rec, tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, decodeError(t, rec).Kind)
		})
	}
}

func TestRespondDomainError_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, domain.NewMissingFieldsError("barberId", "startTime"))
	body := decodeError(t, rec)
	assert.Equal(t, []string{"barberId", "startTime"}, body.MissingFields)

	rec = httptest.NewRecorder()
	RespondDomainError(rec, domain.NewConflictError(42, "slot taken"))
	body = decodeError(t, rec)
	require.NotNil(t, body.ConflictingBookingID)
	assert.Equal(t, int64(42), *body.ConflictingBookingID)

	rec = httptest.NewRecorder()
	RespondDomainError(rec, domain.NewConflictError(0, "rejected by store"))
	assert.Nil(t, decodeError(t, rec).ConflictingBookingID)
}

func TestRespondDomainError_HidesStoreCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, domain.NewStoreUnavailableError("CreateBooking", errors.New("password authentication failed")))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRespondError_KindFromStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusTooManyRequests, "slow down")
	assert.Equal(t, KindRateLimited, decodeError(t, rec).Kind)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
