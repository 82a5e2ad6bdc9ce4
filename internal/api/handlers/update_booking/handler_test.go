package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type stubUseCase struct {
	got  *updateBooking.Request
	resp *models.BookingResponse
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *updateBooking.Request) (*models.BookingResponse, error) {
	s.got = req
	return s.resp, s.err
}

func patch(h *Handler, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "4")
	req.Header.Set(middleware.HeaderUserRole, "barber")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{resp: &models.BookingResponse{ID: 8, Status: "confirmed"}}
	rec := patch(NewHandler(uc, logger.NewNop()), "/api/v1/bookings/8", `{"status":"confirmed","startTime":"11:30","seatNumber":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(8), uc.got.BookingID)
	assert.Equal(t, "confirmed", *uc.got.Status)
	assert.Equal(t, "11:30", *uc.got.StartTime)
	assert.Equal(t, 2, *uc.got.SeatNumber)
	assert.True(t, uc.got.Actor.IsBarber(4))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		status int
	}{
		{"bad id", "/api/v1/bookings/zz", `{}`, nil, http.StatusBadRequest},
		{"bad body", "/api/v1/bookings/1", `[`, nil, http.StatusBadRequest},
		{"illegal transition", "/api/v1/bookings/1", `{"status":"pending"}`, domain.NewValidationError("cannot move booking from completed to pending"), http.StatusBadRequest},
		{"overlap", "/api/v1/bookings/1", `{"startTime":"10:00"}`, domain.NewConflictError(2, "seat 1 is taken"), http.StatusConflict},
		{"not found", "/api/v1/bookings/1", `{"status":"confirmed"}`, domain.NewNotFoundError("booking", 1), http.StatusNotFound},
		{"forbidden", "/api/v1/bookings/1", `{"status":"confirmed"}`, domain.Forbidden("not your booking"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
