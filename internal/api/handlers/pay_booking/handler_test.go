package pay_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	got  *updateBooking.PayRequest
	resp *models.BookingResponse
	err  error
}

func (s *stubUseCase) Pay(_ context.Context, req *updateBooking.PayRequest) (*models.BookingResponse, error) {
	s.got = req
	return s.resp, s.err
}

func pay(h *Handler, target string, withUser bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}/pay", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, target, nil)
	if withUser {
		req.Header.Set(middleware.HeaderUserID, "bob")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{resp: &models.BookingResponse{ID: 5, Status: "confirmed", PaymentStatus: "paid"}}
	rec := pay(NewHandler(uc, logger.NewNop()), "/api/v1/bookings/5/pay", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.BookingID)
	assert.Equal(t, "bob", uc.got.Actor.ID)
	assert.Contains(t, rec.Body.String(), `"paymentStatus":"paid"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, pay(NewHandler(&stubUseCase{}, logger.NewNop()), "/api/v1/bookings/5/pay", false).Code)
	assert.Equal(t, http.StatusBadRequest, pay(NewHandler(&stubUseCase{}, logger.NewNop()), "/api/v1/bookings/x/pay", true).Code)

	uc := &stubUseCase{err: domain.NewValidationError("booking is already paid")}
	assert.Equal(t, http.StatusBadRequest, pay(NewHandler(uc, logger.NewNop()), "/api/v1/bookings/5/pay", true).Code)
}
