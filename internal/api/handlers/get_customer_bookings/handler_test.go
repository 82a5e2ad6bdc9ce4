package get_customer_bookings

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
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type stubService struct {
	got  *models.ListCustomerBookingsRequest
	resp *models.BookingListResponse
	err  error
}

func (s *stubService) ListByCustomer(_ context.Context, req *models.ListCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	return s.resp, s.err
}

func get(h *Handler, target, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/customers/{customerRef}/bookings", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{}}}
	rec := get(NewHandler(svc, logger.NewNop()), "/api/v1/customers/alice@mail.test/bookings?status=cancelled", "alice@mail.test")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@mail.test", svc.got.CustomerRef)
	assert.Equal(t, "cancelled", *svc.got.Status)
	assert.Equal(t, `{"bookings":[]}`+"\n", rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	svc := &stubService{err: domain.Forbidden("history belongs to another customer")}
	assert.Equal(t, http.StatusForbidden, get(NewHandler(svc, logger.NewNop()), "/api/v1/customers/alice/bookings", "bob").Code)

	assert.Equal(t, http.StatusBadRequest,
		get(NewHandler(&stubService{}, logger.NewNop()), "/api/v1/customers/alice/bookings?activeOnly=x", "alice").Code)
}
