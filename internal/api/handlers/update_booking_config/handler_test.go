package update_booking_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/config/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type stubService struct {
	got  *models.UpsertConfigRequest
	resp *models.ConfigResponse
	err  error
}

func (s *stubService) Upsert(_ context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.got = req
	return s.resp, s.err
}

func put(h *Handler, target, body, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{resp: &models.ConfigResponse{ID: 2, Source: models.SourceBarber, SeatCapacity: 4}}
	rec := put(NewHandler(svc, logger.NewNop()), "/api/v1/config?barberId=7", `{"seatCapacity":4,"openTime":"08:00"}`, "admin")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.BarberID)
	assert.Equal(t, int64(7), *svc.got.BarberID)
	assert.Equal(t, 4, *svc.got.SeatCapacity)
	assert.Equal(t, "08:00", *svc.got.OpenTime)
	assert.Nil(t, svc.got.CloseTime)
	assert.True(t, svc.got.Actor.IsAdmin())
}

func TestHandle_ShopLevel(t *testing.T) {
	svc := &stubService{resp: &models.ConfigResponse{ID: 1, Source: models.SourceShop}}
	rec := put(NewHandler(svc, logger.NewNop()), "/api/v1/config", `{"unseatedCapacity":2}`, "admin")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.BarberID)
}

func TestHandle_Errors(t *testing.T) {
	svc := &stubService{err: domain.Forbidden("only admins may change booking config")}
	assert.Equal(t, http.StatusForbidden, put(NewHandler(svc, logger.NewNop()), "/api/v1/config", `{"seatCapacity":4}`, "barber").Code)

	svc = &stubService{err: domain.NewValidationError("closeTime must be after openTime")}
	assert.Equal(t, http.StatusBadRequest, put(NewHandler(svc, logger.NewNop()), "/api/v1/config", `{"closeTime":"07:00"}`, "admin").Code)

	assert.Equal(t, http.StatusBadRequest, put(NewHandler(&stubService{}, logger.NewNop()), "/api/v1/config?barberId=x", `{}`, "admin").Code)
}
