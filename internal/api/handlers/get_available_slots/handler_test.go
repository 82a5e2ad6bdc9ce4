package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getOccupancy "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_occupancy"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type stubUseCase struct {
	got  *getOccupancy.SlotsRequest
	resp *getOccupancy.SlotsResponse
	err  error
}

func (s *stubUseCase) AvailableSlots(_ context.Context, req *getOccupancy.SlotsRequest) (*getOccupancy.SlotsResponse, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/barbers/{barberId}/available-slots", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	start := time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getOccupancy.SlotsResponse{
		BarberID:        4,
		Date:            start,
		DurationMinutes: 45,
		Slots: []domain.AvailableSlot{
			{Start: start, End: start.Add(45 * time.Minute), FreeSeats: []int{1, 3}, TotalSeats: 3, UnseatedAvailable: 1, UnseatedTotal: 1},
			{Start: start.Add(30 * time.Minute), End: start.Add(75 * time.Minute), TotalSeats: 3},
		},
	}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/api/v1/barbers/4/available-slots?date=2030-05-10&durationMinutes=45")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 45, uc.got.DurationMinutes)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-05-10", body.Date)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, []int{1, 3}, body.Slots[0].FreeSeats)
	assert.NotNil(t, body.Slots[1].FreeSeats, "full slot serializes an empty list")
}

func TestHandle_MissingDate(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(NewHandler(uc, logger.NewNop()), "/api/v1/barbers/4/available-slots")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"missingFields":["date"]`)
	assert.Nil(t, uc.got)
}

func TestHandle_PastDate(t *testing.T) {
	uc := &stubUseCase{err: domain.NewValidationError("date is in the past")}
	rec := serve(NewHandler(uc, logger.NewNop()), "/api/v1/barbers/4/available-slots?date=2001-01-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDuration(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(NewHandler(uc, logger.NewNop()), "/api/v1/barbers/4/available-slots?date=2030-05-10&durationMinutes=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
