package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBooking/internal/service/config/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

var admin = domain.Actor{ID: "root", Role: domain.RoleAdmin}

func newService(t *testing.T) (*Service, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	barber, err := store.Barbers().Create(context.Background(), &domain.Barber{Name: "Sam", Email: "sam@shop.test"})
	require.NoError(t, err)
	return NewService(store.Configs(), store, nil, logger.NewNop()), store, barber.ID
}

func TestResolve_Hierarchy(t *testing.T) {
	svc, _, barberID := newService(t)
	ctx := context.Background()

	config, err := svc.Resolve(ctx, barberID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSeatCapacity, config.SeatCapacity)

	_, err = svc.Upsert(ctx, &models.UpsertConfigRequest{Actor: admin, SeatCapacity: ptr.Ptr(5)})
	require.NoError(t, err)

	config, err = svc.Resolve(ctx, barberID)
	require.NoError(t, err)
	assert.Equal(t, 5, config.SeatCapacity)
	assert.Equal(t, domain.DefaultUnseatedCapacity, config.UnseatedCapacity)

	resp, err := svc.Upsert(ctx, &models.UpsertConfigRequest{Actor: admin, BarberID: &barberID, UnseatedCapacity: ptr.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, models.SourceBarber, resp.Source)
	assert.Equal(t, 5, resp.SeatCapacity, "barber level starts from the shop-wide values")

	config, err = svc.Resolve(ctx, barberID)
	require.NoError(t, err)
	assert.Equal(t, 3, config.UnseatedCapacity)

	shop, err := svc.Get(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SourceShop, shop.Source)
	assert.Equal(t, domain.DefaultUnseatedCapacity, shop.UnseatedCapacity)
}

func TestUpsert_Validation(t *testing.T) {
	svc, _, barberID := newService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &models.UpsertConfigRequest{Actor: domain.Actor{ID: "1", Role: domain.RoleBarber}, BarberID: &barberID, SeatCapacity: ptr.Ptr(3)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Upsert(ctx, &models.UpsertConfigRequest{Actor: admin})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Upsert(ctx, &models.UpsertConfigRequest{Actor: admin, OpenTime: ptr.Ptr("19:00")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Upsert(ctx, &models.UpsertConfigRequest{Actor: admin, BarberID: ptr.Ptr(int64(404)), SeatCapacity: ptr.Ptr(3)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_StoreFailure(t *testing.T) {
	svc, store, barberID := newService(t)
	store.SetFailure(errors.New("connection refused"))

	_, err := svc.Resolve(context.Background(), barberID)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
