package barbers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBooking/internal/service/barbers/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

var admin = domain.Actor{ID: "root", Role: domain.RoleAdmin}

func TestCreate(t *testing.T) {
	svc := NewService(memory.NewStore().Barbers(), logger.NewNop())
	ctx := context.Background()

	t.Run("admin registers a barber", func(t *testing.T) {
		resp, err := svc.Create(ctx, &models.CreateBarberRequest{Actor: admin, Name: "Sam", Email: "sam@shop.test"})
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.True(t, resp.IsAvailable)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateBarberRequest{Actor: admin, Name: "Sam 2", Email: "sam@shop.test"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateBarberRequest{Actor: admin})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"email", "name"}, vErr.MissingFields)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateBarberRequest{Actor: domain.Actor{ID: "c1", Role: domain.RoleCustomer}, Name: "X", Email: "x@shop.test"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUpdate_AvailabilityToggle(t *testing.T) {
	svc := NewService(memory.NewStore().Barbers(), logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateBarberRequest{Actor: admin, Name: "Sam", Email: "sam@shop.test"})
	require.NoError(t, err)
	self := domain.Actor{ID: "1", Role: domain.RoleBarber}
	require.Equal(t, int64(1), created.ID)

	resp, err := svc.Update(ctx, &models.UpdateBarberRequest{Actor: self, BarberID: created.ID, IsAvailable: ptr.Ptr(false), Bio: ptr.Ptr("fades")})
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, "fades", *resp.Bio)

	list, err := svc.List(ctx, true, nil)
	require.NoError(t, err)
	assert.Empty(t, list.Barbers)

	_, err = svc.Update(ctx, &models.UpdateBarberRequest{Actor: domain.Actor{ID: "2", Role: domain.RoleBarber}, BarberID: created.ID, IsAvailable: ptr.Ptr(true)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(ctx, &models.UpdateBarberRequest{Actor: admin, BarberID: 99, IsAvailable: ptr.Ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(memory.NewStore().Barbers(), logger.NewNop())
	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
