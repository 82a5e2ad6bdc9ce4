package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

var (
	admin    = domain.Actor{ID: "root", Role: domain.RoleAdmin}
	customer = domain.Actor{ID: "c1", Role: domain.RoleCustomer}
)

func TestCatalogLifecycle(t *testing.T) {
	svc := NewService(memory.NewStore().Catalog(), logger.NewNop())
	ctx := context.Background()

	haircut, err := svc.Create(ctx, &models.ServiceRequest{Actor: admin, Name: "Haircut", DurationMinutes: 45, Price: 25})
	require.NoError(t, err)
	assert.True(t, haircut.IsActive)

	_, err = svc.Create(ctx, &models.ServiceRequest{Actor: admin, Name: "Beard", DurationMinutes: 20, Price: 10})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, haircut.ID, &models.ServiceRequest{Actor: admin, Name: "Haircut", DurationMinutes: 45, Price: 30, IsActive: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Price)

	public, err := svc.List(ctx, customer, true)
	require.NoError(t, err)
	require.Len(t, public.Services, 1)
	assert.Equal(t, "Beard", public.Services[0].Name)

	all, err := svc.List(ctx, admin, true)
	require.NoError(t, err)
	assert.Len(t, all.Services, 2)
}

func TestCatalogErrors(t *testing.T) {
	svc := NewService(memory.NewStore().Catalog(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.ServiceRequest{Actor: customer, Name: "Haircut", DurationMinutes: 45})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, &models.ServiceRequest{Actor: admin, Name: "Haircut", DurationMinutes: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, 77, &models.ServiceRequest{Actor: admin, Name: "Haircut", DurationMinutes: 45})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
