package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NewConflictError(42, "slot is taken"))

	assert.ErrorIs(t, wrapped, ErrConflict)
	var conflict *ConflictError
	require.ErrorAs(t, wrapped, &conflict)
	assert.Equal(t, int64(42), conflict.ConflictingBookingID)

	missing := NewMissingFieldsError("customerRef", "startTime")
	assert.ErrorIs(t, missing, ErrValidation)
	assert.Equal(t, "missing required fields: customerRef, startTime", missing.Error())

	assert.ErrorIs(t, NewNotFoundError("barber", 9), ErrNotFound)
	assert.ErrorIs(t, Forbidden("not your booking"), ErrForbidden)

	cause := errors.New("dial tcp: connection refused")
	unavailable := NewStoreUnavailableError("create booking", cause)
	assert.ErrorIs(t, unavailable, ErrStoreUnavailable)
	assert.ErrorIs(t, unavailable, cause)
}

func TestBookingConfig_Validate(t *testing.T) {
	cfg := DefaultBookingConfig()
	require.NoError(t, cfg.Validate())

	cfg.OpenTime = "19:00"
	assert.ErrorIs(t, cfg.Validate(), ErrValidation)

	cfg = DefaultBookingConfig()
	cfg.SeatCapacity = 0
	assert.ErrorIs(t, cfg.Validate(), ErrValidation)

	assert.True(t, DefaultBookingConfig().IsValidSeat(20))
	assert.False(t, DefaultBookingConfig().IsValidSeat(21))
}
