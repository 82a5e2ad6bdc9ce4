package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

func seedBarber(t *testing.T, s *Store) *domain.Barber {
	t.Helper()
	barber, err := s.Barbers().Create(context.Background(), &domain.Barber{Name: "Sam", Email: "sam@shop.test", IsAvailable: true})
	require.NoError(t, err)
	return barber
}

func TestTransaction_RollbackOnError(t *testing.T) {
	s := NewStore()
	barber := seedBarber(t, s)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	err := s.DoSerializable(context.Background(), func(ctx context.Context) error {
		_, err := s.Bookings().Create(ctx, &domain.Booking{CustomerRef: "alice", BarberID: barber.ID, StartTime: start, Status: domain.StatusPending})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	bookings, err := s.Bookings().List(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingRepository_SeatExclusion(t *testing.T) {
	s := NewStore()
	barber := seedBarber(t, s)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := s.Bookings().Create(ctx, &domain.Booking{CustomerRef: "alice", BarberID: barber.ID, StartTime: start, SeatNumber: ptr.Ptr(1), Status: domain.StatusPending})
	require.NoError(t, err)

	_, err = s.Bookings().Create(ctx, &domain.Booking{CustomerRef: "bob", BarberID: barber.ID, StartTime: start.Add(15 * time.Minute), SeatNumber: ptr.Ptr(1), Status: domain.StatusPending})
	assert.ErrorIs(t, err, bookingRepo.ErrSlotConflict)

	_, err = s.Bookings().Create(ctx, &domain.Booking{CustomerRef: "bob", BarberID: barber.ID, StartTime: start.Add(15 * time.Minute), SeatNumber: ptr.Ptr(2), Status: domain.StatusPending})
	assert.NoError(t, err)
}

func TestBookingRepository_UpdateExpectsStatus(t *testing.T) {
	s := NewStore()
	barber := seedBarber(t, s)
	ctx := context.Background()

	created, err := s.Bookings().Create(ctx, &domain.Booking{CustomerRef: "alice", BarberID: barber.ID, StartTime: time.Now(), Status: domain.StatusPending})
	require.NoError(t, err)

	confirmed := created.Clone()
	confirmed.Status = domain.StatusConfirmed
	require.NoError(t, s.Bookings().Update(ctx, confirmed, domain.StatusPending))

	cancelled := created.Clone()
	cancelled.Status = domain.StatusCancelled
	assert.ErrorIs(t, s.Bookings().Update(ctx, cancelled, domain.StatusPending), bookingRepo.ErrStatusChanged)
}

func TestBookingRepository_LockBarberRequiresTransaction(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Bookings().LockBarber(context.Background(), 1), bookingRepo.ErrNoTransaction)

	err := s.Do(context.Background(), func(ctx context.Context) error {
		return s.Bookings().LockBarber(ctx, 1)
	})
	assert.NoError(t, err)
}
