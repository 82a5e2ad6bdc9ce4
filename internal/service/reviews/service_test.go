package reviews

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	reviewRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/review"
	"github.com/m04kA/SMC-BarberBooking/internal/service/reviews/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeReviews struct {
	mu      sync.Mutex
	reviews []*domain.Review
}

func (f *fakeReviews) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.BookingID == review.BookingID {
			return nil, reviewRepo.ErrAlreadyReviewed
		}
	}
	review.ID = int64(len(f.reviews) + 1)
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeReviews) ListByBarber(_ context.Context, barberID int64) ([]*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Review, 0)
	for i := len(f.reviews) - 1; i >= 0; i-- {
		if f.reviews[i].BarberID == barberID {
			result = append(result, f.reviews[i])
		}
	}
	return result, nil
}

func (f *fakeReviews) RatingSummary(_ context.Context, barberID int64) (domain.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var summary domain.RatingSummary
	total := 0
	for _, r := range f.reviews {
		if r.BarberID == barberID {
			summary.Count++
			total += r.Rating
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

type fixture struct {
	svc      *Service
	store    *memory.Store
	barberID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	barber, err := store.Barbers().Create(context.Background(), &domain.Barber{Name: "Sam", Email: "sam@shop.test", IsAvailable: true})
	require.NoError(t, err)
	svc := NewService(&fakeReviews{}, store.Bookings(), store.Barbers(), store, logger.NewNop())
	return &fixture{svc: svc, store: store, barberID: barber.ID}
}

func (f *fixture) booking(t *testing.T, customer string, status domain.BookingStatus, start time.Time) int64 {
	t.Helper()
	ctx := context.Background()
	b, err := f.store.Bookings().Create(ctx, &domain.Booking{
		CustomerRef:     customer,
		BarberID:        f.barberID,
		DurationMinutes: 30,
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
	})
	require.NoError(t, err)
	if status != domain.StatusPending {
		b.Status = status
		require.NoError(t, f.store.Bookings().Update(ctx, b, domain.StatusPending))
	}
	return b.ID
}

func TestCreate_RecomputesRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	first := f.booking(t, "alice", domain.StatusCompleted, day)
	second := f.booking(t, "bob", domain.StatusCompleted, day.Add(time.Hour))

	_, err := f.svc.Create(ctx, &models.CreateReviewRequest{Actor: domain.Actor{ID: "alice", Role: domain.RoleCustomer}, BookingID: first, Rating: 5})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &models.CreateReviewRequest{Actor: domain.Actor{ID: "bob", Role: domain.RoleCustomer}, BookingID: second, Rating: 4})
	require.NoError(t, err)

	list, err := f.svc.ListByBarber(ctx, f.barberID)
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 2)
	assert.Equal(t, 2, list.TotalReviews)
	assert.InDelta(t, 4.5, list.AverageRating, 0.001)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	alice := domain.Actor{ID: "alice", Role: domain.RoleCustomer}

	pending := f.booking(t, "alice", domain.StatusPending, day)
	done := f.booking(t, "alice", domain.StatusCompleted, day.Add(time.Hour))

	_, err := f.svc.Create(ctx, &models.CreateReviewRequest{Actor: alice, BookingID: pending, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(ctx, &models.CreateReviewRequest{Actor: domain.Actor{ID: "bob", Role: domain.RoleCustomer}, BookingID: done, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Create(ctx, &models.CreateReviewRequest{Actor: alice, BookingID: done, Rating: 9})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(ctx, &models.CreateReviewRequest{Actor: alice, BookingID: 404, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Create(ctx, &models.CreateReviewRequest{Actor: alice, BookingID: done, Rating: 5})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &models.CreateReviewRequest{Actor: alice, BookingID: done, Rating: 3})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
