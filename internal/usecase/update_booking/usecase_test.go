package update_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/cache/occupancy"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	configsvc "github.com/m04kA/SMC-BarberBooking/internal/service/config"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type statusChange struct {
	id       int64
	previous domain.BookingStatus
	next     domain.BookingStatus
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []statusChange
}

func (n *recordingNotifier) StatusChanged(booking *domain.Booking, previous domain.BookingStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, statusChange{id: booking.ID, previous: previous, next: booking.Status})
}

type nopMetrics struct{}

func (nopMetrics) IncBookingConflict()          {}
func (nopMetrics) IncBookingTransition(string) {}

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

var admin = domain.Actor{ID: "root", Role: domain.RoleAdmin}

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	notifier *recordingNotifier
	barberID int64
	barber   domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	b, err := store.Barbers().Create(context.Background(), &domain.Barber{Name: "Sam", Email: "sam@shop.test", IsAvailable: true})
	require.NoError(t, err)

	log := logger.NewNop()
	notifier := &recordingNotifier{}
	uc := NewUseCase(store.Bookings(), configsvc.NewService(store.Configs(), store, nil, log),
		occupancy.New(nil, "", 0), notifier, nopMetrics{}, store, log)
	uc.timeProvider = fixedTime{now: day}

	return &fixture{uc: uc, store: store, notifier: notifier, barberID: b.ID, barber: domain.Actor{ID: "1", Role: domain.RoleBarber}}
}

func (f *fixture) book(t *testing.T, customer string, start time.Time, seat *int) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerRef: customer, BarberID: f.barberID, StartTime: start, DurationMinutes: 30,
		SeatNumber: seat, Status: domain.StatusPending, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) status(t *testing.T, actor domain.Actor, id int64, status domain.BookingStatus) error {
	t.Helper()
	_, err := f.uc.Execute(context.Background(), &Request{Actor: actor, BookingID: id, Status: ptr.Ptr(string(status))})
	return err
}

func TestLifecycle_HappyPath(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "alice", at(10, 0), nil)

	require.NoError(t, f.status(t, f.barber, b.ID, domain.StatusConfirmed))
	require.NoError(t, f.status(t, f.barber, b.ID, domain.StatusCompleted))

	stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)

	assert.Equal(t, []statusChange{
		{id: b.ID, previous: domain.StatusPending, next: domain.StatusConfirmed},
		{id: b.ID, previous: domain.StatusConfirmed, next: domain.StatusCompleted},
	}, f.notifier.changes)
}

func TestLifecycle_Monotonic(t *testing.T) {
	f := newFixture(t)
	completed := f.book(t, "alice", at(9, 0), nil)
	require.NoError(t, f.status(t, admin, completed.ID, domain.StatusConfirmed))
	require.NoError(t, f.status(t, admin, completed.ID, domain.StatusCompleted))

	cancelled := f.book(t, "alice", at(11, 0), nil)
	require.NoError(t, f.status(t, admin, cancelled.ID, domain.StatusCancelled))

	pending := f.book(t, "alice", at(13, 0), nil)

	all := []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled}
	for _, id := range []int64{completed.ID, cancelled.ID} {
		for _, next := range all {
			err := f.status(t, admin, id, next)
			assert.ErrorIs(t, err, domain.ErrValidation, "booking %d to %s", id, next)
		}
	}

	// pending -> completed и pending -> pending не существуют
	assert.ErrorIs(t, f.status(t, admin, pending.ID, domain.StatusCompleted), domain.ErrValidation)
	assert.ErrorIs(t, f.status(t, admin, pending.ID, domain.StatusPending), domain.ErrValidation)
}

func TestLifecycle_ActorRules(t *testing.T) {
	f := newFixture(t)
	alice := domain.Actor{ID: "alice", Role: domain.RoleCustomer}
	bob := domain.Actor{ID: "bob", Role: domain.RoleCustomer}
	otherBarber := domain.Actor{ID: "2", Role: domain.RoleBarber}

	b := f.book(t, "alice", at(10, 0), nil)

	assert.ErrorIs(t, f.status(t, alice, b.ID, domain.StatusConfirmed), domain.ErrForbidden)
	assert.ErrorIs(t, f.status(t, otherBarber, b.ID, domain.StatusConfirmed), domain.ErrForbidden)
	assert.ErrorIs(t, f.status(t, bob, b.ID, domain.StatusCancelled), domain.ErrForbidden)

	_, err := f.uc.Execute(context.Background(), &Request{Actor: alice, BookingID: b.ID, StartTime: ptr.Ptr("11:00")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := f.uc.Cancel(context.Background(), &CancelRequest{Actor: alice, BookingID: b.ID, Reason: ptr.Ptr("sick")})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "sick", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)

	assert.ErrorIs(t, f.status(t, admin, 999, domain.StatusConfirmed), domain.ErrNotFound)
}

func TestReschedule_KeepsDateAndRecomputesEnd(t *testing.T) {
	f := newFixture(t)
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerRef: "alice", BarberID: f.barberID, StartTime: at(10, 0), DurationMinutes: 45,
		Status: domain.StatusPending, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	// Принятие с назначением времени: confirmed + "HH:MM"
	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor: f.barber, BookingID: b.ID, Status: ptr.Ptr("confirmed"), StartTime: ptr.Ptr("14:30"), SeatNumber: ptr.Ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 4, *resp.SeatNumber)

	stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, at(14, 30), stored.StartTime)
	assert.Equal(t, at(15, 15), stored.EndTime)

	_, err = f.uc.Execute(context.Background(), &Request{Actor: f.barber, BookingID: b.ID, StartTime: ptr.Ptr(at(16, 0).AddDate(0, 0, 1).Format(time.RFC3339))})
	require.NoError(t, err)
	stored, err = f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2026, stored.StartTime.Year())
	assert.Equal(t, 3, stored.StartTime.Day())
}

func TestReschedule_ConflictsExcludeSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.book(t, "alice", at(10, 0), ptr.Ptr(1))
	second := f.book(t, "bob", at(11, 0), ptr.Ptr(1))

	// Сдвиг в пределах собственного интервала не конфликтует сам с собой
	_, err := f.uc.Execute(ctx, &Request{Actor: admin, BookingID: first.ID, StartTime: ptr.Ptr("10:15")})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: second.ID, StartTime: ptr.Ptr("10:30")})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.ConflictingBookingID)

	// Смена кресла снимает конфликт
	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: second.ID, StartTime: ptr.Ptr("10:30"), SeatNumber: ptr.Ptr(2)})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: second.ID, SeatNumber: ptr.Ptr(domain.DefaultSeatCapacity + 1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: second.ID, StartTime: ptr.Ptr("tomorrow")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancellationFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.book(t, "alice", at(10, 0), ptr.Ptr(1))
	other := f.book(t, "bob", at(11, 0), ptr.Ptr(1))

	_, err := f.uc.Execute(ctx, &Request{Actor: admin, BookingID: other.ID, StartTime: ptr.Ptr("10:00")})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Cancel(ctx, &CancelRequest{Actor: admin, BookingID: x.ID})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: other.ID, StartTime: ptr.Ptr("10:00")})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: x.ID, StartTime: ptr.Ptr("12:00")})
	assert.ErrorIs(t, err, domain.ErrValidation, "cancelled booking cannot be moved")
}

func TestPay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := domain.Actor{ID: "alice", Role: domain.RoleCustomer}
	b := f.book(t, "alice", at(10, 0), nil)

	_, err := f.uc.Pay(ctx, &PayRequest{Actor: domain.Actor{ID: "bob", Role: domain.RoleCustomer}, BookingID: b.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := f.uc.Pay(ctx, &PayRequest{Actor: alice, BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, f.notifier.changes, 1)

	_, err = f.uc.Pay(ctx, &PayRequest{Actor: alice, BookingID: b.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidation(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "alice", at(10, 0), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
	}{
		{"nothing to update", &Request{Actor: admin, BookingID: b.ID}},
		{"unknown status", &Request{Actor: admin, BookingID: b.ID, Status: ptr.Ptr("archived")}},
		{"reason without cancel", &Request{Actor: admin, BookingID: b.ID, Status: ptr.Ptr("confirmed"), Reason: ptr.Ptr("x")}},
		{"move while completing", &Request{Actor: admin, BookingID: b.ID, Status: ptr.Ptr("completed"), StartTime: ptr.Ptr("11:00")}},
		{"move into the past", &Request{Actor: admin, BookingID: b.ID, StartTime: ptr.Ptr(day.Add(-time.Hour).Format(time.RFC3339))}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tc.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "alice", at(10, 0), nil)
	f.store.SetFailure(errors.New("connection refused"))

	err := f.status(t, admin, b.ID, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, f.notifier.changes)
}

// callLog записывает порядок обращений к репозиторию бронирований
type callLog struct {
	*memory.BookingRepository
	mu    sync.Mutex
	calls []string
}

func (r *callLog) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *callLog) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.record("GetByID")
	return r.BookingRepository.GetByID(ctx, id)
}

func (r *callLog) LockBarber(ctx context.Context, barberID int64) error {
	r.record("LockBarber")
	return r.BookingRepository.LockBarber(ctx, barberID)
}

func (r *callLog) ListActiveOverlapping(ctx context.Context, barberID int64, from, to time.Time, excludeID int64) ([]*domain.Booking, error) {
	r.record("ListActiveOverlapping")
	return r.BookingRepository.ListActiveOverlapping(ctx, barberID, from, to, excludeID)
}

func (r *callLog) Update(ctx context.Context, booking *domain.Booking, expectedStatus domain.BookingStatus) error {
	r.record("Update")
	return r.BookingRepository.Update(ctx, booking, expectedStatus)
}

func TestMutate_LocksBarberBeforeBookingRow(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "alice", at(10, 0), ptr.Ptr(1))

	repo := &callLog{BookingRepository: f.store.Bookings()}
	f.uc.bookingRepo = repo

	_, err := f.uc.Execute(context.Background(), &Request{Actor: admin, BookingID: b.ID, SeatNumber: ptr.Ptr(2)})
	require.NoError(t, err)

	// Первое чтение вне транзакции только находит барбера; в транзакции барбер блокируется раньше строки
	assert.Equal(t, []string{"GetByID", "LockBarber", "GetByID", "ListActiveOverlapping", "Update"}, repo.calls)
}

func TestMutate_UnknownBookingBeforeLocking(t *testing.T) {
	f := newFixture(t)
	repo := &callLog{BookingRepository: f.store.Bookings()}
	f.uc.bookingRepo = repo

	err := f.status(t, admin, 404, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"GetByID"}, repo.calls)
}

func TestReschedule_NotifiesWithoutStatusChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, "alice", at(10, 0), ptr.Ptr(1))

	_, err := f.uc.Execute(ctx, &Request{Actor: admin, BookingID: b.ID, SeatNumber: ptr.Ptr(2)})
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: b.ID, StartTime: ptr.Ptr("11:00")})
	require.NoError(t, err)

	assert.Equal(t, []statusChange{
		{id: b.ID, previous: domain.StatusPending, next: domain.StatusPending},
		{id: b.ID, previous: domain.StatusPending, next: domain.StatusPending},
	}, f.notifier.changes)

	// Повтор того же кресла ничего не меняет и не уведомляет
	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: b.ID, SeatNumber: ptr.Ptr(2)})
	require.NoError(t, err)
	assert.Len(t, f.notifier.changes, 2)
}

func TestReschedule_UnseatedNeedsCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, "alice", at(10, 0), nil)

	cfg := domain.DefaultBookingConfig()
	cfg.BarberID = ptr.Ptr(f.barberID)
	cfg.UnseatedCapacity = 0
	_, err := f.store.Configs().Create(ctx, cfg)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: b.ID, StartTime: ptr.Ptr("12:00")})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "seatNumber is required")

	// С назначением кресла перенос проходит
	_, err = f.uc.Execute(ctx, &Request{Actor: admin, BookingID: b.ID, StartTime: ptr.Ptr("12:00"), SeatNumber: ptr.Ptr(1)})
	require.NoError(t, err)
}
