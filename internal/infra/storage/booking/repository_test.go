package booking

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), db, mock
}

func sampleBooking() *domain.Booking {
	start := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		CustomerRef:     "anna@example.com",
		BarberID:        1,
		ServiceName:     "Haircut",
		ServicePrice:    25,
		DurationMinutes: 30,
		StartTime:       start,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
	}
}

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantIsErr error
	}{
		{name: "exclusion violation", err: &pq.Error{Code: "23P01", Constraint: "bookings_no_seat_overlap"}, wantIsErr: ErrSlotConflict},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, wantIsErr: ErrSlotConflict},
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, wantIsErr: ErrSlotConflict},
		{name: "fk violation", err: &pq.Error{Code: "23503", Constraint: "bookings_barber_id_fkey"}, wantIsErr: ErrInvalidReference},
		{name: "other pq error", err: &pq.Error{Code: "57P01"}, wantIsErr: ErrExecQuery},
		{name: "plain error", err: errors.New("connection reset"), wantIsErr: ErrExecQuery},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapDBError("step", tc.err), tc.wantIsErr)
		})
	}
}

func TestCreate(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	created, err := repo.Create(context.Background(), sampleBooking())
	require.NoError(t, err)

	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, created.StartTime.Add(30*time.Minute), created.EndTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExclusionViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_seat_overlap"})

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, customer_ref")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListActiveOverlapping_LocksRowsInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	from := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	to := from.Add(30 * time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings WHERE barber_id = \$1 AND status IN \(\$2,\$3\) AND start_time < \$4 AND end_time > \$5 AND id <> \$6 ORDER BY start_time ASC, id ASC FOR UPDATE`).
		WithArgs(int64(1), "pending", "confirmed", to, from, int64(9)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(
			int64(3), "bob", nil, nil, int64(1), nil, "Shave", 10.0, 30,
			from, to, nil, "pending", "unpaid", nil, nil, nil, nil, from, from,
		))
	mock.ExpectRollback()

	tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	txCtx := dbmetrics.WithTx(context.Background(), tx)

	require.NoError(t, repo.LockBarber(txCtx, 1))
	bookings, err := repo.ListActiveOverlapping(txCtx, 1, from, to, 9)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(3), bookings[0].ID)
	assert.Nil(t, bookings[0].SeatNumber)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockBarber_RequiresTransaction(t *testing.T) {
	repo, _, _ := newRepo(t)
	assert.ErrorIs(t, repo.LockBarber(context.Background(), 1), ErrNoTransaction)
}

func TestUpdate_StatusChangedConcurrently(t *testing.T) {
	repo, _, mock := newRepo(t)
	b := sampleBooking()
	b.ID = 4
	b.Status = domain.StatusConfirmed

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), b, domain.StatusPending)
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestUpdate_SeatOverlapRejectedByConstraint(t *testing.T) {
	repo, _, mock := newRepo(t)
	b := sampleBooking()
	b.ID = 4

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET")).
		WillReturnError(&pq.Error{Code: "23P01"})

	err := repo.Update(context.Background(), b, domain.StatusPending)
	assert.ErrorIs(t, err, ErrSlotConflict)
}
