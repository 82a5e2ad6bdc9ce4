package barber

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(barberColumns).
			AddRow(int64(3), "Sam", "sam@shop.test", nil, "Downtown", nil, nil, 4, true, 4.5, 2, now, now))

	barber, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Sam", barber.Name)
	assert.True(t, barber.IsAvailable)
	require.NotNil(t, barber.ShopName)
	assert.Equal(t, "Downtown", *barber.ShopName)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(barberColumns))

	_, err = repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO barbers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "barbers_email_key"})

	_, err = NewRepository(db).Create(context.Background(), &domain.Barber{Name: "Sam", Email: "sam@shop.test"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE barbers SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Update(context.Background(), &domain.Barber{ID: 99, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}
