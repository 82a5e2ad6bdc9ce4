package config

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigWithHierarchy_FallsBackToShopWide(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_config WHERE barber_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(configColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_config WHERE barber_id IS NULL")).
		WillReturnRows(sqlmock.NewRows(configColumns).
			AddRow(int64(1), nil, 4, 2, 45, 15, "10:00:00", "20:00:00", 60, now, now))

	config, err := NewRepository(db).GetConfigWithHierarchy(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, config.IsShopWide())
	assert.Equal(t, 4, config.SeatCapacity)
	assert.Equal(t, 2, config.UnseatedCapacity)
	assert.Equal(t, "10:00", config.OpenTime.String())
	assert.Equal(t, "20:00", config.CloseTime.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetConfigWithHierarchy_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM booking_config").WillReturnRows(sqlmock.NewRows(configColumns))
	mock.ExpectQuery("FROM booking_config").WillReturnRows(sqlmock.NewRows(configColumns))

	_, err = NewRepository(db).GetConfigWithHierarchy(context.Background(), 5)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
