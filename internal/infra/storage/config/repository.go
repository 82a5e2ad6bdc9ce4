package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const pgForeignKeyViolation = "23503"

var configColumns = []string{
	"id",
	"barber_id",
	"seat_capacity",
	"unseated_capacity",
	"default_duration_minutes",
	"slot_step_minutes",
	"open_time",
	"close_time",
	"reminder_offset_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий параметров расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает конфигурацию (barber_id NULL - общая для всей парикмахерской)
func (r *Repository) Create(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_config").
		Columns(
			"barber_id",
			"seat_capacity",
			"unseated_capacity",
			"default_duration_minutes",
			"slot_step_minutes",
			"open_time",
			"close_time",
			"reminder_offset_minutes",
		).
		Values(
			config.BarberID,
			config.SeatCapacity,
			config.UnseatedCapacity,
			config.DefaultDurationMinutes,
			config.SlotStepMinutes,
			config.OpenTime,
			config.CloseTime,
			config.ReminderOffsetMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time
	return config, nil
}

// GetByBarber получает конфигурацию ровно этого уровня
// barberID nil - общая конфигурация
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByBarber(ctx context.Context, barberID *int64) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).From("booking_config")

	// Фильтрация по barber_id (NULL или конкретное значение)
	if barberID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *barberID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarber - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarber - scan config: %v", ErrScanRow, err)
	}
	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом приоритетов:
// 1. Конфигурация конкретного барбера
// 2. Общая конфигурация парикмахерской
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, barberID int64) (*domain.BookingConfig, error) {
	// 1. Конфигурация барбера
	config, err := r.GetByBarber(ctx, &barberID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (barber): %v", ErrExecQuery, err)
	}

	// 2. Общая конфигурация
	config, err = r.GetByBarber(ctx, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (shop-wide): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Update обновляет конфигурацию по ID
func (r *Repository) Update(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_config").
		Set("seat_capacity", config.SeatCapacity).
		Set("unseated_capacity", config.UnseatedCapacity).
		Set("default_duration_minutes", config.DefaultDurationMinutes).
		Set("slot_step_minutes", config.SlotStepMinutes).
		Set("open_time", config.OpenTime).
		Set("close_time", config.CloseTime).
		Set("reminder_offset_minutes", config.ReminderOffsetMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time
	return config, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.BookingConfig, error) {
	var config domain.BookingConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.BarberID,
		&config.SeatCapacity,
		&config.UnseatedCapacity,
		&config.DefaultDurationMinutes,
		&config.SlotStepMinutes,
		&config.OpenTime,
		&config.CloseTime,
		&config.ReminderOffsetMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time
	return &config, nil
}
