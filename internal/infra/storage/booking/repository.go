package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgForeignKeyViolation  = "23503"
)

var bookingColumns = []string{
	"id",
	"customer_ref",
	"customer_name",
	"customer_phone",
	"barber_id",
	"service_id",
	"service_name",
	"service_price",
	"duration_minutes",
	"start_time",
	"end_time",
	"seat_number",
	"status",
	"payment_status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований (Booking Store)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Последняя линия защиты от пересечений - exclusion constraint в схеме,
// его нарушение возвращается как ErrSlotConflict
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_ref",
			"customer_name",
			"customer_phone",
			"barber_id",
			"service_id",
			"service_name",
			"service_price",
			"duration_minutes",
			"start_time",
			"end_time",
			"seat_number",
			"status",
			"payment_status",
			"notes",
		).
		Values(
			booking.CustomerRef,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.BarberID,
			booking.ServiceID,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DurationMinutes,
			booking.StartTime,
			booking.End(),
			booking.SeatNumber,
			booking.Status,
			booking.PaymentStatus,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapDBError("Create - execute insert", err)
	}

	booking.EndTime = booking.End()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, mapDBError("GetByID - scan booking", err)
	}

	return booking, nil
}

// List получает бронирования по фильтру
// Для барбера сортировка по времени начала (ASC), для истории клиента - сначала новые
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.BarberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *filter.BarberID})
	}
	if filter.CustomerRef != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_ref": *filter.CustomerRef})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	if filter.BarberID == nil && filter.CustomerRef != nil {
		selectBuilder = selectBuilder.OrderBy("start_time DESC", "id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError("List - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveOverlapping получает активные бронирования барбера, пересекающиеся с [from, to)
// excludeID исключает изменяемое бронирование (0 - ничего не исключать)
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) ListActiveOverlapping(ctx context.Context, barberID int64, from, to time.Time, excludeID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC", "id ASC")

	if excludeID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError("ListActiveOverlapping - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LockBarber берет транзакционную advisory-блокировку на расписание барбера
// FOR UPDATE не защищает от вставки новых строк, поэтому все записи по одному барберу
// сериализуются этой блокировкой до конца транзакции
func (r *Repository) LockBarber(ctx context.Context, barberID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", barberID); err != nil {
		return mapDBError("LockBarber - acquire advisory lock", err)
	}
	return nil
}

// Update сохраняет изменения бронирования, если его статус в БД все еще expectedStatus
func (r *Repository) Update(ctx context.Context, booking *domain.Booking, expectedStatus domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", booking.StartTime).
		Set("end_time", booking.End()).
		Set("seat_number", booking.SeatNumber).
		Set("status", booking.Status).
		Set("payment_status", booking.PaymentStatus).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("completed_at", booking.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.Eq{"status": expectedStatus}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStatusChanged
	}
	if err != nil {
		return mapDBError("Update - execute update", err)
	}

	booking.EndTime = booking.End()
	booking.UpdatedAt = updatedAt.Time
	return nil
}

// Aggregate считает сводную статистику по бронированиям
// today - границы текущего дня [dayStart, dayEnd)
func (r *Repository) Aggregate(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingAggregates, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(DISTINCT customer_ref)",
	).
		Column(squirrel.Expr("COALESCE(SUM(service_price) FILTER (WHERE status <> ?), 0)", domain.StatusCancelled)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status <> ? AND start_time >= ? AND start_time < ?)",
			domain.StatusCancelled, dayStart, dayEnd)).
		From("bookings").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Aggregate - build totals query: %v", ErrBuildQuery, err)
	}

	result := &domain.BookingAggregates{ByStatus: make(map[domain.BookingStatus]int)}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.TotalBookings,
		&result.TotalCustomers,
		&result.Revenue,
		&result.TodayBookings,
	)
	if err != nil {
		return nil, mapDBError("Aggregate - scan totals", err)
	}

	query, args, err = psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Aggregate - build status query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError("Aggregate - execute status query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: Aggregate - scan status row: %v", ErrScanRow, err)
		}
		result.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Aggregate - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// mapDBError переводит ошибки postgres в ошибки репозитория
func mapDBError(step string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation, pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s: %s (%s)", ErrSlotConflict, step, pqErr.Message, pqErr.Constraint)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s: %s", ErrInvalidReference, step, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, step, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerRef,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.BarberID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.DurationMinutes,
		&booking.StartTime,
		&booking.EndTime,
		&booking.SeatNumber,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
