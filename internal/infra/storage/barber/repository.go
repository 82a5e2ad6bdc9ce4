package barber

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

const pgUniqueViolation = "23505"

var barberColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"shop_name",
	"specialization",
	"bio",
	"experience_years",
	"is_available",
	"rating",
	"total_reviews",
	"created_at",
	"updated_at",
}

// Repository справочник барберов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует барбера
func (r *Repository) Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("barbers").
		Columns("name", "email", "phone", "shop_name", "specialization", "bio", "experience_years", "is_available").
		Values(barber.Name, barber.Email, barber.Phone, barber.ShopName, barber.Specialization, barber.Bio,
			barber.ExperienceYears, barber.IsAvailable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&barber.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time
	return barber, nil
}

// GetByID получает барбера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %v", ErrScanRow, err)
	}
	return barber, nil
}

// List получает барберов, упорядоченных по имени
func (r *Repository) List(ctx context.Context, filter domain.BarbersFilter) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(barberColumns...).From("barbers").OrderBy("name ASC", "id ASC")
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}
	if filter.Email != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"email": *filter.Email})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		barbers = append(barbers, barber)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return barbers, nil
}

// Update сохраняет профиль и флаг доступности
func (r *Repository) Update(ctx context.Context, barber *domain.Barber) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("barbers").
		Set("name", barber.Name).
		Set("phone", barber.Phone).
		Set("shop_name", barber.ShopName).
		Set("specialization", barber.Specialization).
		Set("bio", barber.Bio).
		Set("experience_years", barber.ExperienceYears).
		Set("is_available", barber.IsAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": barber.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "Update", query, args)
}

// UpdateRating сохраняет агрегированный рейтинг
func (r *Repository) UpdateRating(ctx context.Context, barberID int64, summary domain.RatingSummary) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("barbers").
		Set("rating", summary.Average).
		Set("total_reviews", summary.Count).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": barberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateRating", query, args)
}

// Count возвращает общее количество барберов и количество доступных
func (r *Repository) Count(ctx context.Context) (total int, available int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)", "COUNT(*) FILTER (WHERE is_available)").
		From("barbers").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total, &available); err != nil {
		return 0, 0, fmt.Errorf("%w: Count - scan: %v", ErrExecQuery, err)
	}
	return total, available, nil
}

func execAffectingOne(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBarberNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(row rowScanner) (*domain.Barber, error) {
	var barber domain.Barber
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&barber.ID,
		&barber.Name,
		&barber.Email,
		&barber.Phone,
		&barber.ShopName,
		&barber.Specialization,
		&barber.Bio,
		&barber.ExperienceYears,
		&barber.IsAvailable,
		&barber.Rating,
		&barber.TotalReviews,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time
	return &barber, nil
}
