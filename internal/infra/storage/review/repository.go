package review

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

var reviewColumns = []string{
	"id",
	"booking_id",
	"barber_id",
	"customer_ref",
	"rating",
	"comment",
	"created_at",
}

// Repository отзывы клиентов о барберах
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв; на одно бронирование допускается один отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("booking_id", "barber_id", "customer_ref", "rating", "comment").
		Values(review.BookingID, review.BarberID, review.CustomerRef, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time
	return review, nil
}

// ListByBarber получает отзывы о барбере, сначала новые
func (r *Repository) ListByBarber(ctx context.Context, barberID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt sql.NullTime
		err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.BarberID,
			&review.CustomerRef,
			&review.Rating,
			&review.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBarber - scan row: %v", ErrScanRow, err)
		}
		review.CreatedAt = createdAt.Time
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - rows error: %v", ErrScanRow, err)
	}
	return reviews, nil
}

// RatingSummary считает средний рейтинг и количество отзывов барбера
func (r *Repository) RatingSummary(ctx context.Context, barberID int64) (domain.RatingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("%w: RatingSummary - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.RatingSummary
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.Average, &summary.Count); err != nil {
		return domain.RatingSummary{}, fmt.Errorf("%w: RatingSummary - scan: %v", ErrScanRow, err)
	}
	return summary, nil
}
