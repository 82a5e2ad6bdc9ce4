package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id",
	"booking_id",
	"recipient_ref",
	"kind",
	"message",
	"scheduled_for",
	"created_at",
}

// Repository журнал уведомлений по бронированиям
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись уведомления; ID генерируется вызывающей стороной
func (r *Repository) Create(ctx context.Context, notification *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("id", "booking_id", "recipient_ref", "kind", "message", "scheduled_for").
		Values(
			notification.ID,
			notification.BookingID,
			notification.RecipientRef,
			notification.Kind,
			notification.Message,
			notification.ScheduledFor,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	notification.CreatedAt = createdAt.Time
	return nil
}

// ListByRecipient получает уведомления получателя, сначала самые поздние
func (r *Repository) ListByRecipient(ctx context.Context, recipientRef string) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"recipient_ref": recipientRef}).
		OrderBy("scheduled_for DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRecipient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRecipient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var createdAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.BookingID, &n.RecipientRef, &n.Kind, &n.Message, &n.ScheduledFor, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByRecipient - scan row: %v", ErrScanRow, err)
		}
		n.CreatedAt = createdAt.Time
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRecipient - rows error: %v", ErrScanRow, err)
	}
	return notifications, nil
}
