package get_notifications

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/notifications/models"
)

type NotificationService interface {
	ListByRecipient(ctx context.Context, actor domain.Actor, recipientRef string) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
