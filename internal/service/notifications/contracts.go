package notifications

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// NotificationRepository интерфейс журнала уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientRef string) ([]*domain.Notification, error)
}

// EventPublisher интерфейс публикации событий во внешний брокер
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// Metrics счетчик потерянных уведомлений
type Metrics interface {
	IncNotificationDropped()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
