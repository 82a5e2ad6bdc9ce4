package notifications

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/notifications/models"
)

// Service чтение журнала уведомлений
type Service struct {
	repo   NotificationRepository
	logger Logger
}

func NewService(repo NotificationRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListByRecipient уведомления клиента; доступно самому клиенту и администратору
func (s *Service) ListByRecipient(ctx context.Context, actor domain.Actor, recipientRef string) (*models.NotificationListResponse, error) {
	s.logger.Info("ListNotifications: recipient=%s by %s=%s", recipientRef, actor.Role, actor.ID)

	if !actor.IsAdmin() && !actor.IsCustomer(recipientRef) {
		s.logger.Warn("ListNotifications: access denied for %s=%s to recipient=%s", actor.Role, actor.ID, recipientRef)
		return nil, domain.Forbidden("notifications belong to another customer")
	}

	list, err := s.repo.ListByRecipient(ctx, recipientRef)
	if err != nil {
		s.logger.Error("ListNotifications: repository error for recipient=%s: %v", recipientRef, err)
		return nil, domain.NewStoreUnavailableError("list notifications", err)
	}

	return models.FromDomainNotificationList(list), nil
}
