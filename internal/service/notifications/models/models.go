package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// NotificationResponse запись уведомления
type NotificationResponse struct {
	ID           string    `json:"id"`
	BookingID    int64     `json:"bookingId"`
	RecipientRef string    `json:"recipientRef"`
	Kind         string    `json:"kind"`
	Message      string    `json:"message"`
	ScheduledFor time.Time `json:"scheduledFor"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NotificationListResponse список уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:           n.ID,
			BookingID:    n.BookingID,
			RecipientRef: n.RecipientRef,
			Kind:         string(n.Kind),
			Message:      n.Message,
			ScheduledFor: n.ScheduledFor,
			CreatedAt:    n.CreatedAt,
		})
	}
	return resp
}
