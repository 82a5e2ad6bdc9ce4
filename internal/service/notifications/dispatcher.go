package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const deliveryTimeout = 5 * time.Second

// BookingEvent событие, публикуемое в брокер
type BookingEvent struct {
	BookingID      int64     `json:"bookingId"`
	BarberID       int64     `json:"barberId"`
	CustomerRef    string    `json:"customerRef"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	SeatNumber     *int      `json:"seatNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type job struct {
	routingKey    string
	event         BookingEvent
	notifications []*domain.Notification
}

// Dispatcher доставляет уведомления и события в фоне
// Очередь ограничена: при переполнении задание отбрасывается, бронирование от этого не зависит
type Dispatcher struct {
	repo      NotificationRepository
	publisher EventPublisher
	metrics   Metrics
	logger    Logger

	mu     sync.RWMutex
	closed bool
	queue  chan job
	done   chan struct{}
	now    func() time.Time
}

// NewDispatcher запускает воркер; publisher и metrics могут быть nil
func NewDispatcher(repo NotificationRepository, publisher EventPublisher, metrics Metrics, logger Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	d := &Dispatcher{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		queue:     make(chan job, queueSize),
		done:      make(chan struct{}),
		now:       time.Now,
	}

	go d.worker()
	return d
}

// BookingCreated ставит в очередь подтверждение, напоминание и событие booking.created
func (d *Dispatcher) BookingCreated(booking *domain.Booking, reminderOffset time.Duration) {
	now := d.now()
	confirmation := d.newNotification(booking, domain.NotificationBookingConfirmation,
		fmt.Sprintf("Booking #%d with barber %d on %s is received and waiting for confirmation",
			booking.ID, booking.BarberID, booking.StartTime.Format("2006-01-02 15:04")),
		now)

	reminderAt := booking.StartTime.Add(-reminderOffset)
	if reminderAt.Before(now) {
		reminderAt = now
	}
	reminder := d.newNotification(booking, domain.NotificationBookingReminder,
		fmt.Sprintf("Reminder: your appointment #%d starts at %s",
			booking.ID, booking.StartTime.Format("15:04")),
		reminderAt)

	d.enqueue(job{
		routingKey:    "booking.created",
		event:         d.newEvent(booking, ""),
		notifications: []*domain.Notification{confirmation, reminder},
	})
}

// StatusChanged ставит в очередь уведомление о смене статуса и событие booking.<status>
// Без смены статуса (перенос, другое кресло) событие публикуется как booking.rescheduled
func (d *Dispatcher) StatusChanged(booking *domain.Booking, previous domain.BookingStatus) {
	routingKey := "booking." + string(booking.Status)
	message := fmt.Sprintf("Booking #%d is now %s", booking.ID, booking.Status)
	if booking.Status == previous {
		routingKey = "booking.rescheduled"
		message = fmt.Sprintf("Booking #%d was updated: %s, seat %s",
			booking.ID, booking.StartTime.Format("2006-01-02 15:04"), seatLabel(booking.SeatNumber))
	}

	d.enqueue(job{
		routingKey:    routingKey,
		event:         d.newEvent(booking, previous),
		notifications: []*domain.Notification{d.newNotification(booking, domain.NotificationBookingStatusChanged, message, d.now())},
	})
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatcher: closed, dropping %s for booking=%d", j.routingKey, j.event.BookingID)
		d.dropped()
		return
	}

	select {
	case d.queue <- j:
	default:
		d.logger.Warn("Dispatcher: queue full, dropping %s for booking=%d", j.routingKey, j.event.BookingID)
		d.dropped()
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	for _, n := range j.notifications {
		if err := d.repo.Create(ctx, n); err != nil {
			d.logger.Error("Dispatcher: failed to store %s for booking=%d: %v", n.Kind, n.BookingID, err)
		}
	}

	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, j.routingKey, j.event); err != nil {
		d.logger.Warn("Dispatcher: failed to publish %s for booking=%d: %v", j.routingKey, j.event.BookingID, err)
	}
}

// Close перестает принимать задания и дожидается доставки уже поставленных
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) dropped() {
	if d.metrics != nil {
		d.metrics.IncNotificationDropped()
	}
}

func (d *Dispatcher) newNotification(booking *domain.Booking, kind domain.NotificationKind, message string, at time.Time) *domain.Notification {
	return &domain.Notification{
		ID:           uuid.NewString(),
		BookingID:    booking.ID,
		RecipientRef: booking.CustomerRef,
		Kind:         kind,
		Message:      message,
		ScheduledFor: at,
	}
}

func (d *Dispatcher) newEvent(booking *domain.Booking, previous domain.BookingStatus) BookingEvent {
	var seat *int
	if booking.SeatNumber != nil {
		v := *booking.SeatNumber
		seat = &v
	}
	return BookingEvent{
		BookingID:      booking.ID,
		BarberID:       booking.BarberID,
		CustomerRef:    booking.CustomerRef,
		Status:         string(booking.Status),
		PreviousStatus: string(previous),
		StartTime:      booking.StartTime,
		EndTime:        booking.End(),
		SeatNumber:     seat,
		OccurredAt:     d.now(),
	}
}

func seatLabel(seat *int) string {
	if seat == nil {
		return "not assigned"
	}
	return fmt.Sprintf("%d", *seat)
}
