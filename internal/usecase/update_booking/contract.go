package update_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListActiveOverlapping(ctx context.Context, barberID int64, from, to time.Time, excludeID int64) ([]*domain.Booking, error)
	LockBarber(ctx context.Context, barberID int64) error
	// Update применяется, только если статус в хранилище все еще expectedStatus
	Update(ctx context.Context, booking *domain.Booking, expectedStatus domain.BookingStatus) error
}

// ConfigResolver возвращает действующую конфигурацию барбера
type ConfigResolver interface {
	Resolve(ctx context.Context, barberID int64) (*domain.BookingConfig, error)
}

// OccupancyCache инвалидация кеша занятости после записи
type OccupancyCache interface {
	Invalidate(ctx context.Context, barberID int64, start, end time.Time) error
}

// Notifier асинхронная отправка уведомлений, не блокирует вызов
// StatusChanged вызывается и при переносе или смене кресла без смены статуса
type Notifier interface {
	StatusChanged(booking *domain.Booking, previous domain.BookingStatus)
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingConflict()
	IncBookingTransition(to string)
}

// TransactionManager интерфейс для управления транзакциями
// Достаточно READ COMMITTED: запись сериализуется блокировкой барбера, чтения после нее видят зафиксированные строки
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
