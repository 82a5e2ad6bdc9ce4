package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListActiveOverlapping(ctx context.Context, barberID int64, from, to time.Time, excludeID int64) ([]*domain.Booking, error)
	// LockBarber сериализует запись бронирований одного барбера до конца транзакции
	LockBarber(ctx context.Context, barberID int64) error
}

// BarberRepository интерфейс каталога барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CatalogService, error)
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
type Notifier interface {
	BookingCreated(booking *domain.Booking, reminderOffset time.Duration)
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
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
