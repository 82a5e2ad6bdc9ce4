package get_occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveOverlapping возвращает активные бронирования барбера, пересекающие [from, to)
	ListActiveOverlapping(ctx context.Context, barberID int64, from, to time.Time, excludeID int64) ([]*domain.Booking, error)
}

// OccupancyCache интерфейс кеша занятости по дням
// Get отдает версию дня, Set записывает только при той же версии (между ними не было инвалидации)
type OccupancyCache interface {
	Get(ctx context.Context, barberID int64, day time.Time) (occupancy []domain.Occupancy, version int64, found bool, err error)
	Set(ctx context.Context, barberID int64, day time.Time, version int64, occupancy []domain.Occupancy) (stored bool, err error)
}

// ConfigResolver возвращает действующую конфигурацию барбера
type ConfigResolver interface {
	Resolve(ctx context.Context, barberID int64) (*domain.BookingConfig, error)
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
