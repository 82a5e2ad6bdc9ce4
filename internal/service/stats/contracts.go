package stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BarberRepository счетчики барберов
type BarberRepository interface {
	Count(ctx context.Context) (total int, available int, err error)
}

// BookingRepository агрегаты по бронированиям
type BookingRepository interface {
	Aggregate(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingAggregates, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
