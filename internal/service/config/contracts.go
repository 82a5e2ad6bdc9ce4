package config

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ConfigRepository интерфейс репозитория параметров расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error)
	GetByBarber(ctx context.Context, barberID *int64) (*domain.BookingConfig, error)
	GetConfigWithHierarchy(ctx context.Context, barberID int64) (*domain.BookingConfig, error)
	Update(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
