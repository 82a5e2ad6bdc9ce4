package barbers

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error)
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	List(ctx context.Context, filter domain.BarbersFilter) ([]*domain.Barber, error)
	Update(ctx context.Context, barber *domain.Barber) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
