package reviews

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListByBarber(ctx context.Context, barberID int64) ([]*domain.Review, error)
	RatingSummary(ctx context.Context, barberID int64) (domain.RatingSummary, error)
}

// BookingRepository интерфейс для чтения бронирования, на которое оставляют отзыв
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// BarberRepository интерфейс для обновления рейтинга барбера
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	UpdateRating(ctx context.Context, barberID int64, summary domain.RatingSummary) error
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
