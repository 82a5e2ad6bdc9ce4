package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	Create(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogService, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.CatalogService, error)
	Update(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
