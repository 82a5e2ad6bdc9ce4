package services

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, actor domain.Actor, includeInactive bool) (*models.ServiceListResponse, error)
	Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, serviceID int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
