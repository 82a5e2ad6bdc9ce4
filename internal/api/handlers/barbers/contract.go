package barbers

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/barbers/models"
)

type BarberService interface {
	List(ctx context.Context, onlyAvailable bool, email *string) (*models.BarberListResponse, error)
	GetByID(ctx context.Context, barberID int64) (*models.BarberResponse, error)
	Create(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error)
	Update(ctx context.Context, req *models.UpdateBarberRequest) (*models.BarberResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
