package get_booking_config

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, barberID *int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
