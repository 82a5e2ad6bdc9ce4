package get_available_slots

import (
	"context"

	getOccupancy "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_occupancy"
)

type GetAvailableSlotsUseCase interface {
	AvailableSlots(ctx context.Context, req *getOccupancy.SlotsRequest) (*getOccupancy.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
