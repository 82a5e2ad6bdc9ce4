package update_booking_config

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/config/models"
)

// UpdateBookingConfigRequest HTTP request model
type UpdateBookingConfigRequest struct {
	SeatCapacity           *int    `json:"seatCapacity,omitempty"`
	UnseatedCapacity       *int    `json:"unseatedCapacity,omitempty"`
	DefaultDurationMinutes *int    `json:"defaultDurationMinutes,omitempty"`
	SlotStepMinutes        *int    `json:"slotStepMinutes,omitempty"`
	OpenTime               *string `json:"openTime,omitempty"`  // "HH:MM"
	CloseTime              *string `json:"closeTime,omitempty"` // "HH:MM"
	ReminderOffsetMinutes  *int    `json:"reminderOffsetMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBookingConfigRequest) ToServiceRequest(actor domain.Actor, barberID *int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		Actor:                  actor,
		BarberID:               barberID,
		SeatCapacity:           r.SeatCapacity,
		UnseatedCapacity:       r.UnseatedCapacity,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		SlotStepMinutes:        r.SlotStepMinutes,
		OpenTime:               r.OpenTime,
		CloseTime:              r.CloseTime,
		ReminderOffsetMinutes:  r.ReminderOffsetMinutes,
	}
}
