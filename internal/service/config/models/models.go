package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Уровень, с которого взята конфигурация
const (
	SourceBarber  = "barber"
	SourceShop    = "shop"
	SourceDefault = "default"
)

// Request модели

// UpsertConfigRequest запрос на создание или изменение конфигурации
// Все поля опциональны - применяются только переданные значения
type UpsertConfigRequest struct {
	Actor                  domain.Actor
	BarberID               *int64 // nil - общая конфигурация парикмахерской
	SeatCapacity           *int
	UnseatedCapacity       *int
	DefaultDurationMinutes *int
	SlotStepMinutes        *int
	OpenTime               *string
	CloseTime              *string
	ReminderOffsetMinutes  *int
}

// IsEmpty true, если не передано ни одного поля
func (r *UpsertConfigRequest) IsEmpty() bool {
	return r.SeatCapacity == nil && r.UnseatedCapacity == nil && r.DefaultDurationMinutes == nil &&
		r.SlotStepMinutes == nil && r.OpenTime == nil && r.CloseTime == nil && r.ReminderOffsetMinutes == nil
}

// ApplyToConfig применяет переданные поля к конфигурации
func (r *UpsertConfigRequest) ApplyToConfig(c *domain.BookingConfig) {
	if r.SeatCapacity != nil {
		c.SeatCapacity = *r.SeatCapacity
	}
	if r.UnseatedCapacity != nil {
		c.UnseatedCapacity = *r.UnseatedCapacity
	}
	if r.DefaultDurationMinutes != nil {
		c.DefaultDurationMinutes = *r.DefaultDurationMinutes
	}
	if r.SlotStepMinutes != nil {
		c.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.OpenTime != nil {
		c.OpenTime = types.TimeString(*r.OpenTime)
	}
	if r.CloseTime != nil {
		c.CloseTime = types.TimeString(*r.CloseTime)
	}
	if r.ReminderOffsetMinutes != nil {
		c.ReminderOffsetMinutes = *r.ReminderOffsetMinutes
	}
}

// Response модели

// ConfigResponse действующая конфигурация
type ConfigResponse struct {
	ID                     int64      `json:"id,omitempty"`
	BarberID               *int64     `json:"barberId,omitempty"`
	Source                 string     `json:"source"`
	SeatCapacity           int        `json:"seatCapacity"`
	UnseatedCapacity       int        `json:"unseatedCapacity"`
	DefaultDurationMinutes int        `json:"defaultDurationMinutes"`
	SlotStepMinutes        int        `json:"slotStepMinutes"`
	OpenTime               string     `json:"openTime"`
	CloseTime              string     `json:"closeTime"`
	ReminderOffsetMinutes  int        `json:"reminderOffsetMinutes"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BookingConfig, source string) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                     c.ID,
		BarberID:               c.BarberID,
		Source:                 source,
		SeatCapacity:           c.SeatCapacity,
		UnseatedCapacity:       c.UnseatedCapacity,
		DefaultDurationMinutes: c.DefaultDurationMinutes,
		SlotStepMinutes:        c.SlotStepMinutes,
		OpenTime:               c.OpenTime.String(),
		CloseTime:              c.CloseTime.String(),
		ReminderOffsetMinutes:  c.ReminderOffsetMinutes,
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
