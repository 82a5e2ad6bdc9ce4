package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

var (
	errInvalidStartTime = errors.New("invalid startTime, expected RFC3339")
	errInvalidEndTime   = errors.New("invalid endTime, expected RFC3339")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerRef            string   `json:"customerRef"`
	CustomerName           *string  `json:"customerName,omitempty"`
	CustomerPhone          *string  `json:"customerPhone,omitempty"`
	BarberID               int64    `json:"barberId"`
	ServiceID              *int64   `json:"serviceId,omitempty"`
	ServiceName            *string  `json:"serviceName,omitempty"`
	ServicePrice           *float64 `json:"servicePrice,omitempty"`
	ServiceDurationMinutes *int     `json:"serviceDurationMinutes,omitempty"`
	StartTime              string   `json:"startTime"`         // "2030-05-10T09:00:00+03:00"
	EndTime                *string  `json:"endTime,omitempty"` // если не задано - startTime + длительность
	SeatNumber             *int     `json:"seatNumber,omitempty"`
	Notes                  *string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Пустой startTime не ошибка парсинга: об отсутствии поля сообщит валидация use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	req := &createBooking.Request{
		Actor:                  actor,
		CustomerRef:            r.CustomerRef,
		CustomerName:           r.CustomerName,
		CustomerPhone:          r.CustomerPhone,
		BarberID:               r.BarberID,
		ServiceID:              r.ServiceID,
		ServiceName:            r.ServiceName,
		ServicePrice:           r.ServicePrice,
		ServiceDurationMinutes: r.ServiceDurationMinutes,
		SeatNumber:             r.SeatNumber,
		Notes:                  r.Notes,
	}

	if r.StartTime != "" {
		start, err := time.Parse(time.RFC3339, r.StartTime)
		if err != nil {
			return nil, errInvalidStartTime
		}
		req.StartTime = &start
	}
	if r.EndTime != nil && *r.EndTime != "" {
		end, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, errInvalidEndTime
		}
		req.EndTime = &end
	}
	return req, nil
}
