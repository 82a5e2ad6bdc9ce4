package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модель запроса на создание бронирования
// json теги задают имена полей в ошибках валидации
type Request struct {
	Actor         domain.Actor `json:"-"`
	CustomerRef   string       `json:"customerRef" validate:"required,max=255"` // id, email или телефон клиента
	CustomerName  *string      `json:"customerName" validate:"omitempty,max=255"`
	CustomerPhone *string      `json:"customerPhone" validate:"omitempty,max=32"`
	BarberID      int64        `json:"barberId" validate:"required,gt=0"`

	// Услуга: ID из каталога и/или явные значения снимка (явные значения приоритетнее)
	ServiceID              *int64   `json:"serviceId" validate:"omitempty,gt=0"`
	ServiceName            *string  `json:"serviceName" validate:"omitempty,max=255"`
	ServicePrice           *float64 `json:"servicePrice" validate:"omitempty,gte=0"`
	ServiceDurationMinutes *int     `json:"serviceDurationMinutes" validate:"omitempty,gte=5,lte=480"`

	StartTime  *time.Time `json:"startTime" validate:"required"`
	EndTime    *time.Time `json:"endTime"`                            // если не задано - startTime + длительность
	SeatNumber *int       `json:"seatNumber" validate:"omitempty,gte=1"` // верхняя граница - из конфигурации
	Notes      *string    `json:"notes" validate:"omitempty,max=500"`
}
