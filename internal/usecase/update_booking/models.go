package update_booking

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Request частичное изменение бронирования
type Request struct {
	Actor      domain.Actor
	BookingID  int64
	Status     *string // новый статус
	StartTime  *string // RFC3339 или "HH:MM" (дата бронирования сохраняется)
	SeatNumber *int
	Reason     *string // причина отмены
}

func (r *Request) changesSchedule() bool {
	return r.StartTime != nil || r.SeatNumber != nil
}

// CancelRequest отмена бронирования
type CancelRequest struct {
	Actor     domain.Actor
	BookingID int64
	Reason    *string
}

// PayRequest демонстрационная оплата
type PayRequest struct {
	Actor     domain.Actor
	BookingID int64
}
