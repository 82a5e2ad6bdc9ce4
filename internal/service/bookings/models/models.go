package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модели

// ListBarberBookingsRequest запрос расписания барбера
type ListBarberBookingsRequest struct {
	Actor      domain.Actor
	BarberID   int64
	From       *time.Time
	To         *time.Time
	Status     *string
	ActiveOnly bool
}

// ListCustomerBookingsRequest запрос истории клиента
type ListCustomerBookingsRequest struct {
	Actor       domain.Actor
	CustomerRef string
	Status      *string
	ActiveOnly  bool
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerRef     string  `json:"customerRef"`
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	BarberID        int64   `json:"barberId"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"serviceDurationMinutes"`
	StartTime       string  `json:"startTime"` // RFC3339
	EndTime         string  `json:"endTime"`   // RFC3339
	SeatNumber      *int    `json:"seatNumber,omitempty"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		CustomerRef:        b.CustomerRef,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		BarberID:           b.BarberID,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		DurationMinutes:    b.DurationMinutes,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.End().Format(time.RFC3339),
		SeatNumber:         b.SeatNumber,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTime(b.CancelledAt),
		CompletedAt:        formatTime(b.CompletedAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", domain.NewValidationError("unknown booking status " + status)
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
