package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
)

// BookingRepository повторяет контракт postgres-репозитория бронирований,
// включая проверку пересечений, которую в БД выполняет exclusion constraint
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	if _, ok := r.s.barbers[booking.BarberID]; !ok {
		return nil, bookingRepo.ErrInvalidReference
	}
	if r.violatesSeatExclusion(booking) {
		return nil, bookingRepo.ErrSlotConflict
	}

	r.s.nextBookingID++
	now := r.s.now()
	stored := booking.Clone()
	stored.ID = r.s.nextBookingID
	stored.EndTime = booking.End()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.bookings[stored.ID] = stored

	booking.ID = stored.ID
	booking.EndTime = stored.EndTime
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if filter.BarberID != nil && b.BarberID != *filter.BarberID {
			continue
		}
		if filter.CustomerRef != nil && b.CustomerRef != *filter.CustomerRef {
			continue
		}
		if filter.From != nil && !b.End().After(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if filter.ActiveOnly && !b.IsActive() {
			continue
		}
		result = append(result, b.Clone())
	}

	descending := filter.BarberID == nil && filter.CustomerRef != nil
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime) != descending
		}
		return (a.ID < b.ID) != descending
	})
	return result, nil
}

func (r *BookingRepository) ListActiveOverlapping(ctx context.Context, barberID int64, from, to time.Time, excludeID int64) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.BarberID != barberID || b.ID == excludeID || !b.IsActive() || !b.Overlaps(from, to) {
			continue
		}
		result = append(result, b.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// LockBarber в памяти все транзакции уже сериализованы, проверяется только наличие транзакции
func (r *BookingRepository) LockBarber(ctx context.Context, barberID int64) error {
	if !inTx(ctx) {
		return bookingRepo.ErrNoTransaction
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking, expectedStatus domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	current, ok := r.s.bookings[booking.ID]
	if !ok || current.Status != expectedStatus {
		return bookingRepo.ErrStatusChanged
	}
	if r.violatesSeatExclusion(booking) {
		return bookingRepo.ErrSlotConflict
	}

	stored := current.Clone()
	stored.StartTime = booking.StartTime
	stored.EndTime = booking.End()
	stored.SeatNumber = booking.SeatNumber
	stored.Status = booking.Status
	stored.PaymentStatus = booking.PaymentStatus
	stored.CancellationReason = booking.CancellationReason
	stored.CancelledAt = booking.CancelledAt
	stored.CompletedAt = booking.CompletedAt
	stored.UpdatedAt = r.s.now()
	r.s.bookings[stored.ID] = stored

	booking.EndTime = stored.EndTime
	booking.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *BookingRepository) Aggregate(ctx context.Context, dayStart, dayEnd time.Time) (*domain.BookingAggregates, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	result := &domain.BookingAggregates{ByStatus: make(map[domain.BookingStatus]int)}
	customers := make(map[string]struct{})
	for _, b := range r.s.bookings {
		result.TotalBookings++
		customers[b.CustomerRef] = struct{}{}
		result.ByStatus[b.Status]++
		if b.Status == domain.StatusCancelled {
			continue
		}
		result.Revenue += b.ServicePrice
		if !b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			result.TodayBookings++
		}
	}
	result.TotalCustomers = len(customers)
	return result, nil
}

// violatesSeatExclusion соответствует ограничению bookings_no_seat_overlap
func (r *BookingRepository) violatesSeatExclusion(candidate *domain.Booking) bool {
	if !candidate.IsActive() || !candidate.IsSeated() {
		return false
	}
	for _, b := range r.s.bookings {
		if b.ID == candidate.ID || b.BarberID != candidate.BarberID || !b.IsActive() || !b.IsSeated() {
			continue
		}
		if *b.SeatNumber == *candidate.SeatNumber && b.Overlaps(candidate.StartTime, candidate.End()) {
			return true
		}
	}
	return false
}
