package bookings

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

// Service чтение бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видят его клиент-владелец, барбер бронирования и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s=%s", id, actor.Role, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, domain.NewNotFoundError("booking", id)
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, domain.NewStoreUnavailableError("get booking", err)
	}

	if !actor.CanView(booking) {
		s.logger.Warn("GetByID: access denied for %s=%s to booking id=%d", actor.Role, actor.ID, id)
		return nil, domain.Forbidden("booking belongs to another customer or barber")
	}

	return models.FromDomainBooking(booking), nil
}

// ListByBarber расписание барбера по возрастанию времени начала
// Доступно самому барберу и администратору
func (s *Service) ListByBarber(ctx context.Context, req *models.ListBarberBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByBarber: barber=%d, from=%v, to=%v, status=%s, activeOnly=%t",
		req.BarberID, req.From, req.To, ptr.Deref(req.Status, "any"), req.ActiveOnly)

	if !req.Actor.CanManageBarber(req.BarberID) {
		s.logger.Warn("ListByBarber: access denied for %s=%s to barber=%d", req.Actor.Role, req.Actor.ID, req.BarberID)
		return nil, domain.Forbidden("schedule belongs to another barber")
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, domain.NewValidationError("from must be before to")
	}

	filter := domain.BookingsFilter{
		BarberID:   &req.BarberID,
		From:       req.From,
		To:         req.To,
		ActiveOnly: req.ActiveOnly,
	}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByBarber: repository error for barber=%d: %v", req.BarberID, err)
		return nil, domain.NewStoreUnavailableError("list barber bookings", err)
	}

	s.logger.Info("ListByBarber: fetched %d bookings for barber=%d", len(bookings), req.BarberID)
	return models.FromDomainBookingList(bookings), nil
}

// ListByCustomer история клиента, сначала новые
// Доступно самому клиенту и администратору
func (s *Service) ListByCustomer(ctx context.Context, req *models.ListCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByCustomer: customer=%s, status=%s, activeOnly=%t", req.CustomerRef, ptr.Deref(req.Status, "any"), req.ActiveOnly)

	if req.CustomerRef == "" {
		return nil, domain.NewMissingFieldsError("customerRef")
	}
	if !req.Actor.IsAdmin() && !req.Actor.IsCustomer(req.CustomerRef) {
		s.logger.Warn("ListByCustomer: access denied for %s=%s to customer=%s", req.Actor.Role, req.Actor.ID, req.CustomerRef)
		return nil, domain.Forbidden("history belongs to another customer")
	}

	filter := domain.BookingsFilter{
		CustomerRef: &req.CustomerRef,
		ActiveOnly:  req.ActiveOnly,
	}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByCustomer: repository error for customer=%s: %v", req.CustomerRef, err)
		return nil, domain.NewStoreUnavailableError("list customer bookings", err)
	}

	s.logger.Info("ListByCustomer: fetched %d bookings for customer=%s", len(bookings), req.CustomerRef)
	return models.FromDomainBookingList(bookings), nil
}
