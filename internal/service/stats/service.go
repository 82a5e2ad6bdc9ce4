package stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/stats/models"
)

// Service сводная статистика для администратора
type Service struct {
	barberRepo  BarberRepository
	bookingRepo BookingRepository
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса статистики
func NewService(barberRepo BarberRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		barberRepo:  barberRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Get возвращает сводку. "Сегодня" - локальные сутки сервера
func (s *Service) Get(ctx context.Context, actor domain.Actor) (*models.StatsResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.Forbidden("only admins can view stats")
	}

	total, available, err := s.barberRepo.Count(ctx)
	if err != nil {
		s.logger.Error("GetStats: barbers count error: %v", err)
		return nil, domain.NewStoreUnavailableError("count barbers", err)
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	aggregates, err := s.bookingRepo.Aggregate(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("GetStats: bookings aggregate error: %v", err)
		return nil, domain.NewStoreUnavailableError("aggregate bookings", err)
	}

	s.logger.Info("GetStats: barbers=%d, bookings=%d", total, aggregates.TotalBookings)
	return models.FromDomainStats(&domain.Stats{
		TotalBarbers:      total,
		AvailableBarbers:  available,
		BookingAggregates: *aggregates,
	}), nil
}
