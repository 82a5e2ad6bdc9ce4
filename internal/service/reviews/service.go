package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/review"
	"github.com/m04kA/SMC-BarberBooking/internal/service/reviews/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

// Service сервис отзывов и рейтинга барберов
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	barberRepo  BarberRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	barberRepo BarberRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		barberRepo:  barberRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create оставляет отзыв и пересчитывает рейтинг барбера в одной транзакции
// Отзыв возможен только на завершенное бронирование и только от его клиента
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("CreateReview: booking=%d, rating=%d by %s=%s", req.BookingID, req.Rating, req.Actor.Role, req.Actor.ID)

	if errs := validator.Validate(req); errs != nil {
		if missing := errs.Missing(); len(missing) > 0 {
			return nil, domain.NewMissingFieldsError(missing...)
		}
		return nil, domain.NewValidationError(errs.Error())
	}

	var created *domain.Review
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return domain.NewNotFoundError("booking", req.BookingID)
			}
			return domain.NewStoreUnavailableError("get booking", err)
		}

		if !req.Actor.IsCustomer(booking.CustomerRef) {
			return domain.Forbidden("only the customer of the booking can review it")
		}
		if booking.Status != domain.StatusCompleted {
			return domain.NewValidationError(fmt.Sprintf("only completed bookings can be reviewed, booking is %s", booking.Status))
		}

		created, err = s.reviewRepo.Create(txCtx, &domain.Review{
			BookingID:   booking.ID,
			BarberID:    booking.BarberID,
			CustomerRef: booking.CustomerRef,
			Rating:      req.Rating,
			Comment:     req.Comment,
		})
		if err != nil {
			if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
				return domain.NewConflictError(booking.ID, "booking already reviewed")
			}
			return domain.NewStoreUnavailableError("create review", err)
		}

		// Пересчет рейтинга по всем отзывам барбера
		summary, err := s.reviewRepo.RatingSummary(txCtx, booking.BarberID)
		if err != nil {
			return domain.NewStoreUnavailableError("rating summary", err)
		}
		if err := s.barberRepo.UpdateRating(txCtx, booking.BarberID, summary); err != nil {
			return domain.NewStoreUnavailableError("update rating", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("CreateReview: booking=%d rejected: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Info("CreateReview: created review id=%d for barber=%d", created.ID, created.BarberID)
	return models.FromDomainReview(created), nil
}

// ListByBarber возвращает отзывы барбера, новые первыми
// Публичный метод - доступен всем
func (s *Service) ListByBarber(ctx context.Context, barberID int64) (*models.ReviewListResponse, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, domain.NewNotFoundError("barber", barberID)
		}
		return nil, domain.NewStoreUnavailableError("get barber", err)
	}

	reviews, err := s.reviewRepo.ListByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("ListReviews: barber=%d - repository error: %v", barberID, err)
		return nil, domain.NewStoreUnavailableError("list reviews", err)
	}
	return models.FromDomainReviewList(reviews, barber), nil
}
