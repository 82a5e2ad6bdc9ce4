package create_booking

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	barberRepo   BarberRepository
	catalogRepo  CatalogRepository
	configs      ConfigResolver
	cache        OccupancyCache
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	barberRepo BarberRepository,
	catalogRepo CatalogRepository,
	configs ConfigResolver,
	cache OccupancyCache,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		barberRepo:   barberRepo,
		catalogRepo:  catalogRepo,
		configs:      configs,
		cache:        cache,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка идут в одной транзакции под блокировкой барбера,
// окончательно пересечения кресел отсекает exclusion constraint в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: customer=%s, barber=%d by %s=%s", req.CustomerRef, req.BarberID, req.Actor.Role, req.Actor.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if err := validateStartTime(*req.StartTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Барбер должен существовать и принимать записи
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, domain.NewNotFoundError("barber", req.BarberID)
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, domain.NewStoreUnavailableError("get barber", err)
	}
	if !barber.IsAvailable {
		uc.logger.Warn("CreateBooking: barber id=%d is not accepting bookings", req.BarberID)
		return nil, domain.NewValidationError("barber is not accepting bookings")
	}

	// 3. Снимок услуги из каталога
	var service *domain.CatalogService
	if req.ServiceID != nil {
		service, err = uc.catalogRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return nil, domain.NewNotFoundError("service", *req.ServiceID)
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, domain.NewStoreUnavailableError("get service", err)
		}
		if !service.IsActive {
			return nil, domain.NewValidationError("service is not offered anymore")
		}
	}

	// 4. Конфигурация барбера: кресла, общая емкость, длительность
	config, err := uc.configs.Resolve(ctx, req.BarberID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve config for barber=%d: %v", req.BarberID, err)
		return nil, err
	}
	if err := validateSeat(req.SeatNumber, config); err != nil {
		uc.logger.Warn("CreateBooking: seat validation failed: %v", err)
		return nil, err
	}
	duration, err := resolveDuration(req, service, config)
	if err != nil {
		return nil, err
	}

	candidate := buildBooking(req, service, duration)

	// 5. Проверка пересечений и вставка в транзакции
	var result *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Блокировка барбера первой командой: конкурирующие записи к нему ждут конца транзакции
		if err := uc.bookingRepo.LockBarber(txCtx, req.BarberID); err != nil {
			return err
		}

		// 5.2. Актуальная занятость на момент записи
		existing, err := uc.bookingRepo.ListActiveOverlapping(txCtx, req.BarberID, candidate.StartTime, candidate.EndTime, 0)
		if err != nil {
			return err
		}

		if conflict := domain.FindConflict(existing, candidate, config.UnseatedCapacity); conflict != nil {
			uc.logger.Warn("CreateBooking: barber=%d, start=%s conflicts with booking id=%d",
				req.BarberID, candidate.StartTime.Format(timeLayout), conflict.ID)
			return domain.NewConflictError(conflict.ID, "requested time is already taken")
		}

		// 5.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, candidate)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		err = uc.mapWriteError(req.BarberID, err)
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, barber=%d, start=%s, seat=%s",
		result.ID, result.BarberID, result.StartTime.Format(timeLayout), seatLabel(result.SeatNumber))

	// 6. Побочные эффекты после коммита не влияют на результат
	if err := uc.cache.Invalidate(context.WithoutCancel(ctx), result.BarberID, result.StartTime, result.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate occupancy cache for barber=%d: %v", result.BarberID, err)
	}
	uc.notifier.BookingCreated(result.Clone(), config.ReminderOffset())

	return models.FromDomainBooking(result), nil
}

// mapWriteError приводит ошибки транзакции к доменным
func (uc *UseCase) mapWriteError(barberID int64, err error) error {
	var (
		conflict   *domain.ConflictError
		validation *domain.ValidationError
	)
	switch {
	case errors.As(err, &conflict), errors.As(err, &validation):
		return err
	case errors.Is(err, bookingRepo.ErrSlotConflict), errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateBooking: barber=%d - store rejected concurrent write: %v", barberID, err)
		return domain.NewConflictError(0, "requested time was taken by a concurrent booking")
	case errors.Is(err, bookingRepo.ErrInvalidReference):
		return domain.NewNotFoundError("barber", barberID)
	default:
		uc.logger.Error("CreateBooking: barber=%d - failed to create booking: %v", barberID, err)
		return domain.NewStoreUnavailableError("create booking", err)
	}
}

// buildBooking собирает новое бронирование в статусе pending
func buildBooking(req *Request, service *domain.CatalogService, duration int) *domain.Booking {
	booking := &domain.Booking{
		CustomerRef:     req.CustomerRef,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		StartTime:       *req.StartTime,
		SeatNumber:      req.SeatNumber,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
		Notes:           req.Notes,
	}
	booking.EndTime = booking.StartTime.Add(booking.Duration())
	if req.EndTime != nil {
		booking.EndTime = *req.EndTime
	}

	if service != nil {
		booking.ServiceName = service.Name
		booking.ServicePrice = service.Price
	}
	if req.ServiceName != nil {
		booking.ServiceName = *req.ServiceName
	}
	if req.ServicePrice != nil {
		booking.ServicePrice = *req.ServicePrice
	}
	return booking
}
