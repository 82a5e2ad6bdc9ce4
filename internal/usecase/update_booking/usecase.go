package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

// UseCase жизненный цикл бронирования: смена статуса, перенос, смена кресла, оплата
type UseCase struct {
	bookingRepo  BookingRepository
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
	configs ConfigResolver,
	cache OccupancyCache,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configs:      configs,
		cache:        cache,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// mutation результат одной транзакции
type mutation struct {
	before *domain.Booking
	after  *domain.Booking
}

// Execute применяет изменение статуса, времени и кресла одной условной записью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: id=%d, status=%s, start=%s, seat=%s by %s=%s",
		req.BookingID, ptr.Deref(req.Status, "-"), ptr.Deref(req.StartTime, "-"), seatLabel(req.SeatNumber), req.Actor.Role, req.Actor.ID)

	// 1. Валидация входных данных
	next, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBooking: id=%d validation failed: %v", req.BookingID, err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Чтение, проверки и запись в одной сериализуемой транзакции
	m, err := uc.mutate(ctx, "UpdateBooking", req.BookingID, func(txCtx context.Context, current *domain.Booking) (*domain.Booking, error) {
		updated := current.Clone()

		// 2.1. Статус
		if next != nil {
			if err := checkTransition(req.Actor, current, *next); err != nil {
				return nil, err
			}
			applyStatus(updated, *next, req.Reason, now)
		}

		// 2.2. Время и кресло
		if req.changesSchedule() {
			if !req.Actor.CanManageBarber(current.BarberID) {
				return nil, domain.Forbidden("only the barber or an admin can move a booking")
			}
			if !current.IsActive() {
				return nil, domain.NewValidationError(fmt.Sprintf("booking is %s, time and seat can no longer change", current.Status))
			}
			if err := uc.reschedule(txCtx, updated, req, now); err != nil {
				return nil, err
			}
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, "UpdateBooking", m)
	return models.FromDomainBooking(m.after), nil
}

// Cancel отменяет бронирование и сразу освобождает его интервал
func (uc *UseCase) Cancel(ctx context.Context, req *CancelRequest) (*models.BookingResponse, error) {
	return uc.Execute(ctx, &Request{
		Actor:     req.Actor,
		BookingID: req.BookingID,
		Status:    ptr.Ptr(string(domain.StatusCancelled)),
		Reason:    req.Reason,
	})
}

// Pay демонстрационная оплата: отмечает бронирование оплаченным и подтверждает ожидающее
// Платить может клиент бронирования или администратор
func (uc *UseCase) Pay(ctx context.Context, req *PayRequest) (*models.BookingResponse, error) {
	uc.logger.Info("PayBooking: id=%d by %s=%s", req.BookingID, req.Actor.Role, req.Actor.ID)

	if req.BookingID <= 0 {
		return nil, domain.NewMissingFieldsError("bookingId")
	}

	m, err := uc.mutate(ctx, "PayBooking", req.BookingID, func(_ context.Context, current *domain.Booking) (*domain.Booking, error) {
		if !req.Actor.IsAdmin() && !req.Actor.IsCustomer(current.CustomerRef) {
			return nil, domain.Forbidden("only the customer of the booking can pay for it")
		}
		if !current.IsActive() {
			return nil, domain.NewValidationError(fmt.Sprintf("booking is %s and cannot be paid", current.Status))
		}
		if current.PaymentStatus == domain.PaymentPaid {
			return nil, domain.NewValidationError("booking is already paid")
		}

		updated := current.Clone()
		updated.PaymentStatus = domain.PaymentPaid
		if current.Status == domain.StatusPending {
			updated.Status = domain.StatusConfirmed
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, "PayBooking", m)
	return models.FromDomainBooking(m.after), nil
}

// mutate читает бронирование, применяет change и сохраняет результат условным UPDATE
// Порядок блокировок совпадает с созданием: сначала барбер, затем строки бронирований
func (uc *UseCase) mutate(
	ctx context.Context,
	op string,
	bookingID int64,
	change func(txCtx context.Context, current *domain.Booking) (*domain.Booking, error),
) (*mutation, error) {
	var m mutation

	// Барбер бронирования не меняется, поэтому его можно узнать до транзакции
	err := func() error {
		located, err := uc.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		return uc.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := uc.bookingRepo.LockBarber(txCtx, located.BarberID); err != nil {
				return err
			}

			current, err := uc.bookingRepo.GetByID(txCtx, bookingID)
			if err != nil {
				return err
			}

			updated, err := change(txCtx, current)
			if err != nil {
				return err
			}

			if err := uc.bookingRepo.Update(txCtx, updated, current.Status); err != nil {
				return err
			}
			m.before, m.after = current, updated
			return nil
		})
	}()
	if err != nil {
		err = uc.mapWriteError(op, bookingID, err)
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.IncBookingConflict()
		}
		uc.logger.Warn("%s: id=%d rejected: %v", op, bookingID, err)
		return nil, err
	}
	return &m, nil
}

// reschedule переносит бронирование и/или меняет кресло с проверкой пересечений
// Вызывается внутри mutate, блокировка барбера уже взята
func (uc *UseCase) reschedule(ctx context.Context, booking *domain.Booking, req *Request, now time.Time) error {
	if req.StartTime != nil {
		start, err := parseStartTime(*req.StartTime, booking.StartTime)
		if err != nil {
			return err
		}
		if start.Before(now) {
			return domain.NewValidationError("startTime is in the past")
		}
		booking.StartTime = start
		booking.EndTime = start.Add(booking.Duration())
	}

	config, err := uc.configs.Resolve(ctx, booking.BarberID)
	if err != nil {
		return err
	}
	if req.SeatNumber != nil {
		if !config.IsValidSeat(*req.SeatNumber) {
			return domain.NewValidationError(fmt.Sprintf("seatNumber must be between 1 and %d", config.SeatCapacity))
		}
		booking.SeatNumber = ptr.Ptr(*req.SeatNumber)
	}
	if !booking.IsSeated() && !config.AcceptsUnseated() {
		return domain.NewValidationError("seatNumber is required: barber does not take bookings without a seat")
	}

	existing, err := uc.bookingRepo.ListActiveOverlapping(ctx, booking.BarberID, booking.StartTime, booking.End(), booking.ID)
	if err != nil {
		return err
	}
	if conflict := domain.FindConflict(existing, booking, config.UnseatedCapacity); conflict != nil {
		return domain.NewConflictError(conflict.ID, "requested time is already taken")
	}
	return nil
}

// afterCommit метрики, кеш и уведомления; ошибки не влияют на результат
func (uc *UseCase) afterCommit(ctx context.Context, op string, m *mutation) {
	before, after := m.before, m.after
	uc.logger.Info("%s: id=%d saved, status %s -> %s, payment=%s", op, after.ID, before.Status, after.Status, after.PaymentStatus)

	ctx = context.WithoutCancel(ctx)
	if err := uc.cache.Invalidate(ctx, before.BarberID, before.StartTime, before.End()); err != nil {
		uc.logger.Warn("%s: failed to invalidate occupancy cache for barber=%d: %v", op, before.BarberID, err)
	}
	if !after.StartTime.Equal(before.StartTime) {
		if err := uc.cache.Invalidate(ctx, after.BarberID, after.StartTime, after.End()); err != nil {
			uc.logger.Warn("%s: failed to invalidate occupancy cache for barber=%d: %v", op, after.BarberID, err)
		}
	}

	if after.Status != before.Status {
		uc.metrics.IncBookingTransition(string(after.Status))
	}
	if after.Status != before.Status || scheduleChanged(before, after) {
		uc.notifier.StatusChanged(after.Clone(), before.Status)
	}
}

// scheduleChanged время или кресло бронирования изменились
func scheduleChanged(before, after *domain.Booking) bool {
	if !after.StartTime.Equal(before.StartTime) || !after.End().Equal(before.End()) {
		return true
	}
	return ptr.Deref(before.SeatNumber, 0) != ptr.Deref(after.SeatNumber, 0)
}

// mapWriteError приводит ошибки транзакции к доменным
func (uc *UseCase) mapWriteError(op string, bookingID int64, err error) error {
	var (
		conflict   *domain.ConflictError
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
	)
	switch {
	case errors.As(err, &conflict), errors.As(err, &validation), errors.As(err, &notFound),
		errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrStoreUnavailable):
		return err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return domain.NewNotFoundError("booking", bookingID)
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		return domain.NewConflictError(bookingID, "booking was changed concurrently, reload and retry")
	case errors.Is(err, bookingRepo.ErrSlotConflict), errors.Is(err, txmanager.ErrSerializationFailure):
		return domain.NewConflictError(0, "requested time was taken by a concurrent booking")
	default:
		uc.logger.Error("%s: id=%d - store error: %v", op, bookingID, err)
		return domain.NewStoreUnavailableError("update booking", err)
	}
}

// applyStatus переводит бронирование в новый статус с отметками времени
func applyStatus(b *domain.Booking, next domain.BookingStatus, reason *string, now time.Time) {
	b.Status = next
	switch next {
	case domain.StatusCancelled:
		b.CancelledAt = ptr.Ptr(now)
		b.CancellationReason = reason
	case domain.StatusCompleted:
		b.CompletedAt = ptr.Ptr(now)
	}
}
