package get_occupancy

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// UseCase расчет занятости барбера и свободных слотов
// Только чтение: ошибки хранилища не блокируют ответ (fail-open), кеш лишь ускоряет дневные запросы
type UseCase struct {
	bookingRepo  BookingRepository
	cache        OccupancyCache
	configs      ConfigResolver
	defaults     domain.BookingConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	cache OccupancyCache,
	configs ConfigResolver,
	defaults *domain.BookingConfig,
	logger Logger,
) *UseCase {
	if defaults == nil {
		defaults = domain.DefaultBookingConfig()
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		cache:        cache,
		configs:      configs,
		defaults:     *defaults,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает занятые интервалы барбера за день или окно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и окно запроса
	from, to, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetOccupancy: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{BarberID: req.BarberID, From: from, To: to}
	byDay := req.Date != nil

	// 2. Дневной запрос сначала ищем в кеше; версию дня запоминаем до чтения хранилища
	var (
		version  int64
		fillable bool
	)
	if byDay {
		cached, v, found, err := uc.cache.Get(ctx, req.BarberID, from)
		if err != nil {
			uc.logger.Warn("GetOccupancy: barber=%d, date=%s - cache read failed: %v", req.BarberID, from.Format(domain.DateFormat), err)
		}
		if found {
			resp.Occupancy = cached
			return resp, nil
		}
		version, fillable = v, err == nil
	}

	// 3. Читаем хранилище; при недоступности отдаем пустую занятость с пометкой
	bookings, err := uc.bookingRepo.ListActiveOverlapping(ctx, req.BarberID, from, to, 0)
	if err != nil {
		uc.logger.Warn("GetOccupancy: barber=%d - store unavailable, returning empty occupancy: %v", req.BarberID, err)
		resp.Occupancy = []domain.Occupancy{}
		resp.Degraded = true
		return resp, nil
	}

	resp.Occupancy = domain.ComputeOccupancy(bookings, from, to)

	// 4. Заполняем кеш, если день не инвалидировали, пока читали хранилище
	if fillable {
		if _, err := uc.cache.Set(ctx, req.BarberID, from, version, resp.Occupancy); err != nil {
			uc.logger.Warn("GetOccupancy: barber=%d - cache write failed: %v", req.BarberID, err)
		}
	}

	return resp, nil
}

// AvailableSlots возвращает слоты дня с перечнем свободных кресел и остатком общей емкости
func (uc *UseCase) AvailableSlots(ctx context.Context, req *SlotsRequest) (*SlotsResponse, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s, duration=%d",
		req.BarberID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateSlotsRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return nil, domain.NewValidationError("date is in the past")
	}

	resp := &SlotsResponse{BarberID: req.BarberID, Date: startOfDay(req.Date)}

	// 2. Конфигурация; при ошибке работаем на значениях по умолчанию
	config, err := uc.configs.Resolve(ctx, req.BarberID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: barber=%d - config unavailable, using defaults: %v", req.BarberID, err)
		defaults := uc.defaults
		config = &defaults
		resp.Degraded = true
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = config.DefaultDurationMinutes
	}
	resp.DurationMinutes = duration

	// 3. Генерируем слоты
	starts, err := generateTimeSlots(config, duration, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, domain.NewValidationError("invalid opening hours in configuration")
	}

	// 4. Занятость дня
	date := resp.Date
	occupancy, err := uc.Execute(ctx, &Request{BarberID: req.BarberID, Date: &date})
	if err != nil {
		return nil, err
	}
	resp.Degraded = resp.Degraded || occupancy.Degraded

	// 5. Свободные места в каждом слоте
	resp.Slots = calculateAvailability(starts, duration, occupancy.Occupancy, config)

	uc.logger.Info("GetAvailableSlots: generated %d slots for barber=%d, date=%s",
		len(resp.Slots), req.BarberID, date.Format(domain.DateFormat))
	return resp, nil
}
