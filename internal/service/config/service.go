package config

import (
	"context"
	"errors"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	configRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/config"
	"github.com/m04kA/SMC-BarberBooking/internal/service/config/models"
)

// Service сервис параметров расписания
// Приоритет: конфигурация барбера > общая конфигурация > значения из config.toml
type Service struct {
	configRepo ConfigRepository
	txManager  TransactionManager
	defaults   domain.BookingConfig
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, txManager TransactionManager, defaults *domain.BookingConfig, logger Logger) *Service {
	if defaults == nil {
		defaults = domain.DefaultBookingConfig()
	}
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		defaults:   *defaults,
		logger:     logger,
	}
}

// Resolve возвращает действующую конфигурацию барбера
func (s *Service) Resolve(ctx context.Context, barberID int64) (*domain.BookingConfig, error) {
	config, _, err := s.resolve(ctx, &barberID)
	return config, err
}

// Get получает действующую конфигурацию; barberID nil - общая конфигурация
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, barberID *int64) (*models.ConfigResponse, error) {
	config, source, err := s.resolve(ctx, barberID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(config, source), nil
}

// Upsert создает или частично обновляет конфигурацию уровня req.BarberID
// Доступно только администратору
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpsertConfig: barber=%s by %s=%s", barberLabel(req.BarberID), req.Actor.Role, req.Actor.ID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpsertConfig: access denied for %s=%s", req.Actor.Role, req.Actor.ID)
		return nil, domain.Forbidden("only admins can change booking configuration")
	}
	if req.IsEmpty() {
		return nil, domain.NewValidationError("no configuration fields supplied")
	}

	var result *domain.BookingConfig
	source := models.SourceShop
	if req.BarberID != nil {
		source = models.SourceBarber
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Текущая конфигурация этого уровня (блокируется до конца транзакции)
		existing, err := s.configRepo.GetByBarber(txCtx, req.BarberID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return domain.NewStoreUnavailableError("get config", err)
		}

		// 2. Если уровня еще нет, начинаем с того, что действует сейчас
		target := existing
		if target == nil {
			inherited, _, err := s.resolve(txCtx, req.BarberID)
			if err != nil {
				return err
			}
			target = inherited
			target.ID = 0
			target.BarberID = req.BarberID
		}

		// 3. Применяем и валидируем
		req.ApplyToConfig(target)
		if err := target.Validate(); err != nil {
			return err
		}

		// 4. Сохраняем
		if existing == nil {
			result, err = s.configRepo.Create(txCtx, target)
		} else {
			result, err = s.configRepo.Update(txCtx, target)
		}
		if errors.Is(err, configRepo.ErrInvalidReference) {
			return domain.NewNotFoundError("barber", *req.BarberID)
		}
		if err != nil {
			return domain.NewStoreUnavailableError("save config", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("UpsertConfig: barber=%s failed: %v", barberLabel(req.BarberID), err)
		return nil, err
	}

	s.logger.Info("UpsertConfig: saved config id=%d", result.ID)
	return models.FromDomainConfig(result, source), nil
}

// resolve возвращает копию действующей конфигурации и уровень, с которого она взята
func (s *Service) resolve(ctx context.Context, barberID *int64) (*domain.BookingConfig, string, error) {
	var (
		config *domain.BookingConfig
		err    error
		source = models.SourceShop
	)
	if barberID != nil {
		config, err = s.configRepo.GetConfigWithHierarchy(ctx, *barberID)
		if err == nil && config.BarberID != nil {
			source = models.SourceBarber
		}
	} else {
		config, err = s.configRepo.GetByBarber(ctx, nil)
	}

	if errors.Is(err, configRepo.ErrConfigNotFound) {
		defaults := s.defaults
		return &defaults, models.SourceDefault, nil
	}
	if err != nil {
		s.logger.Error("ResolveConfig: barber=%s repository error: %v", barberLabel(barberID), err)
		return nil, "", domain.NewStoreUnavailableError("resolve config", err)
	}
	return config, source, nil
}

func barberLabel(barberID *int64) string {
	if barberID == nil {
		return "shop"
	}
	return strconv.FormatInt(*barberID, 10)
}
