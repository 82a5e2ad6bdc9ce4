package barbers

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarberBooking/internal/service/barbers/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

// Service сервис каталога барберов
type Service struct {
	barberRepo BarberRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса барберов
func NewService(barberRepo BarberRepository, logger Logger) *Service {
	return &Service{
		barberRepo: barberRepo,
		logger:     logger,
	}
}

// List возвращает барберов, отсортированных по имени
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, onlyAvailable bool, email *string) (*models.BarberListResponse, error) {
	barbers, err := s.barberRepo.List(ctx, domain.BarbersFilter{OnlyAvailable: onlyAvailable, Email: email})
	if err != nil {
		s.logger.Error("ListBarbers: onlyAvailable=%t, email=%s - repository error: %v", onlyAvailable, ptr.Deref(email, "any"), err)
		return nil, domain.NewStoreUnavailableError("list barbers", err)
	}
	return models.FromDomainBarberList(barbers), nil
}

// GetByID возвращает профиль барбера
func (s *Service) GetByID(ctx context.Context, barberID int64) (*models.BarberResponse, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, domain.NewNotFoundError("barber", barberID)
		}
		s.logger.Error("GetBarber: id=%d - repository error: %v", barberID, err)
		return nil, domain.NewStoreUnavailableError("get barber", err)
	}
	return models.FromDomainBarber(barber), nil
}

// Create регистрирует барбера
// Доступно только администратору, новый барбер сразу принимает записи
func (s *Service) Create(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error) {
	if !req.Actor.IsAdmin() {
		s.logger.Warn("CreateBarber: access denied for %s=%s", req.Actor.Role, req.Actor.ID)
		return nil, domain.Forbidden("only admins can register barbers")
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	created, err := s.barberRepo.Create(ctx, &domain.Barber{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ShopName:        req.ShopName,
		Specialization:  req.Specialization,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		IsAvailable:     true,
	})
	if err != nil {
		if errors.Is(err, barberRepo.ErrDuplicateEmail) {
			return nil, domain.NewConflictError(0, "email already registered")
		}
		s.logger.Error("CreateBarber: email=%s - repository error: %v", req.Email, err)
		return nil, domain.NewStoreUnavailableError("create barber", err)
	}

	s.logger.Info("CreateBarber: created barber id=%d", created.ID)
	return models.FromDomainBarber(created), nil
}

// Update частично обновляет профиль и флаг приема записей
// Доступно администратору и самому барберу. Существующие записи не затрагиваются
func (s *Service) Update(ctx context.Context, req *models.UpdateBarberRequest) (*models.BarberResponse, error) {
	if !req.Actor.CanManageBarber(req.BarberID) {
		s.logger.Warn("UpdateBarber: id=%d - access denied for %s=%s", req.BarberID, req.Actor.Role, req.Actor.ID)
		return nil, domain.Forbidden("only the barber or an admin can edit the profile")
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	barber, err := s.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, domain.NewNotFoundError("barber", req.BarberID)
		}
		return nil, domain.NewStoreUnavailableError("get barber", err)
	}

	req.ApplyToBarber(barber)
	if err := s.barberRepo.Update(ctx, barber); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, domain.NewNotFoundError("barber", req.BarberID)
		}
		s.logger.Error("UpdateBarber: id=%d - repository error: %v", req.BarberID, err)
		return nil, domain.NewStoreUnavailableError("update barber", err)
	}

	s.logger.Info("UpdateBarber: id=%d updated, available=%t", barber.ID, barber.IsAvailable)
	return models.FromDomainBarber(barber), nil
}

func validationError(errs validator.Errors) error {
	if missing := errs.Missing(); len(missing) > 0 {
		return domain.NewMissingFieldsError(missing...)
	}
	return domain.NewValidationError(errs.Error())
}
