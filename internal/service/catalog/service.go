package catalog

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

// Service сервис каталога услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List возвращает услуги; неактивные видит только администратор
func (s *Service) List(ctx context.Context, actor domain.Actor, includeInactive bool) (*models.ServiceListResponse, error) {
	activeOnly := !(includeInactive && actor.IsAdmin())

	services, err := s.catalogRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, domain.NewStoreUnavailableError("list services", err)
	}
	return models.FromDomainServiceList(services), nil
}

// Create добавляет услугу в каталог. Только администратор
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if !req.Actor.IsAdmin() {
		s.logger.Warn("CreateService: access denied for %s=%s", req.Actor.Role, req.Actor.ID)
		return nil, domain.Forbidden("only admins can manage the catalog")
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	created, err := s.catalogRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("CreateService: name=%s - repository error: %v", req.Name, err)
		return nil, domain.NewStoreUnavailableError("create service", err)
	}

	s.logger.Info("CreateService: created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update заменяет услугу целиком. Только администратор
// Уже созданные бронирования хранят снимок и не меняются
func (s *Service) Update(ctx context.Context, serviceID int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateService: id=%d - access denied for %s=%s", serviceID, req.Actor.Role, req.Actor.ID)
		return nil, domain.Forbidden("only admins can manage the catalog")
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	updated, err := s.catalogRepo.Update(ctx, req.ToDomain(serviceID))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, domain.NewNotFoundError("service", serviceID)
		}
		s.logger.Error("UpdateService: id=%d - repository error: %v", serviceID, err)
		return nil, domain.NewStoreUnavailableError("update service", err)
	}

	s.logger.Info("UpdateService: id=%d updated, active=%t", updated.ID, updated.IsActive)
	return models.FromDomainService(updated), nil
}

func validationError(errs validator.Errors) error {
	if missing := errs.Missing(); len(missing) > 0 {
		return domain.NewMissingFieldsError(missing...)
	}
	return domain.NewValidationError(errs.Error())
}
