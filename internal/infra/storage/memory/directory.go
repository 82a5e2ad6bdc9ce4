package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/config"
)

type BarberRepository struct {
	s *Store
}

func (r *BarberRepository) Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for _, existing := range r.s.barbers {
		if existing.Email == barber.Email {
			return nil, barberRepo.ErrDuplicateEmail
		}
	}

	r.s.nextBarberID++
	barber.ID = r.s.nextBarberID
	barber.CreatedAt = r.s.now()
	barber.UpdatedAt = barber.CreatedAt
	stored := *barber
	r.s.barbers[barber.ID] = &stored
	return barber, nil
}

func (r *BarberRepository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	barber, ok := r.s.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	c := *barber
	return &c, nil
}

func (r *BarberRepository) List(ctx context.Context, filter domain.BarbersFilter) ([]*domain.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	result := make([]*domain.Barber, 0)
	for _, barber := range r.s.barbers {
		if filter.OnlyAvailable && !barber.IsAvailable {
			continue
		}
		if filter.Email != nil && barber.Email != *filter.Email {
			continue
		}
		c := *barber
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *BarberRepository) Update(ctx context.Context, barber *domain.Barber) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	current, ok := r.s.barbers[barber.ID]
	if !ok {
		return barberRepo.ErrBarberNotFound
	}
	stored := *barber
	stored.Email = current.Email
	stored.Rating = current.Rating
	stored.TotalReviews = current.TotalReviews
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = r.s.now()
	r.s.barbers[barber.ID] = &stored
	return nil
}

func (r *BarberRepository) UpdateRating(ctx context.Context, barberID int64, summary domain.RatingSummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return r.s.failure
	}

	barber, ok := r.s.barbers[barberID]
	if !ok {
		return barberRepo.ErrBarberNotFound
	}
	barber.Rating = summary.Average
	barber.TotalReviews = summary.Count
	return nil
}

func (r *BarberRepository) Count(ctx context.Context) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return 0, 0, r.s.failure
	}

	available := 0
	for _, barber := range r.s.barbers {
		if barber.IsAvailable {
			available++
		}
	}
	return len(r.s.barbers), available, nil
}

type CatalogRepository struct {
	s *Store
}

func (r *CatalogRepository) Create(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	r.s.nextServiceID++
	service.ID = r.s.nextServiceID
	service.CreatedAt = r.s.now()
	service.UpdatedAt = service.CreatedAt
	stored := *service
	r.s.services[service.ID] = &stored
	return service, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	service, ok := r.s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	c := *service
	return &c, nil
}

func (r *CatalogRepository) List(ctx context.Context, activeOnly bool) ([]*domain.CatalogService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	result := make([]*domain.CatalogService, 0)
	for _, service := range r.s.services {
		if activeOnly && !service.IsActive {
			continue
		}
		c := *service
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *CatalogRepository) Update(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	current, ok := r.s.services[service.ID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	service.CreatedAt = current.CreatedAt
	service.UpdatedAt = r.s.now()
	stored := *service
	r.s.services[service.ID] = &stored
	return service, nil
}

type ConfigRepository struct {
	s *Store
}

func (r *ConfigRepository) Create(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	if config.BarberID != nil {
		if _, ok := r.s.barbers[*config.BarberID]; !ok {
			return nil, configRepo.ErrInvalidReference
		}
	}

	r.s.nextConfigID++
	config.ID = r.s.nextConfigID
	config.CreatedAt = r.s.now()
	config.UpdatedAt = config.CreatedAt
	stored := *config
	r.s.configs = append(r.s.configs, &stored)
	return config, nil
}

func (r *ConfigRepository) GetByBarber(ctx context.Context, barberID *int64) (*domain.BookingConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for _, config := range r.s.configs {
		sameLevel := (config.BarberID == nil && barberID == nil) ||
			(config.BarberID != nil && barberID != nil && *config.BarberID == *barberID)
		if sameLevel {
			c := *config
			return &c, nil
		}
	}
	return nil, configRepo.ErrConfigNotFound
}

func (r *ConfigRepository) GetConfigWithHierarchy(ctx context.Context, barberID int64) (*domain.BookingConfig, error) {
	config, err := r.GetByBarber(ctx, &barberID)
	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		return config, err
	}
	return r.GetByBarber(ctx, nil)
}

func (r *ConfigRepository) Update(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failure != nil {
		return nil, r.s.failure
	}

	for i, current := range r.s.configs {
		if current.ID == config.ID {
			config.BarberID = current.BarberID
			config.CreatedAt = current.CreatedAt
			config.UpdatedAt = r.s.now()
			stored := *config
			r.s.configs[i] = &stored
			return config, nil
		}
	}
	return nil, configRepo.ErrConfigNotFound
}
