package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модели

// ServiceRequest создание или полная замена услуги
type ServiceRequest struct {
	Actor           domain.Actor `json:"-"`
	Name            string       `json:"name" validate:"required,max=255"`
	Description     *string      `json:"description,omitempty" validate:"omitempty,max=2000"`
	DurationMinutes int          `json:"durationMinutes" validate:"required,gte=5,lte=480"`
	Price           float64      `json:"price" validate:"gte=0"`
	IsActive        *bool        `json:"isActive,omitempty"`
}

// ToDomain конвертирует запрос в domain модель, новая услуга по умолчанию активна
func (r *ServiceRequest) ToDomain(id int64) *domain.CatalogService {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.CatalogService{
		ID:              id,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		IsActive:        active,
	}
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

func FromDomainService(s *domain.CatalogService) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func FromDomainServiceList(services []*domain.CatalogService) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, *FromDomainService(s))
	}
	return &ServiceListResponse{Services: result, Total: len(result)}
}
