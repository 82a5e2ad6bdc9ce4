package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модели

// CreateBarberRequest запрос на регистрацию барбера
type CreateBarberRequest struct {
	Actor           domain.Actor `json:"-"`
	Name            string       `json:"name" validate:"required,max=255"`
	Email           string       `json:"email" validate:"required,email"`
	Phone           *string      `json:"phone,omitempty" validate:"omitempty,max=32"`
	ShopName        *string      `json:"shopName,omitempty" validate:"omitempty,max=255"`
	Specialization  *string      `json:"specialization,omitempty" validate:"omitempty,max=255"`
	Bio             *string      `json:"bio,omitempty" validate:"omitempty,max=2000"`
	ExperienceYears int          `json:"experienceYears" validate:"gte=0,lte=80"`
}

// UpdateBarberRequest частичное обновление профиля
type UpdateBarberRequest struct {
	Actor           domain.Actor `json:"-"`
	BarberID        int64        `json:"-"`
	Name            *string      `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone           *string      `json:"phone,omitempty" validate:"omitempty,max=32"`
	ShopName        *string      `json:"shopName,omitempty" validate:"omitempty,max=255"`
	Specialization  *string      `json:"specialization,omitempty" validate:"omitempty,max=255"`
	Bio             *string      `json:"bio,omitempty" validate:"omitempty,max=2000"`
	ExperienceYears *int         `json:"experienceYears,omitempty" validate:"omitempty,gte=0,lte=80"`
	IsAvailable     *bool        `json:"isAvailable,omitempty"`
}

// ApplyToBarber применяет переданные поля к барберу
func (r *UpdateBarberRequest) ApplyToBarber(b *domain.Barber) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Phone != nil {
		b.Phone = r.Phone
	}
	if r.ShopName != nil {
		b.ShopName = r.ShopName
	}
	if r.Specialization != nil {
		b.Specialization = r.Specialization
	}
	if r.Bio != nil {
		b.Bio = r.Bio
	}
	if r.ExperienceYears != nil {
		b.ExperienceYears = *r.ExperienceYears
	}
	if r.IsAvailable != nil {
		b.IsAvailable = *r.IsAvailable
	}
}

// Response модели

// BarberResponse профиль барбера
type BarberResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	ShopName        *string   `json:"shopName,omitempty"`
	Specialization  *string   `json:"specialization,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	ExperienceYears int       `json:"experienceYears"`
	IsAvailable     bool      `json:"isAvailable"`
	Rating          float64   `json:"rating"`
	TotalReviews    int       `json:"totalReviews"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BarberListResponse список барберов
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
	Total   int              `json:"total"`
}

// FromDomainBarber конвертирует domain модель в DTO
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	if b == nil {
		return nil
	}
	return &BarberResponse{
		ID:              b.ID,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		ShopName:        b.ShopName,
		Specialization:  b.Specialization,
		Bio:             b.Bio,
		ExperienceYears: b.ExperienceYears,
		IsAvailable:     b.IsAvailable,
		Rating:          b.Rating,
		TotalReviews:    b.TotalReviews,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBarberList конвертирует список
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	result := make([]BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		result = append(result, *FromDomainBarber(b))
	}
	return &BarberListResponse{Barbers: result, Total: len(result)}
}
