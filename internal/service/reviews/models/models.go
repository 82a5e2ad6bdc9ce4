package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// CreateReviewRequest отзыв на завершенное бронирование
type CreateReviewRequest struct {
	Actor     domain.Actor `json:"-"`
	BookingID int64        `json:"bookingId" validate:"required,gt=0"`
	Rating    int          `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string      `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ReviewResponse отзыв
type ReviewResponse struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"bookingId"`
	BarberID    int64     `json:"barberId"`
	CustomerRef string    `json:"customerRef"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewListResponse отзывы барбера вместе с агрегатом
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int              `json:"totalReviews"`
}

func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:          r.ID,
		BookingID:   r.BookingID,
		BarberID:    r.BarberID,
		CustomerRef: r.CustomerRef,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func FromDomainReviewList(reviews []*domain.Review, barber *domain.Barber) *ReviewListResponse {
	result := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, *FromDomainReview(r))
	}
	return &ReviewListResponse{
		Reviews:       result,
		AverageRating: barber.Rating,
		TotalReviews:  barber.TotalReviews,
	}
}
