package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

// validateRequest валидирует входные данные запроса
// Клиент бронирует только на себя: пустой customerRef заполняется его ID
// Барбер или администратор может записать клиента только по телефону
func validateRequest(req *Request) error {
	if req.Actor.Role == domain.RoleCustomer {
		if req.CustomerRef == "" {
			req.CustomerRef = req.Actor.ID
		}
		if req.CustomerRef != req.Actor.ID {
			return domain.Forbidden("customers can only book for themselves")
		}
	}
	if req.CustomerRef == "" && req.CustomerPhone != nil {
		req.CustomerRef = strings.TrimSpace(*req.CustomerPhone)
	}

	if errs := validator.Validate(req); errs != nil {
		if missing := errs.Missing(); len(missing) > 0 {
			return domain.NewMissingFieldsError(missing...)
		}
		return domain.NewValidationError(errs.Error())
	}

	if req.Actor.Role == domain.RoleBarber && !req.Actor.IsBarber(req.BarberID) {
		return domain.Forbidden("barbers can only book into their own schedule")
	}

	if req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return domain.NewValidationError("endTime must be after startTime")
	}
	return nil
}

// validateStartTime запрещает бронирование в прошлом
func validateStartTime(start, now time.Time) error {
	if start.Before(now) {
		return domain.NewValidationError("startTime is in the past")
	}
	return nil
}

// resolveDuration определяет длительность бронирования
// Приоритет: endTime > serviceDurationMinutes > услуга из каталога > конфигурация
func resolveDuration(req *Request, service *domain.CatalogService, config *domain.BookingConfig) (int, error) {
	if req.EndTime != nil {
		length := req.EndTime.Sub(*req.StartTime)
		if length%time.Minute != 0 {
			return 0, domain.NewValidationError("endTime must be a whole number of minutes after startTime")
		}
		minutes := int(length / time.Minute)
		if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
			return 0, domain.NewValidationError(fmt.Sprintf("booking must last between %d and %d minutes", domain.MinDurationMinutes, domain.MaxDurationMinutes))
		}
		return minutes, nil
	}
	if req.ServiceDurationMinutes != nil {
		return *req.ServiceDurationMinutes, nil
	}
	if service != nil && service.DurationMinutes > 0 {
		return service.DurationMinutes, nil
	}
	if config.DefaultDurationMinutes > 0 {
		return config.DefaultDurationMinutes, nil
	}
	return domain.DefaultDurationMinutes, nil
}

// validateSeat проверяет кресло против конфигурации барбера
func validateSeat(seat *int, config *domain.BookingConfig) error {
	if seat != nil {
		if !config.IsValidSeat(*seat) {
			return domain.NewValidationError(fmt.Sprintf("seatNumber must be between 1 and %d", config.SeatCapacity))
		}
		return nil
	}
	if !config.AcceptsUnseated() {
		return domain.NewValidationError("seatNumber is required: barber does not take bookings without a seat")
	}
	return nil
}
