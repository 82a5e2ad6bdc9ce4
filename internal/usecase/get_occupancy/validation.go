package get_occupancy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// validateRequest проверяет запрос и возвращает окно [from, to)
func validateRequest(req *Request) (time.Time, time.Time, error) {
	if req.BarberID <= 0 {
		return time.Time{}, time.Time{}, domain.NewMissingFieldsError("barberId")
	}

	if req.Date != nil {
		if req.From != nil || req.To != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("use either date or from/to, not both")
		}
		from := startOfDay(*req.Date)
		return from, from.AddDate(0, 0, 1), nil
	}

	if req.From == nil || req.To == nil {
		missing := make([]string, 0, 2)
		if req.From == nil {
			missing = append(missing, "from")
		}
		if req.To == nil {
			missing = append(missing, "to")
		}
		return time.Time{}, time.Time{}, domain.NewMissingFieldsError(missing...)
	}
	if !req.From.Before(*req.To) {
		return time.Time{}, time.Time{}, domain.NewValidationError("from must be before to")
	}
	if req.To.Sub(*req.From) > domain.MaxOccupancyWindowDays*24*time.Hour {
		return time.Time{}, time.Time{}, domain.NewValidationError(fmt.Sprintf("window must not exceed %d days", domain.MaxOccupancyWindowDays))
	}
	return *req.From, *req.To, nil
}

// validateSlotsRequest валидирует запрос слотов
func validateSlotsRequest(req *SlotsRequest) error {
	missing := make([]string, 0, 2)
	if req.BarberID <= 0 {
		missing = append(missing, "barberId")
	}
	if req.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return domain.NewMissingFieldsError(missing...)
	}

	if req.DurationMinutes != 0 && (req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return domain.NewValidationError(fmt.Sprintf("durationMinutes must be between %d and %d", domain.MinDurationMinutes, domain.MaxDurationMinutes))
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
