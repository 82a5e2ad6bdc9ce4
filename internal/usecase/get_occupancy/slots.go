package get_occupancy

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// generateTimeSlots генерирует начала слотов на день
// Слоты идут от открытия с шагом slotStep и должны целиком помещаться до закрытия.
// Для сегодняшнего дня уже начавшиеся слоты отбрасываются
func generateTimeSlots(config *domain.BookingConfig, durationMinutes int, date, now time.Time) ([]time.Time, error) {
	if isDateInPast(date, now) {
		return []time.Time{}, nil
	}

	open, err := config.OpenTime.OnDate(date)
	if err != nil {
		return nil, err
	}
	closeAt, err := config.CloseTime.OnDate(date)
	if err != nil {
		return nil, err
	}

	step := time.Duration(config.SlotStepMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	slots := make([]time.Time, 0)
	for start := open; !start.Add(duration).After(closeAt); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, start)
	}
	return slots, nil
}

// calculateAvailability считает свободные кресла и остаток общей емкости для каждого слота
//
// Граничащие интервалы не пересекаются:
// - слот 11:30-12:00, занято 11:20-11:40 → кресло занято
// - слот 11:30-12:00, занято 11:00-11:30 → кресло свободно
func calculateAvailability(starts []time.Time, durationMinutes int, occupancy []domain.Occupancy, config *domain.BookingConfig) []domain.AvailableSlot {
	duration := time.Duration(durationMinutes) * time.Minute
	result := make([]domain.AvailableSlot, 0, len(starts))

	for _, start := range starts {
		end := start.Add(duration)

		taken := make(map[int]bool)
		for _, o := range occupancy {
			if o.SeatNumber != nil && o.Start.Before(end) && o.End.After(start) {
				taken[*o.SeatNumber] = true
			}
		}

		free := make([]int, 0, config.SeatCapacity)
		for seat := 1; seat <= config.SeatCapacity; seat++ {
			if !taken[seat] {
				free = append(free, seat)
			}
		}

		unseated := config.UnseatedCapacity - domain.PeakUnseated(occupancy, start, end)
		if unseated < 0 {
			unseated = 0
		}

		result = append(result, domain.AvailableSlot{
			Start:             start,
			End:               end,
			FreeSeats:         free,
			TotalSeats:        config.SeatCapacity,
			UnseatedAvailable: unseated,
			UnseatedTotal:     config.UnseatedCapacity,
		})
	}
	return result
}
