package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getOccupancy "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_occupancy"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	BarberID        int64           `json:"barberId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
	Degraded        bool            `json:"degraded,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	FreeSeats         []int  `json:"freeSeats"`
	TotalSeats        int    `json:"totalSeats"`
	UnseatedAvailable int    `json:"unseatedAvailable"`
	UnseatedTotal     int    `json:"unseatedTotal"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupancy.SlotsResponse) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		freeSeats := slot.FreeSeats
		if freeSeats == nil {
			freeSeats = []int{}
		}
		slots[i] = AvailableSlot{
			StartTime:         slot.Start.Format(time.RFC3339),
			EndTime:           slot.End.Format(time.RFC3339),
			FreeSeats:         freeSeats,
			TotalSeats:        slot.TotalSeats,
			UnseatedAvailable: slot.UnseatedAvailable,
			UnseatedTotal:     slot.UnseatedTotal,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BarberID:        resp.BarberID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Degraded:        resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(barberID int64, dateStr, durationStr string) (*getOccupancy.SlotsRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	req := &getOccupancy.SlotsRequest{
		BarberID: barberID,
		Date:     date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}
	return req, nil
}
