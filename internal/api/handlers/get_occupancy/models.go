package get_occupancy

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getOccupancy "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_occupancy"
)

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	BarberID  int64           `json:"barberId"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Occupancy []OccupiedRange `json:"occupancy"`
	Degraded  bool            `json:"degraded,omitempty"`
}

// OccupiedRange занятый интервал
type OccupiedRange struct {
	BookingID  int64  `json:"bookingId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	SeatNumber *int   `json:"seatNumber,omitempty"`
}

// ToUseCaseRequest собирает запрос из query параметров: date=YYYY-MM-DD или from/to в RFC3339
func ToUseCaseRequest(barberID int64, dateStr, fromStr, toStr string) (*getOccupancy.Request, error) {
	req := &getOccupancy.Request{BarberID: barberID}

	if dateStr != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}
	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}
	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupancy.Response) *OccupancyResponse {
	ranges := make([]OccupiedRange, len(resp.Occupancy))
	for i, o := range resp.Occupancy {
		ranges[i] = OccupiedRange{
			BookingID:  o.BookingID,
			StartTime:  o.Start.Format(time.RFC3339),
			EndTime:    o.End.Format(time.RFC3339),
			SeatNumber: o.SeatNumber,
		}
	}

	return &OccupancyResponse{
		BarberID:  resp.BarberID,
		From:      resp.From.Format(time.RFC3339),
		To:        resp.To.Format(time.RFC3339),
		Occupancy: ranges,
		Degraded:  resp.Degraded,
	}
}
