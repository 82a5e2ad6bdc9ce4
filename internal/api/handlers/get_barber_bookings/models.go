package get_barber_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date=YYYY-MM-DD задает окно в один день, from/to в RFC3339 задают произвольное окно
func ToServiceRequest(barberID int64, actor domain.Actor, query url.Values) (*models.ListBarberBookingsRequest, error) {
	req := &models.ListBarberBookingsRequest{
		Actor:    actor,
		BarberID: barberID,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		end := date.AddDate(0, 0, 1)
		req.From = &date
		req.To = &end
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if activeOnlyStr := query.Get("activeOnly"); activeOnlyStr != "" {
		activeOnly, err := strconv.ParseBool(activeOnlyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid activeOnly value: %w", err)
		}
		req.ActiveOnly = activeOnly
	}

	return req, nil
}
