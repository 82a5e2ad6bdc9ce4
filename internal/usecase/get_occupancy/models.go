package get_occupancy

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request запрос занятости: либо день (Date), либо окно From/To
type Request struct {
	BarberID int64
	Date     *time.Time
	From     *time.Time
	To       *time.Time
}

// Response занятые интервалы барбера
// Degraded = true, если хранилище недоступно и результат пустой не по факту
type Response struct {
	BarberID  int64
	From      time.Time
	To        time.Time
	Occupancy []domain.Occupancy
	Degraded  bool
}

// SlotsRequest запрос свободных слотов на день
type SlotsRequest struct {
	BarberID        int64
	Date            time.Time
	DurationMinutes int // 0 - длительность из конфигурации
}

// SlotsResponse слоты дня со свободными креслами
type SlotsResponse struct {
	BarberID        int64
	Date            time.Time
	DurationMinutes int
	Slots           []domain.AvailableSlot
	Degraded        bool
}
