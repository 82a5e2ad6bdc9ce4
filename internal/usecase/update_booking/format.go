package update_booking

import "strconv"

func seatLabel(seat *int) string {
	if seat == nil {
		return "-"
	}
	return strconv.Itoa(*seat)
}
