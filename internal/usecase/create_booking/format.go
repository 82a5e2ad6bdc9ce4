package create_booking

import "strconv"

const timeLayout = "2006-01-02 15:04"

func seatLabel(seat *int) string {
	if seat == nil {
		return "none"
	}
	return strconv.Itoa(*seat)
}
