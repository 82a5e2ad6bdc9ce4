package domain

import (
	"sort"
	"time"
)

// Occupancy is a time range (and seat) currently unavailable for a barber
type Occupancy struct {
	BookingID  int64
	Start      time.Time
	End        time.Time
	SeatNumber *int
}

// ComputeOccupancy returns the ranges of active bookings intersecting [from, to),
// ordered by start time and then seat. Missing end times are derived from the duration.
func ComputeOccupancy(bookings []*Booking, from, to time.Time) []Occupancy {
	result := make([]Occupancy, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || !b.Overlaps(from, to) {
			continue
		}
		result = append(result, Occupancy{
			BookingID:  b.ID,
			Start:      b.StartTime,
			End:        b.End(),
			SeatNumber: clonePtr(b.SeatNumber),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return seatOrder(result[i].SeatNumber) < seatOrder(result[j].SeatNumber)
	})
	return result
}

func seatOrder(seat *int) int {
	if seat == nil {
		return 0
	}
	return *seat
}

// FindConflict returns the existing booking that prevents candidate from being committed,
// or nil if the candidate fits.
//
// Numbered seats and the unseated pool are independent: a seated candidate only
// collides with an active overlapping booking on the same seat; an unseated candidate
// collides when the unseated bookings already running at some instant of its range
// reach unseatedCapacity. Callers reject unseated candidates up front when the
// barber takes no unseated bookings (BookingConfig.AcceptsUnseated).
func FindConflict(existing []*Booking, candidate *Booking, unseatedCapacity int) *Booking {
	start, end := candidate.StartTime, candidate.End()

	if candidate.IsSeated() {
		for _, b := range existing {
			if b.ID != 0 && b.ID == candidate.ID {
				continue
			}
			if b.IsActive() && b.IsSeated() && *b.SeatNumber == *candidate.SeatNumber && b.Overlaps(start, end) {
				return b
			}
		}
		return nil
	}

	overlapping := make([]*Booking, 0)
	for _, b := range existing {
		if b.ID != 0 && b.ID == candidate.ID {
			continue
		}
		if b.IsActive() && !b.IsSeated() && b.Overlaps(start, end) {
			overlapping = append(overlapping, b)
		}
	}
	if len(overlapping) == 0 {
		return nil
	}

	if maxConcurrent(overlapping, start, end) < unseatedCapacity {
		return nil
	}

	sort.SliceStable(overlapping, func(i, j int) bool {
		return overlapping[i].StartTime.Before(overlapping[j].StartTime)
	})
	return overlapping[0]
}

// PeakUnseated returns how many unseated occupancy ranges run at the same instant within [from, to)
func PeakUnseated(occupancy []Occupancy, from, to time.Time) int {
	ranges := make([]timeRange, 0, len(occupancy))
	for _, o := range occupancy {
		if o.SeatNumber == nil && o.Start.Before(to) && o.End.After(from) {
			ranges = append(ranges, timeRange{start: o.Start, end: o.End})
		}
	}
	return peakConcurrent(ranges, from, to)
}

type timeRange struct {
	start time.Time
	end   time.Time
}

// maxConcurrent returns the peak number of bookings running at the same instant within [from, to)
func maxConcurrent(bookings []*Booking, from, to time.Time) int {
	ranges := make([]timeRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, timeRange{start: b.StartTime, end: b.End()})
	}
	return peakConcurrent(ranges, from, to)
}

func peakConcurrent(ranges []timeRange, from, to time.Time) int {
	type event struct {
		at    time.Time
		delta int
	}

	events := make([]event, 0, len(ranges)*2)
	for _, r := range ranges {
		s, e := r.start, r.end
		if s.Before(from) {
			s = from
		}
		if e.After(to) {
			e = to
		}
		events = append(events, event{at: s, delta: 1}, event{at: e, delta: -1})
	}

	// Ends are processed before starts at the same instant: [a, b) and [b, c) do not overlap
	sort.Slice(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		return events[i].delta < events[j].delta
	})

	current, peak := 0, 0
	for _, ev := range events {
		current += ev.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}
