package report

import (
	"strconv"
	"strings"

	"github.com/atempo/attendance-tracker/internal/model"
)

// CalculateHours returns the duration in hours between two "HH:MM" times.
// A checkout earlier than the checkin means the shift crossed midnight,
// so 24h is added: CalculateHours("23:00", "01:00") == 2.0. Either time
// being empty or malformed yields 0.
func CalculateHours(checkIn, checkOut string) float64 {
	in, ok := parseMinutes(checkIn)
	if !ok {
		return 0
	}
	out, ok := parseMinutes(checkOut)
	if !ok {
		return 0
	}

	minutes := out - in
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60
}

// parseMinutes converts "HH:MM" to minutes since midnight.
func parseMinutes(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + mins, true
}

// TotalHours sums the hours of all complete shifts (both times present).
func TotalHours(shifts []model.Shift) float64 {
	var total float64
	for _, s := range shifts {
		if s.CheckIn != "" && s.CheckOut != "" {
			total += CalculateHours(s.CheckIn, s.CheckOut)
		}
	}
	return total
}

// TotalHoursForDate sums the hours of shifts falling on one date.
func TotalHoursForDate(date string, shifts []model.Shift) float64 {
	var total float64
	for _, s := range shifts {
		if s.Date == date && s.CheckIn != "" && s.CheckOut != "" {
			total += CalculateHours(s.CheckIn, s.CheckOut)
		}
	}
	return total
}

// TotalHoursForRange sums the hours of shifts with dates in [start, end]
// inclusive. ISO date strings compare lexically.
func TotalHoursForRange(start, end string, shifts []model.Shift) float64 {
	var total float64
	for _, s := range shifts {
		if s.Date >= start && s.Date <= end && s.CheckIn != "" && s.CheckOut != "" {
			total += CalculateHours(s.CheckIn, s.CheckOut)
		}
	}
	return total
}

// PercentChange returns the percentage change from previous to current
// (+25.0 for 10h vs 8h), or 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
