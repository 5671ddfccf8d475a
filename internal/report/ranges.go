package report

import (
	"fmt"
	"time"
)

// DateRange is an inclusive span of ISO dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// DaysInRange returns every ISO date in [start, end] inclusive.
func DaysInRange(start, end string) ([]string, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days, nil
}

// WeeksInRange partitions [start, end] into consecutive 7-day windows
// anchored at start; the final window is clamped to end.
func WeeksInRange(start, end string) ([]DateRange, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}

	var weeks []DateRange
	for d := from; !d.After(to); d = d.AddDate(0, 0, 7) {
		weekEnd := d.AddDate(0, 0, 6)
		if weekEnd.After(to) {
			weekEnd = to
		}
		weeks = append(weeks, DateRange{
			Start: d.Format(dateLayout),
			End:   weekEnd.Format(dateLayout),
		})
	}
	return weeks, nil
}

// MonthsInRange partitions [start, end] into calendar months; the first
// and last are clamped to the range bounds.
func MonthsInRange(start, end string) ([]DateRange, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}

	var months []DateRange
	for d := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !d.After(to); d = d.AddDate(0, 1, 0) {
		monthStart := d
		if monthStart.Before(from) {
			monthStart = from
		}
		monthEnd := d.AddDate(0, 1, -1)
		if monthEnd.After(to) {
			monthEnd = to
		}
		months = append(months, DateRange{
			Start: monthStart.Format(dateLayout),
			End:   monthEnd.Format(dateLayout),
		})
	}
	return months, nil
}

// AlignComparison maps the i-th partition of the main period onto the
// i-th partition of the comparison period. Main partitions beyond the
// comparison's length get no counterpart.
func AlignComparison(main, comparison []DateRange) []*DateRange {
	aligned := make([]*DateRange, len(main))
	for i := range main {
		if i < len(comparison) {
			c := comparison[i]
			aligned[i] = &c
		}
	}
	return aligned
}
