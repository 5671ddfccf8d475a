// Package session holds the per-session view-models that compose the
// local cache, the pending-change ledger, and the remote gateway behind
// a simple mutate/read interface. Mutations are optimistic: memory and
// the local cache are updated immediately, the remote write always
// happens later through the reconciler.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/atempo/attendance-tracker/internal/model"
)

// Notifier receives a signal after every local mutation. The reconciler
// satisfies it; tests substitute a recorder.
type Notifier interface {
	Notify()
}

// loadAttempts and the linear backoff step for whole-month fetches.
const (
	loadAttempts    = 3
	loadBackoffStep = 1 * time.Second
)

// monthBounds returns the first day, last day, and "2006-01" prefix of
// the calendar month containing the given ISO date.
func monthBounds(date string) (first, last, prefix string, err error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", "", "", fmt.Errorf("parsing date %q: %w", date, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), start.Format("2006-01"), nil
}

// withLinearRetry runs fetch up to loadAttempts times, sleeping one
// extra backoff step after each failure. The last error is returned.
func withLinearRetry(ctx context.Context, fetch func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= loadAttempts; attempt++ {
		lastErr = fetch(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == loadAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * loadBackoffStep):
		}
	}
	return lastErr
}

// highestPriorityBadge picks the badge priority for a day's notes.
func highestPriorityBadge(notes []model.DailyNote) model.Priority {
	return model.HighestPriority(notes)
}
