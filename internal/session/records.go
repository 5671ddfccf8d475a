package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/store"
)

// Shift fields editable through UpdateShiftField.
const (
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"
	FieldNote     = "note"
)

// ShiftLoader is the read path of the remote gateway used by RecordSet.
type ShiftLoader interface {
	SelectShifts(ctx context.Context, userID, from, to string) ([]model.Shift, error)
}

// RecordSet is the per-session view-model for shifts. It seeds itself
// from the local cache so the calendar renders instantly, refreshes
// months from the remote store, and queues every mutation for the
// reconciler. The remote write is never performed synchronously here.
type RecordSet struct {
	store    store.Store
	loader   ShiftLoader
	notifier Notifier
	userID   string

	mu      sync.Mutex
	records model.ShiftsByDate
}

// NewRecordSet creates a RecordSet seeded from the local cache.
func NewRecordSet(ctx context.Context, s store.Store, loader ShiftLoader, notifier Notifier, userID string) *RecordSet {
	return &RecordSet{
		store:    s,
		loader:   loader,
		notifier: notifier,
		userID:   userID,
		records:  s.Snapshot(ctx).Shifts,
	}
}

// LoadMonth fetches all shifts for the calendar month containing date,
// retrying the whole fetch with linear backoff. On exhausted retries the
// month falls back to an empty set rather than blocking the session.
func (r *RecordSet) LoadMonth(ctx context.Context, date string) error {
	first, last, prefix, err := monthBounds(date)
	if err != nil {
		return err
	}

	var shifts []model.Shift
	fetchErr := withLinearRetry(ctx, func(ctx context.Context) error {
		var err error
		shifts, err = r.loader.SelectShifts(ctx, r.userID, first, last)
		return err
	})
	if fetchErr != nil {
		log.Warn("loading month shifts, falling back to empty", "month", prefix, "err", fetchErr)
		shifts = nil
	}

	r.mu.Lock()
	for d := range r.records {
		if len(d) >= len(prefix) && d[:len(prefix)] == prefix {
			delete(r.records, d)
		}
	}
	for _, s := range shifts {
		r.records.Add(s)
	}
	r.mu.Unlock()

	if err := r.store.ReplaceMonthShifts(ctx, prefix, shifts); err != nil {
		log.Warn("caching month shifts", "month", prefix, "err", err)
	}

	return nil
}

// AddShift creates an empty shift for the given business and date,
// caches it, and queues its creation.
func (r *RecordSet) AddShift(ctx context.Context, businessID, date string) model.Shift {
	shift := model.Shift{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Date:       date,
	}

	r.mu.Lock()
	r.records.Add(shift)
	r.mu.Unlock()

	r.writeThrough(ctx, shift, model.ActionCreate)
	return shift
}

// UpdateShiftField applies a single-field edit to a shift and queues the
// resulting state. Rapid successive edits to the same shift collapse
// into one queued change.
func (r *RecordSet) UpdateShiftField(ctx context.Context, shiftID, field, value string) error {
	r.mu.Lock()
	shift := r.records.Find(shiftID)
	if shift == nil {
		r.mu.Unlock()
		return fmt.Errorf("unknown shift %s", shiftID)
	}

	switch field {
	case FieldCheckIn:
		shift.CheckIn = value
	case FieldCheckOut:
		shift.CheckOut = value
	case FieldNote:
		shift.Note = value
	default:
		r.mu.Unlock()
		return fmt.Errorf("unknown shift field %q", field)
	}
	updated := *shift
	r.mu.Unlock()

	r.writeThrough(ctx, updated, model.ActionUpdate)
	return nil
}

// DeleteShift removes a shift locally and queues the remote delete.
func (r *RecordSet) DeleteShift(ctx context.Context, shiftID string) error {
	r.mu.Lock()
	removed := r.records.Remove(shiftID)
	r.mu.Unlock()

	if !removed {
		return fmt.Errorf("unknown shift %s", shiftID)
	}

	if err := r.store.DeleteShift(ctx, shiftID); err != nil {
		log.Warn("deleting cached shift", "id", shiftID, "err", err)
	}

	payload, _ := json.Marshal(map[string]string{"id": shiftID})
	r.appendChange(ctx, model.PendingChange{
		EntityID:   shiftID,
		EntityType: model.EntityShift,
		Action:     model.ActionDelete,
		Payload:    payload,
	})
	return nil
}

// ShiftsOn returns the shifts for one date, grouped by business id.
func (r *RecordSet) ShiftsOn(date string) map[string][]model.Shift {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]model.Shift, len(r.records[date]))
	for businessID, shifts := range r.records[date] {
		out[businessID] = append([]model.Shift(nil), shifts...)
	}
	return out
}

// Records returns a copy of the full date-indexed shift state.
func (r *RecordSet) Records() model.ShiftsByDate {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(model.ShiftsByDate, len(r.records))
	for date, byBusiness := range r.records {
		out[date] = make(map[string][]model.Shift, len(byBusiness))
		for businessID, shifts := range byBusiness {
			out[date][businessID] = append([]model.Shift(nil), shifts...)
		}
	}
	return out
}

// writeThrough caches the shift and queues a create/update for it.
// Local storage failures degrade to logging: the in-memory state already
// reflects the edit and the ledger entry is what reaches the network.
func (r *RecordSet) writeThrough(ctx context.Context, shift model.Shift, action string) {
	if err := r.store.PutShift(ctx, shift); err != nil {
		log.Warn("caching shift", "id", shift.ID, "err", err)
	}

	payload, _ := json.Marshal(shift)
	r.appendChange(ctx, model.PendingChange{
		EntityID:   shift.ID,
		EntityType: model.EntityShift,
		Action:     action,
		Payload:    payload,
	})
}

func (r *RecordSet) appendChange(ctx context.Context, c model.PendingChange) {
	if err := r.store.AppendChange(ctx, c); err != nil {
		log.Warn("queueing change", "entity", c.EntityType, "id", c.EntityID, "err", err)
		return
	}
	if r.notifier != nil {
		r.notifier.Notify()
	}
}
