package store

import (
	"context"
	"time"

	"github.com/atempo/attendance-tracker/internal/model"
)

// Snapshot is the full local mirror of shifts and notes, indexed the way
// the calendar consumes them.
type Snapshot struct {
	Shifts model.ShiftsByDate
	Notes  model.NotesByDate
}

// EmptySnapshot returns a Snapshot with initialized, empty indexes.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Shifts: make(model.ShiftsByDate),
		Notes:  make(model.NotesByDate),
	}
}

// Store is the durable local cache and pending-change ledger backing one
// session. Cache reads fail soft: a missing or unreadable cache yields an
// empty snapshot, never an error, so the calendar can always render.
type Store interface {
	// === Local cache ===

	Snapshot(ctx context.Context) Snapshot
	PutShift(ctx context.Context, s model.Shift) error
	DeleteShift(ctx context.Context, id string) error
	PutNote(ctx context.Context, n model.DailyNote) error
	DeleteNote(ctx context.Context, id string) error

	// ReplaceMonthShifts swaps the cached shifts for an ISO month prefix
	// ("2026-08") with the authoritative remote result.
	ReplaceMonthShifts(ctx context.Context, month string, shifts []model.Shift) error
	ReplaceMonthNotes(ctx context.Context, month string, notes []model.DailyNote) error

	// === Pending-change ledger ===

	// AppendChange queues a change, superseding any queued change for
	// the same (entity type, entity id).
	AppendChange(ctx context.Context, c model.PendingChange) error

	// PendingChanges returns queued changes in insertion order.
	PendingChanges(ctx context.Context) ([]model.PendingChange, error)

	// RemoveChange deletes the queued change for an entity id after the
	// remote store confirmed the write.
	RemoveChange(ctx context.Context, entityID string) error

	// ClearChanges empties the ledger.
	ClearChanges(ctx context.Context) error

	// === Sync bookkeeping ===

	LastSync(ctx context.Context) time.Time
	SetLastSync(ctx context.Context, t time.Time) error
}
