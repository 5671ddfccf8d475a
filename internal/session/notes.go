package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/store"
)

// NoteLoader is the read path of the remote gateway used by NoteBook.
type NoteLoader interface {
	SelectNotes(ctx context.Context, userID, from, to string) ([]model.DailyNote, error)
}

// NoteBook is the per-session view-model for daily notes, with the same
// optimistic write-through contract as RecordSet.
type NoteBook struct {
	store    store.Store
	loader   NoteLoader
	notifier Notifier
	userID   string

	mu    sync.Mutex
	notes model.NotesByDate
}

// NewNoteBook creates a NoteBook seeded from the local cache.
func NewNoteBook(ctx context.Context, s store.Store, loader NoteLoader, notifier Notifier, userID string) *NoteBook {
	return &NoteBook{
		store:    s,
		loader:   loader,
		notifier: notifier,
		userID:   userID,
		notes:    s.Snapshot(ctx).Notes,
	}
}

// LoadMonth fetches all notes for the calendar month containing date,
// retrying with linear backoff and falling back to an empty month on
// exhausted retries.
func (b *NoteBook) LoadMonth(ctx context.Context, date string) error {
	first, last, prefix, err := monthBounds(date)
	if err != nil {
		return err
	}

	var notes []model.DailyNote
	fetchErr := withLinearRetry(ctx, func(ctx context.Context) error {
		var err error
		notes, err = b.loader.SelectNotes(ctx, b.userID, first, last)
		return err
	})
	if fetchErr != nil {
		log.Warn("loading month notes, falling back to empty", "month", prefix, "err", fetchErr)
		notes = nil
	}

	b.mu.Lock()
	for d := range b.notes {
		if len(d) >= len(prefix) && d[:len(prefix)] == prefix {
			delete(b.notes, d)
		}
	}
	for _, n := range notes {
		b.notes.Add(n)
	}
	b.mu.Unlock()

	if err := b.store.ReplaceMonthNotes(ctx, prefix, notes); err != nil {
		log.Warn("caching month notes", "month", prefix, "err", err)
	}

	return nil
}

// AddNote creates an empty note with the default low priority for the
// given date, caches it, and queues its creation.
func (b *NoteBook) AddNote(ctx context.Context, date string) model.DailyNote {
	note := model.DailyNote{
		ID:        uuid.New().String(),
		Date:      date,
		Priority:  model.PriorityLow,
		CreatedAt: time.Now().UTC(),
	}

	b.mu.Lock()
	b.notes.Add(note)
	b.mu.Unlock()

	b.writeThrough(ctx, note, model.ActionCreate)
	return note
}

// UpdateNoteText edits a note's text and queues the resulting state.
func (b *NoteBook) UpdateNoteText(ctx context.Context, noteID, text string) error {
	return b.update(ctx, noteID, func(n *model.DailyNote) error {
		n.Text = text
		return nil
	})
}

// UpdateNotePriority edits a note's priority tag and queues the result.
func (b *NoteBook) UpdateNotePriority(ctx context.Context, noteID string, p model.Priority) error {
	if !p.Valid() {
		return fmt.Errorf("invalid priority %q", p)
	}
	return b.update(ctx, noteID, func(n *model.DailyNote) error {
		n.Priority = p
		return nil
	})
}

func (b *NoteBook) update(ctx context.Context, noteID string, mutate func(*model.DailyNote) error) error {
	b.mu.Lock()
	note := b.notes.Find(noteID)
	if note == nil {
		b.mu.Unlock()
		return fmt.Errorf("unknown note %s", noteID)
	}
	if err := mutate(note); err != nil {
		b.mu.Unlock()
		return err
	}
	updated := *note
	b.mu.Unlock()

	b.writeThrough(ctx, updated, model.ActionUpdate)
	return nil
}

// DeleteNote removes a note locally and queues the remote delete.
func (b *NoteBook) DeleteNote(ctx context.Context, noteID string) error {
	b.mu.Lock()
	removed := b.notes.Remove(noteID)
	b.mu.Unlock()

	if !removed {
		return fmt.Errorf("unknown note %s", noteID)
	}

	if err := b.store.DeleteNote(ctx, noteID); err != nil {
		log.Warn("deleting cached note", "id", noteID, "err", err)
	}

	payload, _ := json.Marshal(map[string]string{"id": noteID})
	b.appendChange(ctx, model.PendingChange{
		EntityID:   noteID,
		EntityType: model.EntityNote,
		Action:     model.ActionDelete,
		Payload:    payload,
	})
	return nil
}

// NotesOn returns the notes for one date.
func (b *NoteBook) NotesOn(date string) []model.DailyNote {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.DailyNote(nil), b.notes[date]...)
}

// BadgeFor returns the single badge priority shown on a calendar day:
// the most severe priority among that day's notes.
func (b *NoteBook) BadgeFor(date string) model.Priority {
	b.mu.Lock()
	defer b.mu.Unlock()
	return highestPriorityBadge(b.notes[date])
}

func (b *NoteBook) writeThrough(ctx context.Context, note model.DailyNote, action string) {
	if err := b.store.PutNote(ctx, note); err != nil {
		log.Warn("caching note", "id", note.ID, "err", err)
	}

	payload, _ := json.Marshal(note)
	b.appendChange(ctx, model.PendingChange{
		EntityID:   note.ID,
		EntityType: model.EntityNote,
		Action:     action,
		Payload:    payload,
	})
}

func (b *NoteBook) appendChange(ctx context.Context, c model.PendingChange) {
	if err := b.store.AppendChange(ctx, c); err != nil {
		log.Warn("queueing change", "entity", c.EntityType, "id", c.EntityID, "err", err)
		return
	}
	if b.notifier != nil {
		b.notifier.Notify()
	}
}
