package session

import (
	"context"
	"testing"

	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/tests/testutil"
)

type fakeNoteLoader struct {
	notes []model.DailyNote
	err   error
}

func (f *fakeNoteLoader) SelectNotes(ctx context.Context, userID, from, to string) ([]model.DailyNote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.notes, nil
}

func TestAddNoteDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	notifier := &countingNotifier{}

	notes := NewNoteBook(ctx, s, &fakeNoteLoader{}, notifier, "u1")
	n := notes.AddNote(ctx, "2026-08-03")

	if n.Priority != model.PriorityLow {
		t.Errorf("new note priority = %q, want low", n.Priority)
	}
	if n.Text != "" {
		t.Errorf("new note text = %q, want empty", n.Text)
	}
	if n.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	if notifier.n.Load() != 1 {
		t.Errorf("notifier fired %d times, want 1", notifier.n.Load())
	}

	changes, _ := s.PendingChanges(ctx)
	if len(changes) != 1 || changes[0].EntityType != model.EntityNote {
		t.Fatalf("queue = %+v, want one note create", changes)
	}
}

func TestUpdateNotePriorityRejectsUnknownValue(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	notes := NewNoteBook(ctx, s, &fakeNoteLoader{}, nil, "u1")
	n := notes.AddNote(ctx, "2026-08-03")

	if err := notes.UpdateNotePriority(ctx, n.ID, "urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
	if err := notes.UpdateNotePriority(ctx, n.ID, model.PriorityHigh); err != nil {
		t.Fatal(err)
	}
	if got := notes.NotesOn("2026-08-03")[0].Priority; got != model.PriorityHigh {
		t.Errorf("priority = %q, want high", got)
	}
}

func TestNoteEditsCollapseInQueue(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	notes := NewNoteBook(ctx, s, &fakeNoteLoader{}, nil, "u1")
	n := notes.AddNote(ctx, "2026-08-03")

	if err := notes.UpdateNoteText(ctx, n.ID, "first draft"); err != nil {
		t.Fatal(err)
	}
	if err := notes.UpdateNoteText(ctx, n.ID, "final text"); err != nil {
		t.Fatal(err)
	}

	changes, _ := s.PendingChanges(ctx)
	if len(changes) != 1 {
		t.Fatalf("edits must collapse into one entry, got %d", len(changes))
	}
}

func TestDeleteNote(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	notes := NewNoteBook(ctx, s, &fakeNoteLoader{}, nil, "u1")
	n := notes.AddNote(ctx, "2026-08-03")

	if err := notes.DeleteNote(ctx, n.ID); err != nil {
		t.Fatal(err)
	}
	if len(notes.NotesOn("2026-08-03")) != 0 {
		t.Error("note still visible after delete")
	}
	if err := notes.DeleteNote(ctx, n.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestBadgeForPicksHighestPriority(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	notes := NewNoteBook(ctx, s, &fakeNoteLoader{}, nil, "u1")

	if got := notes.BadgeFor("2026-08-03"); got != model.PriorityNone {
		t.Errorf("badge for empty day = %q, want none", got)
	}

	a := notes.AddNote(ctx, "2026-08-03")
	b := notes.AddNote(ctx, "2026-08-03")
	if err := notes.UpdateNotePriority(ctx, a.ID, model.PriorityVacation); err != nil {
		t.Fatal(err)
	}
	if err := notes.UpdateNotePriority(ctx, b.ID, model.PriorityMedium); err != nil {
		t.Fatal(err)
	}

	if got := notes.BadgeFor("2026-08-03"); got != model.PriorityMedium {
		t.Errorf("badge = %q, want medium", got)
	}
}
