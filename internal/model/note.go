package model

import "time"

// Priority tags a daily note with a severity used to pick the single
// badge color shown on a calendar day.
type Priority string

const (
	PriorityNone     Priority = ""
	PriorityVacation Priority = "vacation"
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
)

// Severity returns the strict ordering high > medium > low > vacation > none.
func (p Priority) Severity() int {
	switch p {
	case PriorityHigh:
		return 4
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 2
	case PriorityVacation:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityVacation, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DailyNote is a free-text annotation for one user on one date.
// New notes start empty with PriorityLow.
type DailyNote struct {
	ID        string    `json:"id" db:"id"`
	Date      string    `json:"date" db:"date"`
	Text      string    `json:"text" db:"text"`
	Priority  Priority  `json:"priority" db:"priority"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NotesByDate indexes notes by ISO date string.
type NotesByDate map[string][]DailyNote

// Add appends a note under its date.
func (m NotesByDate) Add(n DailyNote) {
	m[n.Date] = append(m[n.Date], n)
}

// Find returns the note with the given id, or nil if it is not present.
func (m NotesByDate) Find(id string) *DailyNote {
	for _, notes := range m {
		for i := range notes {
			if notes[i].ID == id {
				return &notes[i]
			}
		}
	}
	return nil
}

// Remove deletes the note with the given id. It reports whether a note
// was removed.
func (m NotesByDate) Remove(id string) bool {
	for date, notes := range m {
		for i := range notes {
			if notes[i].ID == id {
				m[date] = append(notes[:i:i], notes[i+1:]...)
				return true
			}
		}
	}
	return false
}

// HighestPriority returns the most severe priority among the notes,
// or PriorityNone for an empty slice.
func HighestPriority(notes []DailyNote) Priority {
	best := PriorityNone
	for _, n := range notes {
		if n.Priority.Severity() > best.Severity() {
			best = n.Priority
		}
	}
	return best
}
