package model

import "testing"

func TestPrioritySeverityOrdering(t *testing.T) {
	ordered := []Priority{PriorityNone, PriorityVacation, PriorityLow, PriorityMedium, PriorityHigh}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Severity() <= ordered[i-1].Severity() {
			t.Errorf("Severity(%q)=%d not above Severity(%q)=%d",
				ordered[i], ordered[i].Severity(), ordered[i-1], ordered[i-1].Severity())
		}
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityNone, PriorityVacation, PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Priority("urgent").Valid() {
		t.Error("unknown priority should not be valid")
	}
}

func TestHighestPriority(t *testing.T) {
	notes := []DailyNote{
		{ID: "1", Priority: PriorityVacation},
		{ID: "2", Priority: PriorityMedium},
		{ID: "3", Priority: PriorityLow},
	}
	if got := HighestPriority(notes); got != PriorityMedium {
		t.Errorf("HighestPriority = %q, want medium", got)
	}
	if got := HighestPriority(nil); got != PriorityNone {
		t.Errorf("HighestPriority(nil) = %q, want none", got)
	}
}

func TestNotesByDateRemove(t *testing.T) {
	m := NotesByDate{}
	m.Add(DailyNote{ID: "1", Date: "2026-08-03"})
	m.Add(DailyNote{ID: "2", Date: "2026-08-03"})

	if !m.Remove("1") {
		t.Fatal("Remove should report true for a present note")
	}
	if m.Find("1") != nil {
		t.Error("note 1 still present after Remove")
	}
	if m.Find("2") == nil {
		t.Error("note 2 should survive removing note 1")
	}
	if m.Remove("1") {
		t.Error("Remove should report false for a missing note")
	}
}
