package model

// EntityShift and EntityNote identify the kind of entity a pending
// change refers to.
const (
	EntityShift = "shift"
	EntityNote  = "note"
)

// Shift is a single work interval for one user at one business on one date.
// CheckIn and CheckOut are wall-clock times in "HH:MM" form; either may be
// empty while the user is still filling in the row. A checkout earlier than
// the checkin means the shift crossed midnight.
type Shift struct {
	ID         string `json:"id" db:"id"`
	BusinessID string `json:"business_id" db:"business_id"`
	Date       string `json:"date" db:"date"`
	CheckIn    string `json:"check_in" db:"check_in"`
	CheckOut   string `json:"check_out" db:"check_out"`
	Note       string `json:"note" db:"note"`
}

// ShiftsByDate indexes shifts first by ISO date string, then by business id.
type ShiftsByDate map[string]map[string][]Shift

// Add appends a shift under its date and business, creating buckets as needed.
func (m ShiftsByDate) Add(s Shift) {
	if m[s.Date] == nil {
		m[s.Date] = make(map[string][]Shift)
	}
	m[s.Date][s.BusinessID] = append(m[s.Date][s.BusinessID], s)
}

// Find returns the shift with the given id, or nil if it is not present.
func (m ShiftsByDate) Find(id string) *Shift {
	for _, byBusiness := range m {
		for _, shifts := range byBusiness {
			for i := range shifts {
				if shifts[i].ID == id {
					return &shifts[i]
				}
			}
		}
	}
	return nil
}

// Remove deletes the shift with the given id. It reports whether a
// shift was removed.
func (m ShiftsByDate) Remove(id string) bool {
	for date, byBusiness := range m {
		for businessID, shifts := range byBusiness {
			for i := range shifts {
				if shifts[i].ID == id {
					m[date][businessID] = append(shifts[:i:i], shifts[i+1:]...)
					return true
				}
			}
		}
	}
	return false
}
