package model

import "time"

// Pending change actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// PendingChange is a not-yet-acknowledged local mutation queued for the
// next reconciliation cycle. The ledger keeps at most one change per
// (EntityType, EntityID) pair; a newer change for the same entity
// supersedes any older queued one.
type PendingChange struct {
	// EntityID is the id of the shift or note the change applies to.
	EntityID string `json:"entity_id" db:"entity_id"`

	// EntityType is EntityShift or EntityNote.
	EntityType string `json:"entity_type" db:"entity_type"`

	// Action is ActionCreate, ActionUpdate, or ActionDelete.
	Action string `json:"action" db:"action"`

	// Payload is the JSON-encoded entity state to apply. For deletes
	// only the id matters.
	Payload []byte `json:"payload" db:"payload"`

	// Timestamp is when the change was queued (refreshed on supersede).
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
