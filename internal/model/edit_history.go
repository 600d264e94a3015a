package model

import "time"

// BookingEditRecord is one entry in the append-only audit trail for
// privileged booking mutations.  A record is written whenever an admin moves
// a booking's status; records are never rewritten or deleted.
type BookingEditRecord struct {
	ID           uint64    `json:"id"`            // booking_edit_history.id
	BookingID    uint64    `json:"booking_id"`    // booking the edit applies to
	ActorID      uint64    `json:"actor_id"`      // admin who performed the change
	StatusBefore Status    `json:"status_before"` // snapshot before the mutation
	StatusAfter  Status    `json:"status_after"`  // snapshot after the mutation
	Reason       string    `json:"reason"`        // admin-supplied reason
	CreatedAt    time.Time `json:"created_at"`    // when the edit was recorded
}
