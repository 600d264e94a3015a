package model

import "time"

// Notification is a user-facing message produced from a booking lifecycle
// event.  Rows are written by the queue consumer, never by the engine
// directly.  The read flag is an independent field mutated by the recipient;
// it has no effect on the lifecycle.
//
// The (user_id, type, related_id, related_type) tuple is unique so that a
// redelivered broker message cannot create a second row for the same
// transition.
type Notification struct {
	ID          uint64    `json:"id"`           // notifications.id
	UserID      uint64    `json:"user_id"`      // recipient
	Type        string    `json:"type"`         // event type, e.g. "booking_approved"
	RelatedID   uint64    `json:"related_id"`   // identifier of the related entity
	RelatedType string    `json:"related_type"` // kind of the related entity, e.g. "booking"
	Title       string    `json:"title"`        // short human-readable summary
	Message     string    `json:"message"`      // full message body
	Read        bool      `json:"read"`         // recipient has opened the notification
	CreatedAt   time.Time `json:"created_at"`   // notifications.created_at
}
