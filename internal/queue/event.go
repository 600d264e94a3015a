// Package queue defines message payloads exchanged over the message broker.
package queue

// EventsQueue is the durable queue carrying booking lifecycle events from
// the engine to the notification consumer.
const EventsQueue = "booking.events"

// LifecycleEvent is the wire form of one booking lifecycle event.  It holds
// everything the consumer needs to write a notification row without
// querying the primary database.
type LifecycleEvent struct {
	UserID      uint64 `json:"user_id"`      // recipient of the notification
	Type        string `json:"type"`         // e.g. "booking_approved"
	RelatedID   uint64 `json:"related_id"`   // booking identifier
	RelatedType string `json:"related_type"` // kind of related entity
	Title       string `json:"title"`        // short summary
	Message     string `json:"message"`      // message body
	OccurredAt  string `json:"occurred_at"`  // RFC3339 UTC timestamp of the transition
}
