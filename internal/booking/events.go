package booking

import (
	"fmt"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// EventType identifies the lifecycle transition an event describes.  The
// values double as the notification "type" column written by the consumer.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingApproved  EventType = "booking_approved"
	EventBookingRejected  EventType = "booking_rejected"
	EventBookingCancelled EventType = "booking_cancelled"
	EventBookingCompleted EventType = "booking_completed"
	EventRefundRequested  EventType = "booking_refund_requested"
	EventBookingRefunded  EventType = "booking_refunded"
)

// Event is one user-facing notification produced by a lifecycle transition.
// The engine returns events to its caller and hands them to the publisher;
// it never delivers them itself.  A failed delivery must not roll back the
// transition that produced the event.
type Event struct {
	UserID      uint64    `json:"user_id"`      // recipient
	Type        EventType `json:"type"`         // transition kind
	RelatedID   uint64    `json:"related_id"`   // booking identifier
	RelatedType string    `json:"related_type"` // always "booking" for this engine
	Title       string    `json:"title"`        // short summary
	Message     string    `json:"message"`      // message body
}

// newEvent builds an event addressed to userID about the given booking.
func newEvent(userID uint64, typ EventType, b *model.Booking, title, message string) Event {
	return Event{
		UserID:      userID,
		Type:        typ,
		RelatedID:   b.ID,
		RelatedType: "booking",
		Title:       title,
		Message:     message,
	}
}

// windowText renders the booking window for message bodies.  Both bounds are
// formatted in UTC; the end bound is exclusive.
func windowText(b *model.Booking) string {
	return fmt.Sprintf("%s to %s",
		b.StartDate.UTC().Format("2006-01-02 15:04"),
		b.EndDate.UTC().Format("2006-01-02 15:04"))
}
