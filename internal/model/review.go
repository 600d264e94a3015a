package model

import "time"

// ReviewRole distinguishes the direction of a review after a stay.  Each
// finished booking expects one review in each direction.
type ReviewRole string

const (
	ReviewGuestToHost ReviewRole = "guest_to_host" // client reviews the host
	ReviewHostToGuest ReviewRole = "host_to_guest" // host reviews the client
)

// Review is a post-stay review authored by one party of a booking.  The
// engine treats reviews as a collaborator entity: it never writes them, it
// only derives the review-gate policy (a user with outstanding required
// reviews cannot create new bookings) from their presence.
type Review struct {
	ID        uint64     `json:"id"`         // reviews.id
	BookingID uint64     `json:"booking_id"` // reviews.booking_id
	AuthorID  uint64     `json:"author_id"`  // reviews.author_id
	Role      ReviewRole `json:"role"`       // reviews.role
	Rating    uint8      `json:"rating"`     // reviews.rating (1..5)
	Comment   string     `json:"comment"`    // reviews.comment
	CreatedAt time.Time  `json:"created_at"` // reviews.created_at
}
