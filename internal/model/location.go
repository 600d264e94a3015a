package model

import "time"

// Location is the rentable space a booking refers to.  The engine does not
// own locations; it only needs the owner (for notification routing and host
// permission checks) and the instant-booking flag (which decides whether a
// fresh booking starts confirmed or pending).
type Location struct {
	ID             uint64    `json:"id"`              // locations.id
	OwnerID        uint64    `json:"owner_id"`        // locations.owner_id
	InstantBooking bool      `json:"instant_booking"` // locations.instant_booking
	CreatedAt      time.Time `json:"created_at"`      // locations.created_at
}
