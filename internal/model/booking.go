package model

import "time"

// Status enumerates the lifecycle states a booking can occupy.  The set is
// closed: transitions between states are only legal when declared in the
// lifecycle transition table (internal/booking).  Statuses are persisted as
// lowercase strings in the bookings.status column.
type Status string

const (
	StatusPending        Status = "pending"         // awaiting host approval
	StatusConfirmed      Status = "confirmed"       // approved or instant-booked
	StatusCompleted      Status = "completed"       // stay finished (end date elapsed)
	StatusCancelled      Status = "cancelled"       // cancelled by client, host or admin
	StatusRejected       Status = "rejected"        // declined by host or admin
	StatusPaymentPending Status = "payment_pending" // created but payment not finalised
	StatusRefundPending  Status = "refund_pending"  // refund requested, processor round trip open
	StatusRefunded       Status = "refunded"        // refund processed by an admin
)

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled,
		StatusRejected, StatusPaymentPending, StatusRefundPending, StatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transition is expected from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusRefunded:
		return true
	}
	return false
}

// Booking records a client's reservation of a location for a half-open time
// window [StartDate, EndDate).  A booking is never physically deleted once it
// reaches a real status; cancellation is a status change.  The one exception
// is abandoned payment_pending rows, which a janitor purges after a fixed TTL.
//
// All timestamps are stored and compared in UTC.
type Booking struct {
	ID         uint64    `json:"id"`          // bookings.id
	LocationID uint64    `json:"location_id"` // bookings.location_id, immutable
	ClientID   uint64    `json:"client_id"`   // bookings.client_id, immutable
	StartDate  time.Time `json:"start_date"`  // inclusive start of the window
	EndDate    time.Time `json:"end_date"`    // exclusive end of the window
	Status     Status    `json:"status"`      // current lifecycle state
	TotalPrice uint64    `json:"total_price"` // minor currency units, non-negative

	// Refund fields are populated only once the booking enters
	// refund_pending or refunded.
	RefundAmount      *uint64    `json:"refund_amount,omitempty"`       // minor units refunded
	RefundReason      *string    `json:"refund_reason,omitempty"`       // admin-supplied reason
	RefundedBy        *uint64    `json:"refunded_by,omitempty"`         // admin who processed
	RefundProcessedAt *time.Time `json:"refund_processed_at,omitempty"` // set when status becomes refunded

	CreatedAt time.Time `json:"created_at"` // bookings.created_at
	UpdatedAt time.Time `json:"updated_at"` // bookings.updated_at
}
