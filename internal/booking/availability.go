package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// holdsCalendar reports whether a booking in status s blocks other bookings
// from taking the same window.  Cancelled bookings released their window and
// payment_pending rows never held one.
func holdsCalendar(s model.Status) bool {
	return s != model.StatusCancelled && s != model.StatusPaymentPending
}

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) share
// any instant.  Touching endpoints do not overlap, so back-to-back bookings
// are allowed.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// HasConflict reports whether any calendar-holding booking for the location
// overlaps the proposed [start,end) window.  excludeID, when non-zero, skips
// one booking; pass the booking's own ID when re-checking an edit.  It
// returns on the first conflict found.
//
// When the store fails, the configured policy decides the outcome: the
// default fails closed (the error propagates wrapped in ErrStorage), while
// FailOpen logs the error and reports no conflict, matching the legacy
// system's behavior.
func (e *Engine) HasConflict(ctx context.Context, locationID uint64, start, end time.Time, excludeID uint64) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidWindow
	}
	existing, err := e.bookings.ListForLocation(ctx, locationID)
	if err != nil {
		if e.failOpen {
			log.Printf("booking-engine: availability check for location %d failed open: %v", locationID, err)
			return false, nil
		}
		return false, fmt.Errorf("%w: listing bookings for location %d: %v", ErrStorage, locationID, err)
	}
	for i := range existing {
		b := &existing[i]
		if b.ID == excludeID && excludeID != 0 {
			continue
		}
		if !holdsCalendar(b.Status) {
			continue
		}
		if overlaps(start, end, b.StartDate, b.EndDate) {
			return true, nil
		}
	}
	return false, nil
}
