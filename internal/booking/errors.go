// Package booking implements the booking lifecycle and availability engine.
// It owns the status state machine, the conflict-detection rules and the
// review-gate policy, and emits lifecycle events for a notification
// dispatcher to deliver.  Persistence and delivery are collaborators reached
// through the interfaces declared in engine.go; the package itself never
// talks to a database or a broker.
package booking

import "errors"

// Sentinel errors returned by the engine.  Callers distinguish failure
// kinds with errors.Is; HTTP handlers translate them into status codes.

// ErrConflict is returned when a requested window overlaps an existing
// active booking for the same location.  The caller can recover by
// choosing another window.
var ErrConflict = errors.New("booking window conflicts with an existing booking")

// ErrReviewRequired is returned when the review gate blocks a user from
// creating a new booking.  The caller can recover after the user submits
// their outstanding reviews.
var ErrReviewRequired = errors.New("outstanding reviews required before booking")

// ErrNotFound is returned when a referenced booking or location does not
// exist.  Store implementations must return it (possibly wrapped) in place
// of their driver-specific no-rows error.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when a requested status change is not a
// declared edge of the lifecycle state machine, or when a concurrent
// transition won the race for the same booking.  State is left untouched;
// the caller must re-fetch before retrying.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrForbidden is returned when the acting user is not permitted to perform
// the requested action on the booking.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidWindow is returned when a proposed interval does not satisfy
// start < end.
var ErrInvalidWindow = errors.New("invalid booking window: start must precede end")

// ErrStorage wraps persistence failures so callers can tell infrastructure
// faults apart from domain rejections.
var ErrStorage = errors.New("storage failure")
