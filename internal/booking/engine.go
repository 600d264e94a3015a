package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// BookingStore is the persistence boundary for bookings.  Implementations
// must return ErrNotFound (possibly wrapped) when a booking does not exist
// and ErrConflict when Create loses the atomic availability re-check.
type BookingStore interface {
	// GetBooking loads a single booking by ID.
	GetBooking(ctx context.Context, id uint64) (*model.Booking, error)
	// ListForLocation returns every booking for a location, any status.
	ListForLocation(ctx context.Context, locationID uint64) ([]model.Booking, error)
	// Create inserts the booking after re-checking the window under a
	// location-scoped lock so two concurrent creates cannot both succeed.
	Create(ctx context.Context, b *model.Booking) error
	// UpdateStatus persists b conditionally on its status still being
	// `from`, returning ErrInvalidTransition when zero rows match.
	UpdateStatus(ctx context.Context, b *model.Booking, from model.Status) error
	// CompleteElapsed marks confirmed bookings with end_date before cutoff
	// as completed and returns the bookings it changed.
	CompleteElapsed(ctx context.Context, cutoff time.Time) ([]model.Booking, error)
	// DeleteAbandonedPayments removes payment_pending rows whose start date
	// is at or before cutoff, returning the number deleted.
	DeleteAbandonedPayments(ctx context.Context, cutoff time.Time) (int64, error)
}

// LocationStore resolves the collaborator data the engine needs about a
// location: its owner and the instant-booking flag.
type LocationStore interface {
	GetLocation(ctx context.Context, id uint64) (*model.Location, error)
}

// ReviewStore answers the derived review-gate query.
type ReviewStore interface {
	// CountOutstanding returns how many required reviews the user has not
	// yet written for their finished bookings, in either role.
	CountOutstanding(ctx context.Context, userID uint64, now time.Time) (int, error)
}

// HistoryStore appends to the booking audit trail.
type HistoryStore interface {
	Append(ctx context.Context, rec *model.BookingEditRecord) error
}

// EventPublisher delivers lifecycle events to the notification pipeline.
// Delivery is fire-and-forget from the engine's point of view: errors are
// logged and never fail the transition that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Options tune engine policy.  The zero value yields the hardened defaults:
// availability checks fail closed and abandoned payments live 30 minutes.
type Options struct {
	// FailOpen restores the legacy behavior of treating a storage error
	// during the conflict check as "no conflict".  Leave false unless the
	// deployment explicitly prefers availability over correctness.
	FailOpen bool
	// PaymentTTL is how long a payment_pending booking may sit before the
	// janitor purges it.  Zero means the 30 minute default.
	PaymentTTL time.Duration
	// Now overrides the clock, for tests.  Nil means time.Now in UTC.
	Now func() time.Time
}

// Engine coordinates availability checks, lifecycle transitions and event
// emission.  It is safe for concurrent use; all synchronization happens at
// the storage boundary.
type Engine struct {
	bookings   BookingStore
	locations  LocationStore
	reviews    ReviewStore
	history    HistoryStore
	events     EventPublisher
	failOpen   bool
	paymentTTL time.Duration
	now        func() time.Time
}

// NewEngine constructs an Engine.  All collaborators must be non-nil.
func NewEngine(bookings BookingStore, locations LocationStore, reviews ReviewStore, history HistoryStore, events EventPublisher, opts Options) *Engine {
	if bookings == nil || locations == nil || reviews == nil || history == nil || events == nil {
		panic("nil collaborator passed to NewEngine")
	}
	e := &Engine{
		bookings:   bookings,
		locations:  locations,
		reviews:    reviews,
		history:    history,
		events:     events,
		failOpen:   opts.FailOpen,
		paymentTTL: opts.PaymentTTL,
		now:        opts.Now,
	}
	if e.paymentTTL <= 0 {
		e.paymentTTL = 30 * time.Minute
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}
	return e
}

// CanUserBook reports whether the review gate permits userID to create a new
// booking.  It is a pure derived query over bookings and reviews.
func (e *Engine) CanUserBook(ctx context.Context, userID uint64) (bool, error) {
	n, err := e.reviews.CountOutstanding(ctx, userID, e.now())
	if err != nil {
		return false, fmt.Errorf("%w: counting outstanding reviews: %v", ErrStorage, err)
	}
	return n == 0, nil
}

// CreateRequest carries the client's proposed booking.
type CreateRequest struct {
	LocationID uint64    `json:"location_id"`
	ClientID   uint64    `json:"client_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice uint64    `json:"total_price"`
}

// CreateBooking runs the create path: review gate, conflict check, then the
// atomic insert.  The booking starts confirmed when the location has instant
// booking enabled, otherwise pending.  On success the location owner is
// notified that a booking arrived.
//
// The store's Create performs its own window re-check under a location lock,
// so a race between two overlapping requests resolves to exactly one
// success; the loser receives ErrConflict.
func (e *Engine) CreateBooking(ctx context.Context, req CreateRequest) (*model.Booking, []Event, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, nil, ErrInvalidWindow
	}
	loc, err := e.locations.GetLocation(ctx, req.LocationID)
	if err != nil {
		return nil, nil, err
	}
	ok, err := e.CanUserBook(ctx, req.ClientID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrReviewRequired
	}
	conflict, err := e.HasConflict(ctx, req.LocationID, req.StartDate, req.EndDate, 0)
	if err != nil {
		return nil, nil, err
	}
	if conflict {
		return nil, nil, ErrConflict
	}

	status := model.StatusPending
	if loc.InstantBooking {
		status = model.StatusConfirmed
	}
	b := &model.Booking{
		LocationID: req.LocationID,
		ClientID:   req.ClientID,
		StartDate:  req.StartDate.UTC(),
		EndDate:    req.EndDate.UTC(),
		Status:     status,
		TotalPrice: req.TotalPrice,
	}
	if err := e.bookings.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	evs := []Event{newEvent(loc.OwnerID, EventBookingCreated, b,
		"New booking", fmt.Sprintf("A booking for %s was created (status %s).", windowText(b), b.Status))}
	e.dispatch(ctx, evs)
	return b, evs, nil
}

// Transition applies one lifecycle action to a booking on behalf of actorID.
// It validates the edge against the transition table, enforces actor
// permissions, persists the change conditionally on the old status, records
// an audit entry for admin-driven mutations, and emits the transition's
// notification events.  The admin flag comes from the caller's credentials;
// an actor who is neither the booking's client, the location's owner nor an
// admin is rejected with ErrForbidden regardless of the action.
//
// Re-applying an action to a booking that already moved on returns
// ErrInvalidTransition without emitting anything, which keeps approvals and
// cancellations idempotent from the notification sink's point of view.
func (e *Engine) Transition(ctx context.Context, bookingID uint64, action Action, actorID uint64, admin bool, reason string) (*model.Booking, []Event, error) {
	b, err := e.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	loc, err := e.locations.GetLocation(ctx, b.LocationID)
	if err != nil {
		return nil, nil, err
	}
	next, ok := Next(b.Status, action)
	if !ok {
		return nil, nil, fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, b.Status)
	}
	role := classifyActor(actorID, admin, b, loc)
	if !permitted(role, action) {
		return nil, nil, fmt.Errorf("%w: %s may not %s booking %d", ErrForbidden, roleName(role), action, b.ID)
	}

	from := b.Status
	now := e.now()
	b.Status = next
	b.UpdatedAt = now
	switch action {
	case ActionRequestRefund:
		if reason != "" {
			b.RefundReason = &reason
		}
	case ActionRefund:
		amount := b.TotalPrice
		b.RefundAmount = &amount
		if reason != "" {
			b.RefundReason = &reason
		}
		b.RefundedBy = &actorID
		t := now
		b.RefundProcessedAt = &t
	}
	if err := e.bookings.UpdateStatus(ctx, b, from); err != nil {
		return nil, nil, err
	}
	if role == roleAdmin {
		rec := &model.BookingEditRecord{
			BookingID:    b.ID,
			ActorID:      actorID,
			StatusBefore: from,
			StatusAfter:  b.Status,
			Reason:       reason,
			CreatedAt:    now,
		}
		if err := e.history.Append(ctx, rec); err != nil {
			return nil, nil, fmt.Errorf("%w: recording booking edit: %v", ErrStorage, err)
		}
	}

	evs := e.eventsFor(action, role, b, loc)
	e.dispatch(ctx, evs)
	return b, evs, nil
}

// eventsFor builds the notification events a completed transition owes.
// Cancellation notifies the counterpart of whoever cancelled, or both
// parties when an admin did; completion always notifies both.
func (e *Engine) eventsFor(action Action, role actorRole, b *model.Booking, loc *model.Location) []Event {
	switch action {
	case ActionApprove:
		return []Event{newEvent(b.ClientID, EventBookingApproved, b,
			"Booking approved", fmt.Sprintf("Your booking for %s was approved.", windowText(b)))}
	case ActionReject:
		return []Event{newEvent(b.ClientID, EventBookingRejected, b,
			"Booking rejected", fmt.Sprintf("Your booking for %s was rejected.", windowText(b)))}
	case ActionCancel:
		msg := fmt.Sprintf("The booking for %s was cancelled.", windowText(b))
		switch role {
		case roleClient:
			return []Event{newEvent(loc.OwnerID, EventBookingCancelled, b, "Booking cancelled", msg)}
		case roleHost:
			return []Event{newEvent(b.ClientID, EventBookingCancelled, b, "Booking cancelled", msg)}
		default:
			return []Event{
				newEvent(b.ClientID, EventBookingCancelled, b, "Booking cancelled", msg),
				newEvent(loc.OwnerID, EventBookingCancelled, b, "Booking cancelled", msg),
			}
		}
	case ActionComplete:
		msg := fmt.Sprintf("The booking for %s is complete.", windowText(b))
		return []Event{
			newEvent(b.ClientID, EventBookingCompleted, b, "Booking completed", msg),
			newEvent(loc.OwnerID, EventBookingCompleted, b, "Booking completed", msg),
		}
	case ActionRequestRefund:
		return []Event{newEvent(b.ClientID, EventRefundRequested, b,
			"Refund requested", fmt.Sprintf("A refund was requested for the booking of %s.", windowText(b)))}
	case ActionRefund:
		return []Event{newEvent(b.ClientID, EventBookingRefunded, b,
			"Booking refunded", fmt.Sprintf("Your booking for %s was refunded.", windowText(b)))}
	}
	return nil
}

// SweepCompletions marks every confirmed booking whose end date has elapsed
// as completed and notifies both parties.  The store applies a conditional
// update, so bookings concurrently cancelled or refunded are left alone.
// It returns the number of bookings completed.
func (e *Engine) SweepCompletions(ctx context.Context) (int, error) {
	done, err := e.bookings.CompleteElapsed(ctx, e.now())
	if err != nil {
		return 0, fmt.Errorf("%w: completing elapsed bookings: %v", ErrStorage, err)
	}
	for i := range done {
		b := &done[i]
		loc, err := e.locations.GetLocation(ctx, b.LocationID)
		if err != nil {
			log.Printf("booking-engine: location %d lookup failed during sweep: %v", b.LocationID, err)
			continue
		}
		e.dispatch(ctx, e.eventsFor(ActionComplete, roleAdmin, b, loc))
	}
	return len(done), nil
}

// PurgeAbandoned deletes payment_pending bookings older than the configured
// TTL.  This is the single place a booking row is destroyed instead of
// transitioned; no events are emitted for purged rows.
func (e *Engine) PurgeAbandoned(ctx context.Context) (int64, error) {
	cutoff := e.now().Add(-e.paymentTTL)
	n, err := e.bookings.DeleteAbandonedPayments(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: purging abandoned payments: %v", ErrStorage, err)
	}
	return n, nil
}

// dispatch hands events to the publisher, logging failures.  A delivery
// error never propagates: the transition already happened and must stand.
func (e *Engine) dispatch(ctx context.Context, evs []Event) {
	for _, ev := range evs {
		if err := e.events.Publish(ctx, ev); err != nil {
			log.Printf("booking-engine: publish %s for user %d failed: %v", ev.Type, ev.UserID, err)
		}
	}
}

func roleName(r actorRole) string {
	switch r {
	case roleClient:
		return "client"
	case roleHost:
		return "host"
	case roleAdmin:
		return "admin"
	default:
		return "stranger"
	}
}
