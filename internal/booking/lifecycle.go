package booking

import "github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"

// Action names a lifecycle operation requested by an actor.  Actions map a
// current status onto a new one through the transition table below; anything
// not in the table is rejected with ErrInvalidTransition.
type Action string

const (
	ActionApprove       Action = "approve"        // host accepts a pending request
	ActionReject        Action = "reject"         // host declines a pending request
	ActionCancel        Action = "cancel"         // either party withdraws
	ActionComplete      Action = "complete"       // stay finished (normally sweep-driven)
	ActionRequestRefund Action = "request_refund" // open a refund round trip
	ActionRefund        Action = "refund"         // admin processes the refund
)

// transitions is the single source of truth for legal status changes.  The
// refund action accepts refund_pending as well as the three direct sources,
// so both the two-step processor round trip and the direct admin path land
// on refunded.
var transitions = map[Action]map[model.Status]model.Status{
	ActionApprove: {
		model.StatusPending: model.StatusConfirmed,
	},
	ActionReject: {
		model.StatusPending: model.StatusRejected,
	},
	ActionCancel: {
		model.StatusPending:   model.StatusCancelled,
		model.StatusConfirmed: model.StatusCancelled,
	},
	ActionComplete: {
		model.StatusConfirmed: model.StatusCompleted,
	},
	ActionRequestRefund: {
		model.StatusConfirmed: model.StatusRefundPending,
		model.StatusCompleted: model.StatusRefundPending,
		model.StatusCancelled: model.StatusRefundPending,
	},
	ActionRefund: {
		model.StatusConfirmed:     model.StatusRefunded,
		model.StatusCompleted:     model.StatusRefunded,
		model.StatusCancelled:     model.StatusRefunded,
		model.StatusRefundPending: model.StatusRefunded,
	},
}

// Next returns the status a booking moves to when action is applied from the
// given status.  The second return value is false when the edge is not
// declared.
func Next(from model.Status, action Action) (model.Status, bool) {
	edges, ok := transitions[action]
	if !ok {
		return "", false
	}
	to, ok := edges[from]
	return to, ok
}

// actorRole classifies who is driving a transition relative to the booking.
type actorRole int

const (
	roleClient   actorRole = iota // the booking's client
	roleHost                      // the location's owner
	roleAdmin                     // unrelated actor carrying the ADMIN role claim
	roleStranger                  // unrelated actor without admin rights
)

// classifyActor derives the actor's role from identifiers and the admin flag
// the caller extracted from the request's credentials.  Being the client or
// the host takes precedence; an unrelated actor is an admin only when the
// flag says so, anyone else is a stranger and gets nothing.
func classifyActor(actorID uint64, admin bool, b *model.Booking, loc *model.Location) actorRole {
	switch actorID {
	case b.ClientID:
		return roleClient
	case loc.OwnerID:
		return roleHost
	}
	if admin {
		return roleAdmin
	}
	return roleStranger
}

// permitted reports whether a role may request the given action.  Clients
// cannot approve or reject their own requests, only admins process refunds
// or force completions, and strangers may do nothing at all.
func permitted(role actorRole, action Action) bool {
	switch action {
	case ActionApprove, ActionReject:
		return role == roleHost || role == roleAdmin
	case ActionCancel:
		return role == roleClient || role == roleHost || role == roleAdmin
	case ActionComplete, ActionRefund:
		return role == roleAdmin
	case ActionRequestRefund:
		return role == roleClient || role == roleAdmin
	}
	return false
}
