package booking

import (
	"testing"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

func TestNextDeclaredEdges(t *testing.T) {
	cases := []struct {
		from   model.Status
		action Action
		want   model.Status
	}{
		{model.StatusPending, ActionApprove, model.StatusConfirmed},
		{model.StatusPending, ActionReject, model.StatusRejected},
		{model.StatusPending, ActionCancel, model.StatusCancelled},
		{model.StatusConfirmed, ActionCancel, model.StatusCancelled},
		{model.StatusConfirmed, ActionComplete, model.StatusCompleted},
		{model.StatusConfirmed, ActionRequestRefund, model.StatusRefundPending},
		{model.StatusCompleted, ActionRequestRefund, model.StatusRefundPending},
		{model.StatusCancelled, ActionRequestRefund, model.StatusRefundPending},
		{model.StatusConfirmed, ActionRefund, model.StatusRefunded},
		{model.StatusCompleted, ActionRefund, model.StatusRefunded},
		{model.StatusCancelled, ActionRefund, model.StatusRefunded},
		{model.StatusRefundPending, ActionRefund, model.StatusRefunded},
	}
	for _, tc := range cases {
		got, ok := Next(tc.from, tc.action)
		if !ok || got != tc.want {
			t.Errorf("Next(%s, %s) = (%s, %v), want (%s, true)", tc.from, tc.action, got, ok, tc.want)
		}
	}
}

func TestNextRejectsUndeclaredEdges(t *testing.T) {
	cases := []struct {
		from   model.Status
		action Action
	}{
		{model.StatusConfirmed, ActionApprove},
		{model.StatusCancelled, ActionApprove},
		{model.StatusCompleted, ActionApprove},
		{model.StatusConfirmed, ActionReject},
		{model.StatusCompleted, ActionCancel},
		{model.StatusCancelled, ActionCancel},
		{model.StatusRejected, ActionCancel},
		{model.StatusRefunded, ActionCancel},
		{model.StatusPending, ActionComplete},
		{model.StatusPending, ActionRefund},
		{model.StatusPending, ActionRequestRefund},
		{model.StatusRejected, ActionRequestRefund},
		{model.StatusRefunded, ActionRefund},
		{model.StatusPaymentPending, ActionApprove},
		{model.StatusPaymentPending, ActionCancel},
	}
	for _, tc := range cases {
		if _, ok := Next(tc.from, tc.action); ok {
			t.Errorf("Next(%s, %s) accepted, want rejected", tc.from, tc.action)
		}
	}
}

// Every declared edge must start and end on a valid status, and terminal
// statuses must have no outgoing edges except refund processing.
func TestTransitionTableClosure(t *testing.T) {
	for action, edges := range transitions {
		for from, to := range edges {
			if !from.Valid() {
				t.Errorf("edge %s declares invalid source %q", action, from)
			}
			if !to.Valid() {
				t.Errorf("edge %s declares invalid target %q", action, to)
			}
		}
	}
	if _, ok := Next(model.StatusRefunded, ActionRequestRefund); ok {
		t.Error("refunded bookings must not re-enter the refund flow")
	}
}

func TestClassifyActor(t *testing.T) {
	b := &model.Booking{ClientID: clientID}
	loc := &model.Location{OwnerID: ownerID}
	if got := classifyActor(clientID, false, b, loc); got != roleClient {
		t.Errorf("classifyActor(client) = %v, want roleClient", got)
	}
	if got := classifyActor(ownerID, false, b, loc); got != roleHost {
		t.Errorf("classifyActor(owner) = %v, want roleHost", got)
	}
	if got := classifyActor(adminID, true, b, loc); got != roleAdmin {
		t.Errorf("classifyActor(unrelated admin) = %v, want roleAdmin", got)
	}
	if got := classifyActor(strangerID, false, b, loc); got != roleStranger {
		t.Errorf("classifyActor(unrelated non-admin) = %v, want roleStranger", got)
	}
	// Being a party to the booking takes precedence over the admin flag.
	if got := classifyActor(clientID, true, b, loc); got != roleClient {
		t.Errorf("classifyActor(client with admin role) = %v, want roleClient", got)
	}
}

func TestPermitted(t *testing.T) {
	cases := []struct {
		role   actorRole
		action Action
		want   bool
	}{
		{roleClient, ActionApprove, false},
		{roleHost, ActionApprove, true},
		{roleAdmin, ActionApprove, true},
		{roleClient, ActionReject, false},
		{roleHost, ActionReject, true},
		{roleClient, ActionCancel, true},
		{roleHost, ActionCancel, true},
		{roleAdmin, ActionCancel, true},
		{roleClient, ActionComplete, false},
		{roleHost, ActionComplete, false},
		{roleAdmin, ActionComplete, true},
		{roleClient, ActionRefund, false},
		{roleHost, ActionRefund, false},
		{roleAdmin, ActionRefund, true},
		{roleClient, ActionRequestRefund, true},
		{roleHost, ActionRequestRefund, false},
		{roleAdmin, ActionRequestRefund, true},
		{roleStranger, ActionApprove, false},
		{roleStranger, ActionReject, false},
		{roleStranger, ActionCancel, false},
		{roleStranger, ActionComplete, false},
		{roleStranger, ActionRequestRefund, false},
		{roleStranger, ActionRefund, false},
	}
	for _, tc := range cases {
		if got := permitted(tc.role, tc.action); got != tc.want {
			t.Errorf("permitted(%s, %s) = %v, want %v", roleName(tc.role), tc.action, got, tc.want)
		}
	}
}

func TestStatusValidAndTerminal(t *testing.T) {
	if model.Status("unknown").Valid() {
		t.Error("unknown status reported valid")
	}
	for _, s := range []model.Status{model.StatusCompleted, model.StatusRejected, model.StatusRefunded} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []model.Status{model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusRefundPending} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
