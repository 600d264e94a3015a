package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return base.AddDate(0, 0, d) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", day(0), day(2), day(0), day(2), true},
		{"partial overlap", day(0), day(2), day(1), day(3), true},
		{"contained", day(0), day(4), day(1), day(2), true},
		{"containing", day(1), day(2), day(0), day(4), true},
		{"disjoint before", day(0), day(1), day(2), day(3), false},
		{"disjoint after", day(2), day(3), day(0), day(1), false},
		{"touching at end", day(0), day(2), day(2), day(4), false},
		{"touching at start", day(2), day(4), day(0), day(2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Errorf("overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric in the two intervals.
			if got := overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Errorf("overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHoldsCalendar(t *testing.T) {
	holding := []model.Status{
		model.StatusPending, model.StatusConfirmed, model.StatusCompleted,
		model.StatusRejected, model.StatusRefundPending, model.StatusRefunded,
	}
	for _, s := range holding {
		if !holdsCalendar(s) {
			t.Errorf("holdsCalendar(%s) = false, want true", s)
		}
	}
	for _, s := range []model.Status{model.StatusCancelled, model.StatusPaymentPending} {
		if holdsCalendar(s) {
			t.Errorf("holdsCalendar(%s) = true, want false", s)
		}
	}
}

func TestHasConflictIgnoresReleasedStatuses(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.seedBooking(t, model.StatusCancelled, 1, 3)
	w.seedBooking(t, model.StatusPaymentPending, 1, 3)

	start, end := w.window(1, 3)
	conflict, err := w.engine.HasConflict(context.Background(), locID, start, end, 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if conflict {
		t.Error("cancelled and payment_pending bookings should not hold the calendar")
	}

	w.seedBooking(t, model.StatusRejected, 1, 3)
	conflict, err = w.engine.HasConflict(context.Background(), locID, start, end, 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if !conflict {
		t.Error("rejected bookings still hold the calendar")
	}
}

func TestHasConflictExcludesOwnBooking(t *testing.T) {
	w := newTestWorld(t, Options{})
	id := w.seedBooking(t, model.StatusConfirmed, 1, 3)

	start, end := w.window(1, 3)
	conflict, err := w.engine.HasConflict(context.Background(), locID, start, end, id)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if conflict {
		t.Error("a booking must not conflict with itself when excluded")
	}

	conflict, err = w.engine.HasConflict(context.Background(), locID, start, end, 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if !conflict {
		t.Error("without the exclusion the window is taken")
	}
}

func TestHasConflictInvalidWindow(t *testing.T) {
	w := newTestWorld(t, Options{})
	start, end := w.window(3, 1)
	if _, err := w.engine.HasConflict(context.Background(), locID, start, end, 0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("inverted window: err = %v, want ErrInvalidWindow", err)
	}
	same, _ := w.window(2, 2)
	if _, err := w.engine.HasConflict(context.Background(), locID, same, same, 0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("zero-length window: err = %v, want ErrInvalidWindow", err)
	}
}

func TestHasConflictFailClosed(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.bookings.listErr = errors.New("connection refused")

	start, end := w.window(1, 3)
	_, err := w.engine.HasConflict(context.Background(), locID, start, end, 0)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage under the fail-closed default", err)
	}
}

func TestHasConflictFailOpen(t *testing.T) {
	w := newTestWorld(t, Options{FailOpen: true})
	w.bookings.listErr = errors.New("connection refused")

	start, end := w.window(1, 3)
	conflict, err := w.engine.HasConflict(context.Background(), locID, start, end, 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if conflict {
		t.Error("fail-open policy must report no conflict on storage errors")
	}
}
