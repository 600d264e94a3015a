package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/booking"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// BookingRepo provides data access to the bookings table.  It implements
// booking.BookingStore.  All timestamp columns are stored in UTC; the DSN
// sets loc=UTC so time.Time values round-trip without conversion.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, location_id, client_id, start_date, end_date, status,
       total_price, refund_amount, refund_reason, refunded_by, refund_processed_at,
       created_at, updated_at`

// scanBooking reads one bookings row into a model.Booking.  It works for
// both *sql.Row and *sql.Rows through the scanner interface.
func scanBooking(sc interface{ Scan(...any) error }) (*model.Booking, error) {
	var (
		b            model.Booking
		refundAmount sql.NullInt64
		refundReason sql.NullString
		refundedBy   sql.NullInt64
		processedAt  sql.NullTime
	)
	err := sc.Scan(
		&b.ID, &b.LocationID, &b.ClientID, &b.StartDate, &b.EndDate, &b.Status,
		&b.TotalPrice, &refundAmount, &refundReason, &refundedBy, &processedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refundAmount.Valid {
		v := uint64(refundAmount.Int64)
		b.RefundAmount = &v
	}
	if refundReason.Valid {
		v := refundReason.String
		b.RefundReason = &v
	}
	if refundedBy.Valid {
		v := uint64(refundedBy.Int64)
		b.RefundedBy = &v
	}
	if processedAt.Valid {
		v := processedAt.Time.UTC()
		b.RefundProcessedAt = &v
	}
	return &b, nil
}

// GetBooking loads a single booking by ID.  When no row exists it returns
// booking.ErrNotFound so callers do not have to know about sql.ErrNoRows.
func (r *BookingRepo) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", booking.ErrNotFound, id)
		}
		return nil, err
	}
	return b, nil
}

// ListForLocation returns every booking for the location ordered by start
// date.  Status filtering is the engine's concern, not the store's.
func (r *BookingRepo) ListForLocation(ctx context.Context, locationID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE location_id = ? ORDER BY start_date`
	return r.queryBookings(ctx, q, locationID)
}

// ListByClient returns every booking created by the client, newest first.
func (r *BookingRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE client_id = ? ORDER BY created_at DESC`
	return r.queryBookings(ctx, q, clientID)
}

func (r *BookingRepo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new booking, guarding against a double-booking race.  It
// locks the location row with SELECT ... FOR UPDATE, re-checks the window
// against calendar-holding bookings inside the same transaction, and only
// then inserts.  Two concurrent creates for overlapping windows serialize on
// the location lock, so exactly one succeeds; the loser gets
// booking.ErrConflict.  The generated ID and timestamps are populated on b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialize creates per location.
	var locID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM locations WHERE id = ? FOR UPDATE`, b.LocationID).Scan(&locID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: location %d", booking.ErrNotFound, b.LocationID)
		}
		return err
	}

	// Re-check the window now that the lock is held.  Cancelled and
	// payment_pending bookings do not hold the calendar.
	const overlapQ = `SELECT EXISTS (
                SELECT 1 FROM bookings
                WHERE location_id = ?
                  AND status NOT IN ('cancelled', 'payment_pending')
                  AND start_date < ? AND end_date > ?
        )`
	var taken bool
	if err := tx.QueryRowContext(ctx, overlapQ, b.LocationID, b.EndDate, b.StartDate).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return booking.ErrConflict
	}

	const ins = `INSERT INTO bookings (location_id, client_id, start_date, end_date, status, total_price)
                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, b.LocationID, b.ClientID, b.StartDate, b.EndDate, b.Status, b.TotalPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back database-assigned timestamps.
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateStatus persists b's status and refund fields, conditional on the row
// still being in the `from` status.  A zero-row update means a concurrent
// transition won (or the row vanished); either way the caller's view is
// stale and booking.ErrInvalidTransition is returned.
func (r *BookingRepo) UpdateStatus(ctx context.Context, b *model.Booking, from model.Status) error {
	const q = `UPDATE bookings
               SET status = ?, refund_amount = ?, refund_reason = ?, refunded_by = ?,
                   refund_processed_at = ?, updated_at = ?
               WHERE id = ? AND status = ?`
	var (
		refundAmount any
		refundReason any
		refundedBy   any
		processedAt  any
	)
	if b.RefundAmount != nil {
		refundAmount = *b.RefundAmount
	}
	if b.RefundReason != nil {
		refundReason = *b.RefundReason
	}
	if b.RefundedBy != nil {
		refundedBy = *b.RefundedBy
	}
	if b.RefundProcessedAt != nil {
		processedAt = *b.RefundProcessedAt
	}
	res, err := r.db.ExecContext(ctx, q,
		b.Status, refundAmount, refundReason, refundedBy, processedAt, b.UpdatedAt,
		b.ID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: booking %d is no longer %s", booking.ErrInvalidTransition, b.ID, from)
	}
	return nil
}

// CompleteElapsed transitions every confirmed booking whose end date passed
// the cutoff to completed and returns the affected bookings.  The select and
// update run in one transaction with the rows locked, so a booking cancelled
// between the two statements cannot be completed by mistake.
func (r *BookingRepo) CompleteElapsed(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sel := `SELECT ` + bookingColumns + ` FROM bookings
            WHERE status = 'confirmed' AND end_date < ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, sel, cutoff)
	if err != nil {
		return nil, err
	}
	var done []model.Booking
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		done = append(done, *b)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(done) == 0 {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		committed = true
		return nil, nil
	}

	// Update exactly the rows selected above, by ID, so the returned set and
	// the mutation cannot diverge if another row becomes eligible mid-tx.
	ids := make([]any, 0, len(done))
	marks := make([]string, 0, len(done))
	for i := range done {
		ids = append(ids, done[i].ID)
		marks = append(marks, "?")
	}
	upd := `UPDATE bookings SET status = 'completed', updated_at = UTC_TIMESTAMP()
            WHERE id IN (` + strings.Join(marks, ", ") + `)`
	if _, err := tx.ExecContext(ctx, upd, ids...); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	for i := range done {
		done[i].Status = model.StatusCompleted
	}
	return done, nil
}

// DeleteAbandonedPayments purges payment_pending rows whose start date is at
// or before the cutoff.  This is the only physical delete the engine ever
// requests; every other terminal outcome is a status change.
func (r *BookingRepo) DeleteAbandonedPayments(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM bookings WHERE status = 'payment_pending' AND start_date <= ?`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
