package repository

import (
	"context"
	"database/sql"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// HistoryRepo appends to the booking_edit_history audit trail.  The table is
// append-only: there are intentionally no update or delete methods here.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo returns a new HistoryRepo bound to the given database.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Append writes one audit record and populates the generated ID.
func (r *HistoryRepo) Append(ctx context.Context, rec *model.BookingEditRecord) error {
	const q = `INSERT INTO booking_edit_history
               (booking_id, actor_id, status_before, status_after, reason, created_at)
               VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		rec.BookingID, rec.ActorID, rec.StatusBefore, rec.StatusAfter, rec.Reason, rec.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// ListByBooking returns the audit trail for one booking, oldest first.
func (r *HistoryRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.BookingEditRecord, error) {
	const q = `SELECT id, booking_id, actor_id, status_before, status_after, reason, created_at
               FROM booking_edit_history WHERE booking_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingEditRecord, 0)
	for rows.Next() {
		var rec model.BookingEditRecord
		if err := rows.Scan(&rec.ID, &rec.BookingID, &rec.ActorID,
			&rec.StatusBefore, &rec.StatusAfter, &rec.Reason, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
