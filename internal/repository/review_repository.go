package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReviewRepo answers the derived review-gate query.  Reviews themselves are
// written by the marketplace application; this repository only counts which
// required ones are missing.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// CountOutstanding returns how many finished bookings involving the user
// still lack the user's review for their role in that booking.  A booking is
// finished when it is completed, or confirmed with an end date in the past.
// The user owes a guest_to_host review where they were the client and a
// host_to_guest review where they own the location.
func (r *ReviewRepo) CountOutstanding(ctx context.Context, userID uint64, now time.Time) (int, error) {
	const q = `SELECT COUNT(*)
               FROM bookings b
               JOIN locations l ON l.id = b.location_id
               LEFT JOIN reviews rv ON rv.booking_id = b.id
                    AND rv.author_id = ?
                    AND rv.role = IF(b.client_id = ?, 'guest_to_host', 'host_to_guest')
               WHERE (b.client_id = ? OR l.owner_id = ?)
                 AND (b.status = 'completed' OR (b.status = 'confirmed' AND b.end_date < ?))
                 AND rv.id IS NULL`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, userID, userID, userID, now).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
