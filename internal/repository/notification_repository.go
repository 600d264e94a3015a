package repository

import (
	"context"
	"database/sql"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// NotificationRepo stores the notifications produced from lifecycle events.
// Rows are written by the queue consumer; recipients flip the read flag
// through the HTTP surface.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo bound to the database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Insert writes one notification.  The table carries a unique key on
// (user_id, type, related_id, related_type), and INSERT IGNORE turns a
// broker redelivery into a no-op instead of a duplicate row, which keeps
// notifications exactly-once per transition.  It returns true when a row
// was actually created.
func (r *NotificationRepo) Insert(ctx context.Context, n *model.Notification) (bool, error) {
	const q = `INSERT IGNORE INTO notifications
               (user_id, type, related_id, related_type, title, message)
               VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		n.UserID, n.Type, n.RelatedID, n.RelatedType, n.Title, n.Message)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	n.ID = uint64(id)
	return true, nil
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	const q = `SELECT id, user_id, type, related_id, related_type, title, message, is_read, created_at
               FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.RelatedID, &n.RelatedType,
			&n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flips the read flag on one of the user's notifications.  The
// user_id predicate enforces ownership; marking someone else's notification
// affects zero rows.  Returns whether a row changed.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) (bool, error) {
	const q = `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ? AND is_read = 0`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
