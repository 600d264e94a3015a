package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/booking"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/model"
)

// LocationRepo provides read access to the locations table.  The engine only
// needs the owner and the instant-booking flag; the rest of the location
// record belongs to the marketplace application, not this service.
type LocationRepo struct {
	db *sql.DB
}

// NewLocationRepo returns a new LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// GetLocation loads a location by ID, returning booking.ErrNotFound when it
// does not exist.
func (r *LocationRepo) GetLocation(ctx context.Context, id uint64) (*model.Location, error) {
	const q = `SELECT id, owner_id, instant_booking, created_at FROM locations WHERE id = ?`
	var loc model.Location
	err := r.db.QueryRowContext(ctx, q, id).Scan(&loc.ID, &loc.OwnerID, &loc.InstantBooking, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: location %d", booking.ErrNotFound, id)
		}
		return nil, err
	}
	return &loc, nil
}
