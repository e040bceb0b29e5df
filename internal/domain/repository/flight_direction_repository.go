package repository

import (
	"context"
	"time"

	"airtrack-service/internal/domain/entity"
)

// FlightDirectionRepository defines the interface for direction storage.
// At most one row exists per distinct direction value; the key is the
// codes, transfer flag and dates.
type FlightDirectionRepository interface {
	// AddDirectionInfo inserts a new direction and returns its id.
	// price may be nil when no offer is known yet.
	AddDirectionInfo(ctx context.Context, direction entity.FlightDirection, price *float64, now time.Time) (int64, error)

	// GetDirectionID returns the id of the stored direction, or false
	// when the direction has never been tracked.
	GetDirectionID(ctx context.Context, direction entity.FlightDirection) (int64, bool, error)

	GetDirectionsInfo(ctx context.Context, ids []int64) ([]entity.FlightDirectionInfo, error)

	// GetDirectionsWithLastUpdateTryBefore returns up to limit
	// directions whose last refresh attempt is older than threshold,
	// ordered oldest last_update first.
	GetDirectionsWithLastUpdateTryBefore(ctx context.Context, threshold time.Time, limit int) ([]entity.FlightDirectionInfo, error)

	// UpdatePrice stores the outcome of a successful refresh: the new
	// cheapest price (nil when the source returned no offers) and both
	// freshness timestamps.
	UpdatePrice(ctx context.Context, id int64, price *float64, now time.Time) error

	// UpdateLastUpdateTry records a refresh attempt that produced no
	// data, so the direction does not stay at the head of the stale
	// queue forever.
	UpdateLastUpdateTry(ctx context.Context, id int64, tryAt time.Time) error

	// DeleteDirection removes a direction a user gave up on: it writes
	// the historic snapshot with deleted_by_user=true and removes the
	// live row together with its user links and tickets.
	DeleteDirection(ctx context.Context, id int64, deletedAt time.Time) error

	// DeleteOutdatedDirections archives (deleted_by_user=false) and
	// removes every direction whose departure is strictly before
	// yesterday relative to now. Returns the number removed.
	DeleteOutdatedDirections(ctx context.Context, now time.Time) (int, error)
}
