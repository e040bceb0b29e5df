package repository

import "context"

// UserDirectionRepository defines the interface for the many-to-many
// link between users and tracked directions.
type UserDirectionRepository interface {
	// Add links a user to a direction. Inserting an existing pair
	// returns entity.ErrAlreadyTracked.
	Add(ctx context.Context, userID, directionID int64) error

	// GetDirections returns the ids of directions tracked by the user.
	GetDirections(ctx context.Context, userID int64) ([]int64, error)

	// GetUsers returns the ids of users subscribed to the direction.
	GetUsers(ctx context.Context, directionID int64) ([]int64, error)

	Remove(ctx context.Context, userID, directionID int64) error
}
