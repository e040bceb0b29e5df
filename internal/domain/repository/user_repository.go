package repository

import "context"

// UserRepository defines the interface for known users.
type UserRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Add(ctx context.Context, userID int64) error
}
