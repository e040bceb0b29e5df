package repository

import (
	"context"

	"airtrack-service/internal/domain/entity"
)

// UserNotifier delivers a price alert to a single user. Delivery is
// best-effort: a failure for one user must not stop notifying the rest.
type UserNotifier interface {
	NotifyUser(ctx context.Context, userID int64, tickets []entity.Ticket, direction entity.FlightDirection, directionID int64) error
}
