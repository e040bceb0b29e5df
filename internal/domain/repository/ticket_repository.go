package repository

import (
	"context"

	"airtrack-service/internal/domain/entity"
)

// TicketRepository defines the interface for cached ticket batches.
// Tickets always belong to a direction and are replaced as a whole
// batch; a refresh deletes the old batch and inserts the new one inside
// one transaction so a partial batch is never observable.
type TicketRepository interface {
	Add(ctx context.Context, tickets []entity.Ticket, directionID int64) error

	// GetDirectionTickets returns tickets ordered by ascending price.
	// limit <= 0 means no limit.
	GetDirectionTickets(ctx context.Context, directionID int64, limit int) ([]entity.Ticket, error)

	RemoveForDirection(ctx context.Context, directionID int64) error
}
