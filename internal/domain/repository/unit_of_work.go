package repository

import "context"

// Repositories bundles the four storage contracts bound to one
// transactional session.
type Repositories struct {
	Users          UserRepository
	Directions     FlightDirectionRepository
	UserDirections UserDirectionRepository
	Tickets        TicketRepository
}

// UnitOfWork runs fn inside a single transaction. The repositories
// handed to fn are scoped to that transaction; when fn returns nil the
// transaction commits, on error or panic it rolls back, so mutations
// spanning several repositories either all land or none do.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
