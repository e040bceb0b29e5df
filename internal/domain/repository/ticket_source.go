package repository

import (
	"context"

	"airtrack-service/internal/domain/entity"
)

// TicketSource is the external price source. Errors are classified with
// the entity sentinels: ErrSourceUnavailable and ErrSourceRejected are
// transient, ErrSourceResponse means the upstream format diverged from
// what the parser expects.
type TicketSource interface {
	// GetTickets returns up to limit cheapest tickets for the
	// direction, ordered by ascending price. An empty result is a valid
	// outcome, not an error.
	GetTickets(ctx context.Context, direction entity.FlightDirection, limit int) ([]entity.Ticket, error)

	// GetMonthPrices returns the cheapest ticket per departure date
	// ("YYYY-MM-DD") of the given month, keyed by date.
	GetMonthPrices(ctx context.Context, direction entity.FlightDirection, year int, month int) (map[string]entity.Ticket, error)
}
