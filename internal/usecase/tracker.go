package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
	"airtrack-service/pkg/logger"
)

// cheapestTicketsForNewDirection is how many offers are fetched when a
// direction has no cached tickets yet.
const cheapestTicketsForNewDirection = 3

// TrackerService adds directions to users' watch lists and serves their
// tracked state. It shares the storage contracts with the updater and
// observes the same invariants; the two never share in-memory state.
type TrackerService struct {
	uow      repository.UnitOfWork
	source   repository.TicketSource
	settings SettingsSource
	logger   logger.Logger
	now      func() time.Time
}

// NewTrackerService creates a new tracking service.
func NewTrackerService(
	uow repository.UnitOfWork,
	source repository.TicketSource,
	settings SettingsSource,
	log logger.Logger,
) *TrackerService {
	return &TrackerService{
		uow:      uow,
		source:   source,
		settings: settings,
		logger:   log,
		now:      time.Now,
	}
}

// RegisterUser records a user on first contact. Registering an existing
// user is a no-op.
func (s *TrackerService) RegisterUser(ctx context.Context, userID int64) error {
	return s.uow.Do(ctx, func(r repository.Repositories) error {
		exists, err := r.Users.Exists(ctx, userID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		s.logger.Info("new user", "userID", userID)
		return r.Users.Add(ctx, userID)
	})
}

// Track subscribes the user to the direction and returns the best
// available tickets together with the direction id. For an already
// known direction with a warm cache the external source is not called
// at all; otherwise the three cheapest offers are fetched and stored.
//
// The work is split into two transactions so no write lock is held
// while waiting on the external HTTP call.
func (s *TrackerService) Track(ctx context.Context, userID int64, direction entity.FlightDirection) ([]entity.Ticket, int64, error) {
	var (
		directionID int64
		known       bool
		cached      []entity.Ticket
	)
	err := s.uow.Do(ctx, func(r repository.Repositories) error {
		tracked, err := r.UserDirections.GetDirections(ctx, userID)
		if err != nil {
			return err
		}
		directionID, known, err = r.Directions.GetDirectionID(ctx, direction)
		if err != nil {
			return err
		}
		linked := false
		for _, id := range tracked {
			if known && id == directionID {
				linked = true
				break
			}
		}
		// re-tracking an already followed direction stays idempotent
		// even when the user sits at the limit
		if !linked && len(tracked) >= s.settings.Current().MaxDirectionsPerUser {
			return entity.ErrTrackingLimit
		}
		if !known {
			return nil
		}
		// concurrent trackers of the same direction may race here;
		// an existing link is not an error for this call
		if err := r.UserDirections.Add(ctx, userID, directionID); err != nil && !errors.Is(err, entity.ErrAlreadyTracked) {
			return err
		}
		cached, err = r.Tickets.GetDirectionTickets(ctx, directionID, 0)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if known && len(cached) > 0 {
		return cached, directionID, nil
	}

	tickets, err := s.source.GetTickets(ctx, direction, cheapestTicketsForNewDirection)
	if err != nil {
		if errors.Is(err, entity.ErrSourceResponse) {
			return nil, 0, err
		}
		s.logger.Warn("ticket source failed while tracking", "userID", userID, "error", err)
		tickets = nil
	}

	if !known {
		id, err := s.addDirection(ctx, userID, direction, tickets)
		if err != nil {
			return nil, 0, err
		}
		return tickets, id, nil
	}

	if len(tickets) > 0 {
		if err := s.replaceTickets(ctx, directionID, tickets); err != nil {
			return nil, 0, err
		}
	}
	return tickets, directionID, nil
}

// addDirection inserts a brand-new direction with its first ticket
// batch and links the user, all in one transaction. Another tracker may
// have inserted the same direction while the source call was in flight;
// that case merges into a plain link. The merge needs two shapes: a row
// committed before this transaction started shows up in the
// GetDirectionID re-check, while one committed after it triggers
// ErrDirectionExists on the insert. The unique-key violation aborts the
// whole transaction, so that branch retries in a fresh one, where the
// re-check finds the winner's row.
func (s *TrackerService) addDirection(ctx context.Context, userID int64, direction entity.FlightDirection, tickets []entity.Ticket) (int64, error) {
	var directionID int64
	insert := func(r repository.Repositories) error {
		id, known, err := r.Directions.GetDirectionID(ctx, direction)
		if err != nil {
			return err
		}
		if !known {
			id, err = r.Directions.AddDirectionInfo(ctx, direction, entity.CheapestPrice(tickets), s.now())
			if err != nil {
				return err
			}
			if err := r.Tickets.Add(ctx, tickets, id); err != nil {
				return err
			}
		}
		if err := r.UserDirections.Add(ctx, userID, id); err != nil && !errors.Is(err, entity.ErrAlreadyTracked) {
			return err
		}
		directionID = id
		return nil
	}
	err := s.uow.Do(ctx, insert)
	if errors.Is(err, entity.ErrDirectionExists) {
		err = s.uow.Do(ctx, insert)
	}
	if err != nil {
		return 0, fmt.Errorf("add tracked direction: %w", err)
	}
	return directionID, nil
}

func (s *TrackerService) replaceTickets(ctx context.Context, directionID int64, tickets []entity.Ticket) error {
	return s.uow.Do(ctx, func(r repository.Repositories) error {
		if err := r.Tickets.RemoveForDirection(ctx, directionID); err != nil {
			return err
		}
		if err := r.Tickets.Add(ctx, tickets, directionID); err != nil {
			return err
		}
		return r.Directions.UpdatePrice(ctx, directionID, entity.CheapestPrice(tickets), s.now())
	})
}

// UserDirections returns the directions the user currently tracks.
func (s *TrackerService) UserDirections(ctx context.Context, userID int64) ([]entity.FlightDirectionInfo, error) {
	var infos []entity.FlightDirectionInfo
	err := s.uow.Do(ctx, func(r repository.Repositories) error {
		ids, err := r.UserDirections.GetDirections(ctx, userID)
		if err != nil {
			return err
		}
		infos, err = r.Directions.GetDirectionsInfo(ctx, ids)
		return err
	})
	return infos, err
}

// DirectionTickets returns the cached ticket batch for a direction,
// cheapest first. limit <= 0 returns the whole batch.
func (s *TrackerService) DirectionTickets(ctx context.Context, directionID int64, limit int) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := s.uow.Do(ctx, func(r repository.Repositories) error {
		var err error
		tickets, err = r.Tickets.GetDirectionTickets(ctx, directionID, limit)
		return err
	})
	return tickets, err
}

// Untrack removes the user's subscription. When the last subscriber
// leaves, the direction is archived (deleted by user) and deleted in
// the same transaction, cascading through its links and tickets.
func (s *TrackerService) Untrack(ctx context.Context, userID, directionID int64) error {
	return s.uow.Do(ctx, func(r repository.Repositories) error {
		if err := r.UserDirections.Remove(ctx, userID, directionID); err != nil {
			return err
		}
		users, err := r.UserDirections.GetUsers(ctx, directionID)
		if err != nil {
			return err
		}
		if len(users) > 0 {
			return nil
		}
		s.logger.Info("direction no longer tracked, archiving", "directionID", directionID)
		return r.Directions.DeleteDirection(ctx, directionID, s.now())
	})
}

// MonthPrices returns the cheapest offer per departure day for the
// given month, straight from the source without touching storage.
func (s *TrackerService) MonthPrices(ctx context.Context, direction entity.FlightDirection, year int, month int) (map[string]entity.Ticket, error) {
	return s.source.GetMonthPrices(ctx, direction, year, month)
}
