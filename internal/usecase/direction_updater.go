package usecase

import (
	"context"
	"fmt"
	"time"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
	"airtrack-service/pkg/logger"
	"airtrack-service/pkg/metrics"
)

// DirectionUpdater drives the polling side of the engine: it selects
// stale directions, refreshes each from the ticket source, persists the
// result and notifies subscribers when the price dropped enough. It is
// safe to invoke repeatedly and concurrently with the tracker.
type DirectionUpdater struct {
	uow      repository.UnitOfWork
	source   repository.TicketSource
	notifier repository.UserNotifier
	settings SettingsSource
	logger   logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewDirectionUpdater creates a new direction updater. m may be nil.
func NewDirectionUpdater(
	uow repository.UnitOfWork,
	source repository.TicketSource,
	notifier repository.UserNotifier,
	settings SettingsSource,
	log logger.Logger,
	m *metrics.Metrics,
) *DirectionUpdater {
	return &DirectionUpdater{
		uow:      uow,
		source:   source,
		notifier: notifier,
		settings: settings,
		logger:   log,
		metrics:  m,
		now:      time.Now,
	}
}

// Update runs one polling pass. Directions are refreshed sequentially
// to bound the load on the external source; a failed direction is
// skipped and picked up again on a later cycle. Cancellation is honored
// between directions, never mid-transaction.
func (u *DirectionUpdater) Update(ctx context.Context) error {
	started := u.now()
	st := u.settings.Current()
	threshold := started.Add(-time.Duration(st.NeedsUpdateAfterMinutes) * time.Minute)

	var directions []entity.FlightDirectionInfo
	err := u.uow.Do(ctx, func(r repository.Repositories) error {
		var err error
		directions, err = r.Directions.GetDirectionsWithLastUpdateTryBefore(ctx, threshold, st.MaxDirectionsForSingleUpdate)
		return err
	})
	if err != nil {
		return fmt.Errorf("select stale directions: %w", err)
	}
	u.logger.Info("directions need update", "count", len(directions))

	for _, info := range directions {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.updateDirection(ctx, info, st)
	}

	u.metrics.IncUpdateCycles()
	u.metrics.ObserveUpdateCycleTime(u.now().Sub(started).Seconds())
	return nil
}

func (u *DirectionUpdater) updateDirection(ctx context.Context, info entity.FlightDirectionInfo, st entity.Settings) {
	attemptAt := u.now()
	tickets, err := u.source.GetTickets(ctx, info.FlightDirection, cheapestTicketsForNewDirection)
	if err != nil {
		u.logger.Warn("skipping direction after source failure", "directionID", info.ID, "error", err)
		u.metrics.IncSourceErrors()
		u.recordAttempt(ctx, info.ID, attemptAt)
		return
	}

	lastPrice := info.Price
	newPrice := entity.CheapestPrice(tickets)
	err = u.uow.Do(ctx, func(r repository.Repositories) error {
		if err := r.Tickets.RemoveForDirection(ctx, info.ID); err != nil {
			return err
		}
		if err := r.Tickets.Add(ctx, tickets, info.ID); err != nil {
			return err
		}
		return r.Directions.UpdatePrice(ctx, info.ID, newPrice, attemptAt)
	})
	if err != nil {
		u.logger.Error("failed to persist refreshed direction", "directionID", info.ID, "error", err)
		return
	}
	u.metrics.IncDirectionsRefreshed()

	if !needsNotification(lastPrice, tickets, st.PriceReductionThresholdPct) {
		return
	}
	u.notifyUsers(ctx, info, tickets)
}

// recordAttempt stamps last_update_try after a failed refresh so the
// direction rotates to the back of the stale queue instead of pinning
// its slot every cycle.
func (u *DirectionUpdater) recordAttempt(ctx context.Context, directionID int64, attemptAt time.Time) {
	err := u.uow.Do(ctx, func(r repository.Repositories) error {
		return r.Directions.UpdateLastUpdateTry(ctx, directionID, attemptAt)
	})
	if err != nil {
		u.logger.Error("failed to record update attempt", "directionID", directionID, "error", err)
	}
}

func (u *DirectionUpdater) notifyUsers(ctx context.Context, info entity.FlightDirectionInfo, tickets []entity.Ticket) {
	var userIDs []int64
	err := u.uow.Do(ctx, func(r repository.Repositories) error {
		var err error
		userIDs, err = r.UserDirections.GetUsers(ctx, info.ID)
		return err
	})
	if err != nil {
		u.logger.Error("failed to load subscribers", "directionID", info.ID, "error", err)
		return
	}
	u.logger.Info("notifying subscribers about new price", "directionID", info.ID, "users", len(userIDs))
	for _, userID := range userIDs {
		if err := u.notifier.NotifyUser(ctx, userID, tickets, info.FlightDirection, info.ID); err != nil {
			// one refused delivery must not block the rest
			u.logger.Error("failed to notify user", "userID", userID, "directionID", info.ID, "error", err)
			u.metrics.IncNotificationErrors()
			continue
		}
		u.metrics.IncNotificationsSent()
	}
}

// RemoveOutdated archives and deletes every direction whose departure
// date has passed. Meant to run about once a day.
func (u *DirectionUpdater) RemoveOutdated(ctx context.Context) (int, error) {
	u.logger.Info("removing outdated directions")
	var removed int
	err := u.uow.Do(ctx, func(r repository.Repositories) error {
		var err error
		removed, err = r.Directions.DeleteOutdatedDirections(ctx, u.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("remove outdated directions: %w", err)
	}
	u.logger.Info("removed outdated directions", "count", removed)
	u.metrics.AddOutdatedRemoved(removed)
	return removed, nil
}
