// Package scheduler drives the engine's periodic work: the update loop
// on the configured interval, a settings reload every few seconds, and
// the outdated-direction sweep shortly after midnight. When a reload
// changes the update interval the loop reschedules itself in place.
package scheduler

import (
	"context"
	"time"

	"airtrack-service/internal/infrastructure/settings"
	"airtrack-service/internal/usecase"
	"airtrack-service/pkg/logger"
)

const settingsReloadInterval = 5 * time.Second

// sweepAt is the local wall-clock time of the daily sweep.
var sweepAt = struct{ hour, minute int }{0, 1}

// Scheduler owns the timers. Run blocks until the context is canceled;
// work in flight finishes its current direction before the loop stops.
type Scheduler struct {
	storage *settings.Storage
	updater *usecase.DirectionUpdater
	logger  logger.Logger
}

// NewScheduler creates a scheduler around the updater.
func NewScheduler(storage *settings.Storage, updater *usecase.DirectionUpdater, log logger.Logger) *Scheduler {
	return &Scheduler{storage: storage, updater: updater, logger: log}
}

// Run executes the scheduling loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.storage.Current().UpdateIntervalDuration()
	s.logger.Info("scheduler started", "updateInterval", interval)

	updateTicker := time.NewTicker(interval)
	defer updateTicker.Stop()
	reloadTicker := time.NewTicker(settingsReloadInterval)
	defer reloadTicker.Stop()
	sweepTimer := time.NewTimer(untilNextSweep(time.Now()))
	defer sweepTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return

		case <-updateTicker.C:
			if err := s.updater.Update(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("update cycle failed", "error", err)
			}

		case <-reloadTicker.C:
			s.storage.Reload()

		case <-s.storage.Changed():
			next := s.storage.Current().UpdateIntervalDuration()
			if next != interval {
				interval = next
				updateTicker.Reset(interval)
				s.logger.Info("rescheduled update loop", "updateInterval", interval)
			}

		case <-sweepTimer.C:
			if _, err := s.updater.RemoveOutdated(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("outdated sweep failed", "error", err)
			}
			sweepTimer.Reset(untilNextSweep(time.Now()))
		}
	}
}

// untilNextSweep returns the duration to the next daily sweep slot in
// local time.
func untilNextSweep(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), sweepAt.hour, sweepAt.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
