// Package settings reads the runtime-tunable engine settings from a
// yaml file and re-reads it while the process runs, so operators can
// change the polling cadence or notification threshold without a
// restart.
package settings

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/pkg/logger"
)

type fileSettings struct {
	Scheduler struct {
		DirectionsUpdateInterval      int    `yaml:"directions_update_interval"`
		DirectionsUpdateIntervalUnits string `yaml:"directions_update_interval_units"`
	} `yaml:"scheduler"`
	DirectionUpdater struct {
		NeedsUpdateAfter             int `yaml:"needs_update_after"`
		MaxDirectionsForSingleUpdate int `yaml:"max_directions_for_single_update"`
	} `yaml:"direction_updater"`
	Users struct {
		MaxDirectionsPerUser            int `yaml:"max_directions_per_user"`
		PriceReductionThresholdPercents int `yaml:"price_reduction_threshold_percents"`
	} `yaml:"users"`
}

// Storage holds the current settings and a change signal. Reload is
// cheap, so the scheduler calls it every few seconds; consumers read
// through Current on every use.
type Storage struct {
	path    string
	logger  logger.Logger
	mu      sync.RWMutex
	current entity.Settings
	changed chan struct{}
}

// Load reads the settings file and creates the storage. A service
// cannot start without valid settings.
func Load(path string, log logger.Logger) (*Storage, error) {
	current, err := readFile(path)
	if err != nil {
		return nil, err
	}
	log.Info("loaded settings", "path", path, "settings", current)
	return &Storage{
		path:    path,
		logger:  log,
		current: current,
		changed: make(chan struct{}, 1),
	}, nil
}

// Current returns the settings as of the last successful reload.
func (s *Storage) Current() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Changed signals after a reload picked up different values. The
// channel is buffered; an unconsumed signal coalesces with later ones.
func (s *Storage) Changed() <-chan struct{} {
	return s.changed
}

// Reload re-reads the settings file. A read or validation failure keeps
// the previous settings; the engine must not stop over a broken edit.
func (s *Storage) Reload() {
	loaded, err := readFile(s.path)
	if err != nil {
		s.logger.Error("failed to reload settings, keeping previous", "path", s.path, "error", err)
		return
	}
	s.mu.Lock()
	if loaded == s.current {
		s.mu.Unlock()
		return
	}
	s.current = loaded
	s.mu.Unlock()
	s.logger.Info("settings updated", "settings", loaded)
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func readFile(path string) (entity.Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	var fs fileSettings
	if err := yaml.Unmarshal(raw, &fs); err != nil {
		return entity.Settings{}, fmt.Errorf("parse settings file: %w", err)
	}
	return fs.validate()
}

func (fs fileSettings) validate() (entity.Settings, error) {
	var unit entity.IntervalUnit
	switch fs.Scheduler.DirectionsUpdateIntervalUnits {
	case string(entity.IntervalSeconds):
		unit = entity.IntervalSeconds
	case string(entity.IntervalMinutes):
		unit = entity.IntervalMinutes
	default:
		return entity.Settings{}, fmt.Errorf("unknown directions_update_interval_units %q", fs.Scheduler.DirectionsUpdateIntervalUnits)
	}
	st := entity.Settings{
		UpdateInterval:               fs.Scheduler.DirectionsUpdateInterval,
		UpdateIntervalUnit:           unit,
		NeedsUpdateAfterMinutes:      fs.DirectionUpdater.NeedsUpdateAfter,
		MaxDirectionsForSingleUpdate: fs.DirectionUpdater.MaxDirectionsForSingleUpdate,
		MaxDirectionsPerUser:         fs.Users.MaxDirectionsPerUser,
		PriceReductionThresholdPct:   fs.Users.PriceReductionThresholdPercents,
	}
	if st.UpdateInterval <= 0 {
		return entity.Settings{}, fmt.Errorf("directions_update_interval must be positive, got %d", st.UpdateInterval)
	}
	if st.NeedsUpdateAfterMinutes <= 0 {
		return entity.Settings{}, fmt.Errorf("needs_update_after must be positive, got %d", st.NeedsUpdateAfterMinutes)
	}
	if st.MaxDirectionsForSingleUpdate <= 0 {
		return entity.Settings{}, fmt.Errorf("max_directions_for_single_update must be positive, got %d", st.MaxDirectionsForSingleUpdate)
	}
	if st.MaxDirectionsPerUser <= 0 {
		return entity.Settings{}, fmt.Errorf("max_directions_per_user must be positive, got %d", st.MaxDirectionsPerUser)
	}
	if st.PriceReductionThresholdPct < 0 || st.PriceReductionThresholdPct > 100 {
		return entity.Settings{}, fmt.Errorf("price_reduction_threshold_percents out of range: %d", st.PriceReductionThresholdPct)
	}
	return st, nil
}
