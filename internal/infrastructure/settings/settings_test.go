package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/pkg/logger"
)

const validYAML = `scheduler:
  directions_update_interval: 30
  directions_update_interval_units: "minutes"
direction_updater:
  needs_update_after: 60
  max_directions_for_single_update: 30
users:
  max_directions_per_user: 10
  price_reduction_threshold_percents: 10
`

func writeSettings(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeSettings(t, path, validYAML)

	storage, err := Load(path, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, entity.Settings{
		UpdateInterval:               30,
		UpdateIntervalUnit:           entity.IntervalMinutes,
		NeedsUpdateAfterMinutes:      60,
		MaxDirectionsForSingleUpdate: 30,
		MaxDirectionsPerUser:         10,
		PriceReductionThresholdPct:   10,
	}, storage.Current())
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), logger.NewNop())
	require.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown interval unit", content: `scheduler:
  directions_update_interval: 30
  directions_update_interval_units: "hours"
direction_updater:
  needs_update_after: 60
  max_directions_for_single_update: 30
users:
  max_directions_per_user: 10
  price_reduction_threshold_percents: 10
`},
		{name: "zero interval", content: `scheduler:
  directions_update_interval: 0
  directions_update_interval_units: "minutes"
direction_updater:
  needs_update_after: 60
  max_directions_for_single_update: 30
users:
  max_directions_per_user: 10
  price_reduction_threshold_percents: 10
`},
		{name: "threshold out of range", content: `scheduler:
  directions_update_interval: 30
  directions_update_interval_units: "minutes"
direction_updater:
  needs_update_after: 60
  max_directions_for_single_update: 30
users:
  max_directions_per_user: 10
  price_reduction_threshold_percents: 150
`},
		{name: "not yaml", content: `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			writeSettings(t, path, tt.content)
			_, err := Load(path, logger.NewNop())
			require.Error(t, err)
		})
	}
}

func TestReload_SignalsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeSettings(t, path, validYAML)
	storage, err := Load(path, logger.NewNop())
	require.NoError(t, err)

	// same content, no signal
	storage.Reload()
	select {
	case <-storage.Changed():
		t.Fatal("unexpected change signal for identical settings")
	default:
	}

	writeSettings(t, path, `scheduler:
  directions_update_interval: 45
  directions_update_interval_units: "seconds"
direction_updater:
  needs_update_after: 60
  max_directions_for_single_update: 30
users:
  max_directions_per_user: 10
  price_reduction_threshold_percents: 10
`)
	storage.Reload()
	select {
	case <-storage.Changed():
	default:
		t.Fatal("expected change signal after settings edit")
	}
	current := storage.Current()
	assert.Equal(t, 45, current.UpdateInterval)
	assert.Equal(t, entity.IntervalSeconds, current.UpdateIntervalUnit)
}

func TestReload_KeepsPreviousOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeSettings(t, path, validYAML)
	storage, err := Load(path, logger.NewNop())
	require.NoError(t, err)
	before := storage.Current()

	writeSettings(t, path, `scheduler: [broken`)
	storage.Reload()

	assert.Equal(t, before, storage.Current())
	select {
	case <-storage.Changed():
		t.Fatal("unexpected change signal after failed reload")
	default:
	}
}
