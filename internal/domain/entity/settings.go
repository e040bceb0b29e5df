package entity

import "time"

// IntervalUnit is the unit of the update loop interval in the runtime
// settings file.
type IntervalUnit string

const (
	IntervalSeconds IntervalUnit = "seconds"
	IntervalMinutes IntervalUnit = "minutes"
)

// Settings are the runtime-tunable knobs of the engine. They come from a
// reloadable settings file, not from process env, so they can change
// without a restart.
type Settings struct {
	UpdateInterval               int
	UpdateIntervalUnit           IntervalUnit
	NeedsUpdateAfterMinutes      int
	MaxDirectionsForSingleUpdate int
	MaxDirectionsPerUser         int
	PriceReductionThresholdPct   int
}

// UpdateIntervalDuration converts the interval value plus unit into a
// time.Duration for the scheduler.
func (s Settings) UpdateIntervalDuration() time.Duration {
	if s.UpdateIntervalUnit == IntervalSeconds {
		return time.Duration(s.UpdateInterval) * time.Second
	}
	return time.Duration(s.UpdateInterval) * time.Minute
}
