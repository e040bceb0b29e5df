package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextSweep(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			"midnight waits one minute",
			time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			time.Minute,
		},
		{
			"just after the slot waits a full day",
			time.Date(2026, 9, 1, 0, 1, 0, 0, time.UTC),
			24 * time.Hour,
		},
		{
			"midday waits until next night",
			time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			12*time.Hour + time.Minute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, untilNextSweep(tt.now))
		})
	}
}
