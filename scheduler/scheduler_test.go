package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextDay(t *testing.T) {
	// Mid-afternoon: wake up at 00:01 the next day.
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, 9*time.Hour+31*time.Minute, untilNextDay(now))

	// Just before midnight: still lands past the boundary, never the same day.
	now = time.Date(2025, 6, 15, 23, 59, 30, 0, time.UTC)
	assert.Equal(t, 90*time.Second, untilNextDay(now))

	// Just after midnight: a restart waits a full day instead of re-running.
	now = time.Date(2025, 6, 16, 0, 2, 0, 0, time.UTC)
	assert.Equal(t, 23*time.Hour+59*time.Minute, untilNextDay(now))
}
