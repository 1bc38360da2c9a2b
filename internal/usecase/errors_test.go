package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextTimestampStrictlyIncreases(t *testing.T) {
	frozen := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c := clock(func() time.Time { return frozen })

	assert.Equal(t, frozen.Add(time.Microsecond), c.nextTimestamp(frozen))
	assert.Equal(t, frozen.Add(time.Hour+time.Microsecond), c.nextTimestamp(frozen.Add(time.Hour)))
	assert.Equal(t, frozen, c.nextTimestamp(frozen.Add(-time.Second)))
}

func TestDayBoundsCoverWholeDay(t *testing.T) {
	from, to := dayBounds(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999000, time.UTC), to)
}
