package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/platoon-merge-go/clock"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

func TestClock(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 10, Total: 20, Interval: 0.05})
	assert.Equal(t, int32(10), c.InternalStep)
	assert.Equal(t, int32(10), c.START_STEP)
	assert.Equal(t, int32(30), c.END_STEP)
	assert.Equal(t, 0.05, c.DT)
	assert.InDelta(t, 0.5, c.T, 1e-9)
	assert.False(t, c.Done())

	c.InternalStep = 30
	assert.True(t, c.Done())

	c.Init()
	assert.Equal(t, int32(10), c.InternalStep)
	assert.False(t, c.Done())
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 0, Total: 100, Interval: 1})
	c.InternalStep = 3725
	c.T = float64(c.InternalStep) * c.DT
	assert.Equal(t, "01:02:05", c.String())
}
