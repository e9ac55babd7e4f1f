package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{})

	assert.Equal(t, 150.0, rc.C.SensorRange)
	assert.Equal(t, 0.05, rc.C.Step.Interval)
	assert.Equal(t, int32(1), rc.C.Step.Total)

	assert.Equal(t, 150.0, rc.S.MaxDistance)
	assert.Equal(t, 50.0, rc.S.MaxSpeed)
	assert.Equal(t, [2]float64{500, 500}, rc.S.OpenEndPosition)
	assert.Equal(t, 50.0, rc.S.OpenEndSpeed)

	assert.Equal(t, []float64{-7.5, -4.5, -1.5}, rc.Net.LaneCenters)
	assert.Equal(t, 1.5, rc.Net.LaneBand)
	assert.Equal(t, 0.1, rc.Net.LaneMatch)
	assert.Equal(t, "gneE1_0", rc.Net.MergeLane)
	assert.Equal(t, -4.5, rc.Net.PlatoonLaneCenter)
	assert.NotEmpty(t, rc.Net.Segments)
	assert.NotEmpty(t, rc.Net.Lanes)
}

func TestRuntimeConfigExplicit(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{
		Control: config.Control{
			Step:        config.ControlStep{Start: 10, Total: 200, Interval: 0.1},
			SensorRange: 80,
		},
		Sentinel: config.Sentinel{MaxDistance: 100, MaxSpeed: 30},
		Network: config.Network{
			LaneCenters: []float64{-1.5},
			LaneBand:    1,
		},
	})

	// explicit values are kept as given
	assert.Equal(t, 80.0, rc.C.SensorRange)
	assert.Equal(t, 0.1, rc.C.Step.Interval)
	assert.Equal(t, int32(200), rc.C.Step.Total)
	assert.Equal(t, 100.0, rc.S.MaxDistance)
	assert.Equal(t, []float64{-1.5}, rc.Net.LaneCenters)
}

func TestInputPathCachePath(t *testing.T) {
	p := config.InputPath{DB: "merge", Col: "scenario"}
	assert.Equal(t, "merge.scenario.yml", p.GetCachePath())

	p.Cache = "custom.yml"
	assert.Equal(t, "custom.yml", p.GetCachePath())
}
