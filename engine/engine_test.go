package engine_test

import (
	"errors"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/platoon-merge-go/clock"
	"github.com/tsinghua-fib-lab/platoon-merge-go/engine"
	"github.com/tsinghua-fib-lab/platoon-merge-go/fis"
	"github.com/tsinghua-fib-lab/platoon-merge-go/platoon"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
	"github.com/tsinghua-fib-lab/platoon-merge-go/world"
)

// constant-output evaluator
func constModel(out float64) fis.EvalFunc {
	return func(in []float64) ([]float64, error) {
		return []float64{out}, nil
	}
}

// mainline vehicle in the merge control area (backend lateral 4.5 flips to -4.5)
func mainlineVehicle(id int32, x, speed float64) *world.Vehicle {
	return world.NewVehicle(id, geometry.Point{X: x, Y: 4.5}, speed, 1, -3)
}

type fixture struct {
	manager *world.Manager
	merger  *world.Vehicle
	platoon *platoon.Platoon
	rc      *config.RuntimeConfig
}

// merger at x=100 between two platoon members at x=120 and x=80
func newFixture() *fixture {
	f := &fixture{
		manager: world.NewManager(),
		merger:  mainlineVehicle(100, 100, 10),
		rc:      config.NewRuntimeConfig(config.Config{}),
	}
	lead := mainlineVehicle(1, 120, 12)
	rear := mainlineVehicle(2, 80, 8)
	f.manager.Add(f.merger)
	f.manager.Add(lead)
	f.manager.Add(rear)
	f.manager.Prepare()
	f.platoon = platoon.New(lead, rear)
	return f
}

func (f *fixture) engine(models fis.Models) *engine.Engine {
	return engine.New(f.manager, topology.Default(), f.rc, models, clock.New(f.rc.C.Step))
}

func TestSelectMergeSlotEvaluatesAllSlots(t *testing.T) {
	f := newFixture()
	calls := 0
	e := f.engine(fis.Models{
		SlotScore: fis.EvalFunc(func(in []float64) ([]float64, error) {
			calls++
			assert.Len(t, in, fis.SlotScoreInputLen)
			return []float64{0}, nil
		}),
	})

	d, err := e.SelectMergeSlot(f.merger, f.platoon)
	require.NoError(t, err)
	// two members give three candidate slots
	assert.Equal(t, 3, calls)
	assert.GreaterOrEqual(t, d.SlotIndex, 0)
	assert.LessOrEqual(t, d.SlotIndex, 2)
}

func TestSelectMergeSlotPicksHighestScore(t *testing.T) {
	f := newFixture()
	// score by the rear bound position: slot 2 sees the open-end sentinel (500)
	e := f.engine(fis.Models{
		SlotScore: fis.EvalFunc(func(in []float64) ([]float64, error) {
			return []float64{in[16]}, nil
		}),
	})

	d, err := e.SelectMergeSlot(f.merger, f.platoon)
	require.NoError(t, err)
	assert.Equal(t, 2, d.SlotIndex)
	require.NotNil(t, d.Leader)
	assert.Equal(t, int32(2), d.Leader.ID())
	assert.Nil(t, d.Rear)
}

func TestSelectMergeSlotTieTakesLowestIndex(t *testing.T) {
	f := newFixture()
	e := f.engine(fis.Models{SlotScore: constModel(0.5)})

	d, err := e.SelectMergeSlot(f.merger, f.platoon)
	require.NoError(t, err)
	assert.Equal(t, 0, d.SlotIndex)
	assert.Nil(t, d.Leader)
	require.NotNil(t, d.Rear)
	assert.Equal(t, int32(1), d.Rear.ID())
}

func TestSelectMergeSlotEmptyPlatoon(t *testing.T) {
	f := newFixture()
	calls := 0
	e := f.engine(fis.Models{
		SlotScore: fis.EvalFunc(func(in []float64) ([]float64, error) {
			calls++
			return []float64{1}, nil
		}),
	})

	d, err := e.SelectMergeSlot(f.merger, platoon.New())
	require.NoError(t, err)
	// an empty platoon degrades to the single open slot
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.SlotIndex)
	assert.Nil(t, d.Leader)
	assert.Nil(t, d.Rear)
}

func TestSelectMergeSlotModelError(t *testing.T) {
	f := newFixture()
	e := f.engine(fis.Models{
		SlotScore: fis.EvalFunc(func(in []float64) ([]float64, error) {
			return nil, errors.New("rule base not loaded")
		}),
	})

	_, err := e.SelectMergeSlot(f.merger, f.platoon)
	assert.Error(t, err)
}

func TestDesiredSpeed(t *testing.T) {
	f := newFixture()
	dt := f.rc.C.Step.Interval

	// output 0.5 maps to acceleration 3.55*0.5-0.95=0.825
	e := f.engine(fis.Models{MergerSpeed: constModel(0.5)})
	v, err := e.DesiredMergerSpeed(f.merger)
	require.NoError(t, err)
	assert.InDelta(t, 10+0.825*dt, v, 1e-9)

	// output endpoints map to -0.95 and 2.60
	e = f.engine(fis.Models{LeaderSpeed: constModel(0)})
	v, err = e.DesiredLeaderSpeed(f.platoon.Leader())
	require.NoError(t, err)
	assert.InDelta(t, 12-0.95*dt, v, 1e-9)

	e = f.engine(fis.Models{LeaderSpeed: constModel(1)})
	v, err = e.DesiredLeaderSpeed(f.platoon.Leader())
	require.NoError(t, err)
	assert.InDelta(t, 12+2.60*dt, v, 1e-9)
}

func TestDesiredSpeedModelError(t *testing.T) {
	f := newFixture()
	e := f.engine(fis.Models{MergerSpeed: fis.EvalFunc(func(in []float64) ([]float64, error) {
		return nil, errors.New("rule base not loaded")
	})})

	_, err := e.DesiredMergerSpeed(f.merger)
	assert.Error(t, err)
}
