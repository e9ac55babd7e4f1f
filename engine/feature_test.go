package engine_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/platoon-merge-go/engine"
	"github.com/tsinghua-fib-lab/platoon-merge-go/entity"
	"github.com/tsinghua-fib-lab/platoon-merge-go/topology"
	"github.com/tsinghua-fib-lab/platoon-merge-go/utils/config"
)

func newExtractor() *engine.Extractor {
	return engine.NewExtractor(topology.Default(), config.NewRuntimeConfig(config.Config{}))
}

// kinematics record in module coordinates
func record(lane string, x, y, speed float64) *entity.VehicleKinematics {
	return &entity.VehicleKinematics{
		Speed:    speed,
		Position: geometry.Point{X: x, Y: y},
		LaneID:   lane,
	}
}

func TestExtractAllSentinels(t *testing.T) {
	e := newExtractor()
	own := record("gneE4_1", 100, -4.5, 10)

	fv := e.Extract(own, entity.ContextSnapshot{})
	for i := 0; i < engine.NUM_SLOTS; i++ {
		assert.Equal(t, 150.0, fv[i], "distance slot %d", i)
		assert.Equal(t, 50.0, fv[engine.NUM_SLOTS+i], "speed slot %d", i)
		assert.Equal(t, 0.0, fv[2*engine.NUM_SLOTS+i], "signal slot %d", i)
	}
	assert.Equal(t, 100.0, fv[18])
	assert.Equal(t, -4.5, fv[19])
	assert.Equal(t, 10.0, fv[20])
}

func TestExtractMergeApproach(t *testing.T) {
	e := newExtractor()
	own := record("gneE1_0", 50, -10, 10)

	ahead := record("gneE1_0", 70, -10, 8)
	ahead.Signal = entity.SIGNAL_LEFT
	snapshot := entity.ContextSnapshot{
		2: ahead,
		3: record("gneE1_0", 30, -10, 6),
		// mainline vehicles are invisible from the merge approach
		4: record("gneE4_1", 55, -4.5, 12),
	}

	fv := e.Extract(own, snapshot)
	assert.Equal(t, 20.0, fv[engine.SAME_AHEAD])
	assert.Equal(t, 8.0, fv[engine.NUM_SLOTS+engine.SAME_AHEAD])
	assert.Equal(t, float64(entity.SIGNAL_LEFT), fv[2*engine.NUM_SLOTS+engine.SAME_AHEAD])
	// behind distances are reported as magnitudes
	assert.Equal(t, 20.0, fv[engine.SAME_BEHIND])
	assert.Equal(t, 6.0, fv[engine.NUM_SLOTS+engine.SAME_BEHIND])
	// the single-lane approach has no side lanes, untouched side slots become -1
	for _, i := range []int{engine.LEFT_AHEAD, engine.LEFT_BEHIND, engine.RIGHT_AHEAD, engine.RIGHT_BEHIND} {
		assert.Equal(t, -1.0, fv[i], "distance slot %d", i)
		assert.Equal(t, -1.0, fv[engine.NUM_SLOTS+i], "speed slot %d", i)
	}
}

func TestExtractMainline(t *testing.T) {
	e := newExtractor()
	own := record("gneE4_1", 100, -4.5, 10)

	snapshot := entity.ContextSnapshot{
		11: record("gneE4_2", 130, -1.5, 11), // left ahead
		12: record("gneE4_2", 90, -1.5, 12),  // left behind
		13: record("gneE4_1", 110, -4.5, 13), // same ahead
		14: record("gneE4_1", 60, -4.5, 14),  // same behind
		15: record("gneE4_0", 105, -7.5, 15), // right ahead
		16: record("unknown_0", 200, -20, 9), // off every lane center
	}

	fv := e.Extract(own, snapshot)
	assert.Equal(t, 30.0, fv[engine.LEFT_AHEAD])
	assert.Equal(t, 10.0, fv[engine.LEFT_BEHIND])
	assert.Equal(t, 10.0, fv[engine.SAME_AHEAD])
	assert.Equal(t, 40.0, fv[engine.SAME_BEHIND])
	assert.Equal(t, 5.0, fv[engine.RIGHT_AHEAD])
	assert.Equal(t, 150.0, fv[engine.RIGHT_BEHIND])

	assert.Equal(t, 11.0, fv[engine.NUM_SLOTS+engine.LEFT_AHEAD])
	assert.Equal(t, 13.0, fv[engine.NUM_SLOTS+engine.SAME_AHEAD])
	assert.Equal(t, 15.0, fv[engine.NUM_SLOTS+engine.RIGHT_AHEAD])
	assert.Equal(t, 50.0, fv[engine.NUM_SLOTS+engine.RIGHT_BEHIND])

	// extraction has no hidden state, repeated calls agree
	assert.Equal(t, fv, e.Extract(own, snapshot))
}

func TestExtractMissingSideLanes(t *testing.T) {
	e := newExtractor()

	// rightmost mainline lane: right slots carry the no-lane marker
	fv := e.Extract(record("gneE4_0", 100, -7.5, 10), entity.ContextSnapshot{})
	assert.Equal(t, -1.0, fv[engine.RIGHT_AHEAD])
	assert.Equal(t, -1.0, fv[engine.RIGHT_BEHIND])
	assert.Equal(t, 150.0, fv[engine.LEFT_AHEAD])
	assert.Equal(t, 150.0, fv[engine.SAME_AHEAD])

	// leftmost mainline lane: left slots carry the no-lane marker
	fv = e.Extract(record("gneE4_2", 100, -1.5, 10), entity.ContextSnapshot{})
	assert.Equal(t, -1.0, fv[engine.LEFT_AHEAD])
	assert.Equal(t, -1.0, fv[engine.LEFT_BEHIND])
	assert.Equal(t, 150.0, fv[engine.RIGHT_AHEAD])
}

func TestExtractTieBreak(t *testing.T) {
	e := newExtractor()
	own := record("gneE1_0", 50, -10, 10)

	// two candidates at the same offset: the smaller ID wins
	snapshot := entity.ContextSnapshot{
		9: record("gneE1_0", 30, -10, 9),
		7: record("gneE1_0", 30, -10, 7),
	}
	fv := e.Extract(own, snapshot)
	assert.Equal(t, 20.0, fv[engine.SAME_BEHIND])
	assert.Equal(t, 7.0, fv[engine.NUM_SLOTS+engine.SAME_BEHIND])
}

func TestExtractSideBySideExcluded(t *testing.T) {
	e := newExtractor()
	own := record("gneE1_0", 50, -10, 10)

	// a candidate exactly abreast counts as neither ahead nor behind
	snapshot := entity.ContextSnapshot{
		2: record("gneE1_0", 50, -10, 8),
	}
	fv := e.Extract(own, snapshot)
	assert.Equal(t, 150.0, fv[engine.SAME_AHEAD])
	assert.Equal(t, 150.0, fv[engine.SAME_BEHIND])
}

func TestExtractOutOfBandClamp(t *testing.T) {
	e := newExtractor()
	// lateral -3 sits exactly between two lane bands, clamps to the nearest center
	own := record("gneE4_1", 100, -3, 10)

	snapshot := entity.ContextSnapshot{
		2: record("gneE4_1", 120, -4.5, 8),
	}
	fv := e.Extract(own, snapshot)
	// the clamped center -4.5 is below the raw lateral, so it reads as the right lane
	assert.Equal(t, 20.0, fv[engine.RIGHT_AHEAD])
	assert.Equal(t, 8.0, fv[engine.NUM_SLOTS+engine.RIGHT_AHEAD])
}
