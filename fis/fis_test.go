package fis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/platoon-merge-go/fis"
)

func TestFirstOutput(t *testing.T) {
	out, err := fis.FirstOutput(fis.EvalFunc(func(in []float64) ([]float64, error) {
		return []float64{0.7, 0.1}, nil
	}), []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.7, out)
}

func TestFirstOutputErrors(t *testing.T) {
	// evaluator failure passes through
	_, err := fis.FirstOutput(fis.EvalFunc(func(in []float64) ([]float64, error) {
		return nil, errors.New("boom")
	}), nil)
	assert.Error(t, err)

	// an empty output vector violates the contract
	_, err = fis.FirstOutput(fis.EvalFunc(func(in []float64) ([]float64, error) {
		return []float64{}, nil
	}), nil)
	assert.Error(t, err)
}

func TestBaselineSlotScore(t *testing.T) {
	m := fis.Baseline()

	in := make([]float64, fis.SlotScoreInputLen)
	in[12] = 100 // own longitudinal position
	in[14] = 120 // lead bound
	in[16] = 80  // rear bound
	out, err := m.SlotScore.Eval(in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Greater(t, out[0], 0.0)
	assert.LessOrEqual(t, out[0], 1.0)

	// a non-positive gap scores zero
	in[14], in[16] = 80, 120
	out, err = m.SlotScore.Eval(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0])

	// wrong input length is rejected
	_, err = m.SlotScore.Eval([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestBaselineSlotScorePrefersWiderGap(t *testing.T) {
	m := fis.Baseline()

	narrow := make([]float64, fis.SlotScoreInputLen)
	narrow[12], narrow[14], narrow[16] = 100, 105, 95
	wide := make([]float64, fis.SlotScoreInputLen)
	wide[12], wide[14], wide[16] = 100, 130, 70

	narrowOut, err := m.SlotScore.Eval(narrow)
	require.NoError(t, err)
	wideOut, err := m.SlotScore.Eval(wide)
	require.NoError(t, err)
	assert.Greater(t, wideOut[0], narrowOut[0])
}

func TestBaselineSpeed(t *testing.T) {
	m := fis.Baseline()

	// no vehicle ahead (sentinel distance): accelerate towards cruise speed
	in := make([]float64, fis.SpeedInputLen)
	in[2] = 150 // ahead distance sentinel
	in[8] = 50  // ahead speed sentinel
	in[20] = 5  // own speed below cruise
	out, err := m.LeaderSpeed.Eval(in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Greater(t, out[0], 0.95/3.55)

	// slow vehicle close ahead: decelerate
	in[2] = 10
	in[8] = 2
	in[20] = 15
	out, err = m.MergerSpeed.Eval(in)
	require.NoError(t, err)
	assert.Less(t, out[0], 0.95/3.55)

	// output stays within the unit interval
	assert.GreaterOrEqual(t, out[0], 0.0)
	assert.LessOrEqual(t, out[0], 1.0)

	_, err = m.LeaderSpeed.Eval([]float64{1})
	assert.Error(t, err)
}
