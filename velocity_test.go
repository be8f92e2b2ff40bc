package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// stillWater is a flow sampler with no ambient current.
type stillWater struct{}

func (stillWater) flowAt(x, y, width float64) (float64, float64) { return 0, 0 }

// constFlow is a flow sampler returning a fixed current.
type constFlow struct{ fx, fy float64 }

func (f constFlow) flowAt(x, y, width float64) (float64, float64) { return f.fx, f.fy }

var testPolicy = filterPolicy{teleportThreshold: 500, maxSpeed: 100}

func TestFilterPassThrough(t *testing.T) {
	t.Parallel()
	for _, v := range []r3.Vec{
		{},
		{X: 1, Y: 2, Z: 3},
		{Z: 10},
		{X: -15, Y: 20}, // 25 m/s = 90 km/h, just under the clamp
	} {
		assert.Equal(t, v, testPolicy.filter(v))
	}
}

func TestFilterClampPreservesDirection(t *testing.T) {
	t.Parallel()
	for _, v := range []r3.Vec{
		{X: 40},             // 144 km/h
		{X: 30, Y: 40},      // 180 km/h
		{X: 60, Y: 80, Z: 60}, // well above the clamp, below teleport
	} {
		filtered := testPolicy.filter(v)
		require.Greater(t, r3.Norm(v)*metersPerSecondToKMH, testPolicy.maxSpeed)
		assert.InDelta(t, testPolicy.maxSpeed/metersPerSecondToKMH, r3.Norm(filtered), 1e-9)
		scale := (testPolicy.maxSpeed / metersPerSecondToKMH) / r3.Norm(v)
		assert.InDelta(t, v.X*scale, filtered.X, 1e-9)
		assert.InDelta(t, v.Y*scale, filtered.Y, 1e-9)
		assert.InDelta(t, v.Z*scale, filtered.Z, 1e-9)
	}
}

func TestFilterTeleportDiscardsSample(t *testing.T) {
	t.Parallel()
	for _, v := range []r3.Vec{
		{X: 200},
		{X: -150, Y: 90, Z: 30},
		{Z: 1000},
	} {
		require.Greater(t, r3.Norm(v)*metersPerSecondToKMH, testPolicy.teleportThreshold)
		assert.Equal(t, r3.Vec{}, testPolicy.filter(v))
	}
}

func TestFilterIdempotent(t *testing.T) {
	t.Parallel()
	for _, v := range []r3.Vec{
		{X: 1, Y: 2, Z: 3}, // pass-through
		{X: 40, Z: 10},     // clamped
		{X: 500},           // teleport
		{},
	} {
		once := testPolicy.filter(v)
		twice := testPolicy.filter(once)
		assert.InDelta(t, once.X, twice.X, 1e-9)
		assert.InDelta(t, once.Y, twice.Y, 1e-9)
		assert.InDelta(t, once.Z, twice.Z, 1e-9)
	}
}

func TestEstimateDegenerateTimestep(t *testing.T) {
	t.Parallel()
	var e velocityEstimator
	e.estimate(r3.Vec{}, stillWater{}, boatFootprintWidth)

	// A zero elapsed interval must yield a zero vector, not an infinity.
	vel := e.estimate(r3.Vec{X: 100}, stillWater{}, boatFootprintWidth)
	assert.Equal(t, r3.Vec{}, vel)
}

func TestEstimateFirstSampleIsZero(t *testing.T) {
	t.Parallel()
	var e velocityEstimator
	e.accumulate(0.1)
	vel := e.estimate(r3.Vec{X: 50, Y: 50}, stillWater{}, boatFootprintWidth)
	assert.Equal(t, r3.Vec{}, vel)
}

func TestEstimateSubtractsFlowHorizontally(t *testing.T) {
	t.Parallel()
	var e velocityEstimator
	e.estimate(r3.Vec{}, stillWater{}, boatFootprintWidth)

	e.accumulate(1.0)
	vel := e.estimate(r3.Vec{X: 3, Y: 4, Z: 5}, constFlow{fx: 1, fy: 1}, boatFootprintWidth)
	assert.InDelta(t, 2.0, vel.X, 1e-9)
	assert.InDelta(t, 3.0, vel.Y, 1e-9)
	// The vertical component never sees the flow subtraction.
	assert.InDelta(t, 5.0, vel.Z, 1e-9)
}

func TestEstimateFoldsSkippedTime(t *testing.T) {
	t.Parallel()
	var e velocityEstimator
	e.accumulate(0.1)
	e.estimate(r3.Vec{}, stillWater{}, boatFootprintWidth)

	// Four skipped frames accumulate time without touching the history, so
	// the next completed estimate averages over the whole half second.
	for i := 0; i < 5; i++ {
		e.accumulate(0.1)
	}
	vel := e.estimate(r3.Vec{X: 1}, stillWater{}, boatFootprintWidth)
	assert.InDelta(t, 2.0, vel.X, 1e-9)
	assert.InDelta(t, 0.0, vel.Y, 1e-9)
}
