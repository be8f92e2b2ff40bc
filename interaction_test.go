package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// fakeSim scripts the cascade answers one test at a time.
type fakeSim struct {
	covering int
	present  int
	active   int
	timestep float64
	grav     float64
	waves    bool
}

func (f *fakeSim) coveringTier(x, y float64) int  { return f.covering }
func (f *fakeSim) simCounts(index int) (int, int) { return f.present, f.active }
func (f *fakeSim) solverTimestep() float64        { return f.timestep }
func (f *fakeSim) gravity() float64               { return f.grav }
func (f *fakeSim) dynamicWavesEnabled() bool      { return f.waves }

type fakeBody struct {
	pos    r3.Vec
	width  float64
	wetted bool
}

func (f *fakeBody) position() r3.Vec        { return f.pos }
func (f *fakeBody) footprintWidth() float64 { return f.width }
func (f *fakeBody) inWater() bool           { return f.wetted }

// recordingSink captures every published parameter write.
type recordingSink struct {
	vecs   map[string]r3.Vec
	floats map[string]float64
	writes int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{vecs: map[string]r3.Vec{}, floats: map[string]float64{}}
}

func (s *recordingSink) setVec3(name string, v r3.Vec) {
	s.vecs[name] = v
	s.writes++
}

func (s *recordingSink) setFloat(name string, v float64) {
	s.floats[name] = v
	s.writes++
}

func defaultFakeSim() *fakeSim {
	return &fakeSim{covering: 0, present: 2, active: 2, timestep: fixedDeltaTime, grav: referenceGravity, waves: true}
}

func newTestInteraction(t *testing.T, sim *fakeSim, body *fakeBody) (*waterInteraction, *recordingSink) {
	t.Helper()
	sink := newRecordingSink()
	c, err := newWaterInteraction(sim, stillWater{}, body, sink, testPolicy)
	require.NoError(t, err)
	return c, sink
}

func TestInteractionPublishesVerticalBob(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: true}
	c, sink := newTestInteraction(t, sim, body)

	// Seed the position history with a full frame at the origin.
	_, ok := c.update(0.1)
	require.True(t, ok)

	// One meter upward over 0.1 s is 10 m/s, well under every threshold.
	body.pos = r3.Vec{Z: 1}
	params, ok := c.update(0.1)
	require.True(t, ok)
	assert.InDelta(t, 0.0, params.velocity.X, 1e-9)
	assert.InDelta(t, 0.0, params.velocity.Y, 1e-9)
	assert.InDelta(t, 10.0, params.velocity.Z, 1e-9)
	assert.Equal(t, params.velocity, sink.vecs[paramVelocity])
	assert.Equal(t, fixedDeltaTime, sink.floats[paramSimDeltaTime])
	assert.InDelta(t, 0.5, sink.floats[paramWeight], 1e-9)
}

func TestInteractionDiscardsTeleport(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: true}
	c, sink := newTestInteraction(t, sim, body)

	_, ok := c.update(0.1)
	require.True(t, ok)

	// 200 m in 0.1 s is 7200 km/h: the whole sample is discarded, direction
	// included, rather than clamped.
	body.pos = r3.Vec{X: 200}
	params, ok := c.update(0.1)
	require.True(t, ok)
	assert.Equal(t, r3.Vec{}, params.velocity)
	assert.Equal(t, r3.Vec{}, sink.vecs[paramVelocity])
}

func TestInteractionSkipsOutsideCascade(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	sim.covering = -1
	body := &fakeBody{width: boatFootprintWidth, wetted: true}
	c, sink := newTestInteraction(t, sim, body)

	_, ok := c.update(0.1)
	assert.False(t, ok)
	assert.Zero(t, sink.writes)
	assert.False(t, c.disabled())
}

func TestInteractionSkipPreservesHistory(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: true}
	c, _ := newTestInteraction(t, sim, body)

	_, ok := c.update(0.1)
	require.True(t, ok)

	// A frame with no active sims publishes nothing and leaves the previous
	// position alone.
	sim.active = 0
	body.pos = r3.Vec{X: 1}
	_, ok = c.update(0.1)
	require.False(t, ok)

	// The next completed frame measures from the pre-skip position over the
	// combined interval, so the spanned 2 m over 0.2 s reads as 10 m/s.
	sim.active = 2
	body.pos = r3.Vec{X: 2}
	params, ok := c.update(0.1)
	require.True(t, ok)
	assert.InDelta(t, 10.0, params.velocity.X, 1e-9)
}

func TestInteractionDisablesWhenNoSimsPresent(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: true}
	c, sink := newTestInteraction(t, sim, body)

	sim.present = 0
	sim.active = 0
	_, ok := c.update(0.1)
	assert.False(t, ok)
	assert.True(t, c.disabled())
	assert.Zero(t, sink.writes)

	// Disabled is permanent: sims coming back never revive the component.
	sim.present = 2
	sim.active = 2
	_, ok = c.update(0.1)
	assert.False(t, ok)
	assert.True(t, c.disabled())
	assert.Zero(t, sink.writes)
}

func TestInteractionValidationFailures(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: true}

	t.Run("nil collaborators", func(t *testing.T) {
		for name, build := range map[string]func(*recordingSink) (*waterInteraction, error){
			"sim": func(s *recordingSink) (*waterInteraction, error) {
				return newWaterInteraction(nil, stillWater{}, body, s, testPolicy)
			},
			"body": func(s *recordingSink) (*waterInteraction, error) {
				return newWaterInteraction(sim, stillWater{}, nil, s, testPolicy)
			},
			"flow": func(s *recordingSink) (*waterInteraction, error) {
				return newWaterInteraction(sim, nil, body, s, testPolicy)
			},
			"sink": func(s *recordingSink) (*waterInteraction, error) {
				return newWaterInteraction(sim, stillWater{}, body, nil, testPolicy)
			},
		} {
			sink := newRecordingSink()
			c, err := build(sink)
			assert.Error(t, err, name)
			assert.True(t, c.disabled(), name)
			_, ok := c.update(0.1)
			assert.False(t, ok, name)
		}
	})

	t.Run("dynamic waves disabled", func(t *testing.T) {
		off := defaultFakeSim()
		off.waves = false
		sink := newRecordingSink()
		c, err := newWaterInteraction(off, stillWater{}, body, sink, testPolicy)
		assert.Error(t, err)
		assert.True(t, c.disabled())
		_, ok := c.update(0.1)
		assert.False(t, ok)
		assert.Zero(t, sink.writes)
	})
}

func TestInteractionOverwritesPriorPublication(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: true}
	c, sink := newTestInteraction(t, sim, body)

	_, ok := c.update(0.1)
	require.True(t, ok)
	body.pos = r3.Vec{X: 1}
	_, ok = c.update(0.1)
	require.True(t, ok)
	first := sink.vecs[paramVelocity]
	assert.InDelta(t, 10.0, first.X, 1e-9)

	body.pos = r3.Vec{X: 1, Y: 2}
	_, ok = c.update(0.1)
	require.True(t, ok)
	second := sink.vecs[paramVelocity]
	assert.InDelta(t, 0.0, second.X, 1e-9)
	assert.InDelta(t, 20.0, second.Y, 1e-9)
}

func TestInteractionWeightReflectsBodyState(t *testing.T) {
	t.Parallel()
	sim := defaultFakeSim()
	body := &fakeBody{width: boatFootprintWidth, wetted: false}
	c, sink := newTestInteraction(t, sim, body)

	_, ok := c.update(0.1)
	require.True(t, ok)
	assert.Zero(t, sink.floats[paramWeight])

	body.wetted = true
	_, ok = c.update(0.1)
	require.True(t, ok)
	assert.InDelta(t, 0.5, sink.floats[paramWeight], 1e-9)
}
