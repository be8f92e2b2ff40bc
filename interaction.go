package main

import (
	"errors"
	"log"

	"gonum.org/v1/gonum/spatial/r3"
)

// simulationContext exposes the cascade queries the interaction component
// makes each frame. Injected at construction; never reached through globals.
type simulationContext interface {
	coveringTier(x, y float64) int
	simCounts(index int) (present, active int)
	solverTimestep() float64
	gravity() float64
	dynamicWavesEnabled() bool
}

// flowSampler provides the ambient horizontal current at a position, sampled
// over a footprint width.
type flowSampler interface {
	flowAt(x, y, width float64) (float64, float64)
}

// floatingBody is the object whose wake disturbs the cascade.
type floatingBody interface {
	position() r3.Vec
	footprintWidth() float64
	inWater() bool
}

type componentState int

const (
	stateUninitialized componentState = iota
	stateActive
	stateDisabled
)

// waterInteraction computes, once per frame, the velocity disturbance a
// moving floating object contributes to the wave cascade, and the tier blend
// weight bounding the injected energy. The whole pipeline runs synchronously
// inside update; shared cascade state is only ever read.
type waterInteraction struct {
	sim       simulationContext
	flow      flowSampler
	body      floatingBody
	sink      renderParamSink
	policy    filterPolicy
	estimator velocityEstimator
	state     componentState
}

// newWaterInteraction validates the collaborator wiring once. Validation
// failure is permanent: the component comes back Disabled alongside the
// configuration diagnostic, and update becomes a no-op.
func newWaterInteraction(sim simulationContext, flow flowSampler, body floatingBody, sink renderParamSink, policy filterPolicy) (*waterInteraction, error) {
	c := &waterInteraction{
		sim:    sim,
		flow:   flow,
		body:   body,
		sink:   sink,
		policy: policy,
		state:  stateUninitialized,
	}
	if err := validateSetup(sim, flow, body, sink); err != nil {
		c.state = stateDisabled
		log.Printf("water interaction disabled: %v", err)
		return c, err
	}
	c.state = stateActive
	return c, nil
}

// update runs the per-frame pipeline: tier selection, sim counting, velocity
// estimation, filtering, weight normalization, and parameter publication. It
// reports whether parameters were published; skipped frames publish nothing
// and leave the position history untouched.
func (c *waterInteraction) update(dt float64) (interactionParams, bool) {
	if c.state != stateActive {
		return interactionParams{}, false
	}
	c.estimator.accumulate(dt)
	pos := c.body.position()
	index := c.sim.coveringTier(pos.X, pos.Y)
	if index < 0 {
		return interactionParams{}, false
	}
	present, active := c.sim.simCounts(index)
	if present == 0 {
		// No sim can ever cover this object again; stop paying for the
		// count query every frame.
		c.state = stateDisabled
		log.Printf("water interaction disabled: no wave sims present at tier %d or above", index)
		return interactionParams{}, false
	}
	if active == 0 {
		return interactionParams{}, false
	}
	vel := c.estimator.estimate(pos, c.flow, c.body.footprintWidth())
	vel = c.policy.filter(vel)
	params := interactionParams{
		velocity:     vel,
		simDeltaTime: c.sim.solverTimestep(),
		weight:       injectionWeight(c.body.inWater(), active, c.sim.gravity()),
	}
	c.sink.setVec3(paramVelocity, params.velocity)
	c.sink.setFloat(paramSimDeltaTime, params.simDeltaTime)
	c.sink.setFloat(paramWeight, params.weight)
	return params, true
}

// disabled reports whether the component reached its permanent Disabled state.
func (c *waterInteraction) disabled() bool { return c.state == stateDisabled }

// validateSetup checks the structural preconditions once at startup: every
// collaborator present and the dynamic wave feature enabled.
func validateSetup(sim simulationContext, flow flowSampler, body floatingBody, sink renderParamSink) error {
	if sim == nil {
		return errors.New("no simulation context")
	}
	if body == nil {
		return errors.New("no floating body")
	}
	if flow == nil {
		return errors.New("no flow sampler")
	}
	if sink == nil {
		return errors.New("no render parameter sink")
	}
	if !sim.dynamicWavesEnabled() {
		return errors.New("dynamic waves are disabled on the simulation context")
	}
	return nil
}
