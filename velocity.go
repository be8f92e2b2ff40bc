package main

import (
	"log"

	"gonum.org/v1/gonum/spatial/r3"
)

// filterPolicy holds the teleport and speed-clamp thresholds, in km/h, and the
// diagnostic switch for each branch. Immutable for the component's lifetime.
type filterPolicy struct {
	teleportThreshold float64
	maxSpeed          float64
	warnOnTeleport    bool
	warnOnClamp       bool
}

// filter applies the teleport and max-speed policy to a water-relative
// velocity. Teleport detection takes precedence and discards the whole
// sample, direction included. Clamping preserves direction exactly.
func (p filterPolicy) filter(v r3.Vec) r3.Vec {
	speed := r3.Norm(v) * metersPerSecondToKMH
	switch {
	case speed > p.teleportThreshold:
		if p.warnOnTeleport {
			log.Printf("discarding velocity sample at %.1f km/h: teleport threshold is %.1f", speed, p.teleportThreshold)
		}
		return r3.Vec{}
	case speed > p.maxSpeed:
		if p.warnOnClamp {
			log.Printf("clamping velocity sample from %.1f km/h to %.1f", speed, p.maxSpeed)
		}
		return r3.Scale(p.maxSpeed/speed, v)
	default:
		return v
	}
}

// velocityEstimator derives the object's velocity relative to the moving
// water from consecutive position samples. It owns the previous-position
// history; nothing else mutates it.
type velocityEstimator struct {
	prev     r3.Vec
	havePrev bool
	elapsed  float64
}

// accumulate records frame time. Frames that skip the rest of the pipeline
// still accumulate here, so the next completed estimate divides the position
// delta by the whole interval instead of manufacturing a velocity spike.
func (e *velocityEstimator) accumulate(dt float64) {
	e.elapsed += dt
}

// estimate computes the water-relative velocity at the current position and
// advances the position history. A degenerate interval below the minimum
// timestep yields a zero raw velocity rather than a near-infinite one. The
// ambient flow is subtracted from the horizontal components only; the
// vertical component passes through untouched and is weighted by the up/down
// multiplier at injection time.
func (e *velocityEstimator) estimate(pos r3.Vec, flow flowSampler, footprintWidth float64) r3.Vec {
	dt := e.elapsed
	e.elapsed = 0
	var raw r3.Vec
	if e.havePrev && dt >= minDynamicsTimestep {
		raw = r3.Scale(1/dt, r3.Sub(pos, e.prev))
	}
	e.prev = pos
	e.havePrev = true
	fx, fy := flow.flowAt(pos.X, pos.Y, footprintWidth)
	raw.X -= fx
	raw.Y -= fy
	return raw
}
