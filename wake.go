package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// wakeInjector is the render-pass consumer of the published interaction
// parameters. Each frame with a fresh publication it stamps the object's
// footprint into every active tier covering the position, scaled by the
// published weight so overlapping tiers never over-inject.
type wakeInjector struct {
	cascade      *tierCascade
	upDownMult   float64
	velocity     r3.Vec
	simDeltaTime float64
	weight       float64
	fresh        bool
}

// newWakeInjector wires the injector to the cascade it writes into. The
// up/down multiplier tunes how strongly vertical bobbing feeds the wake
// relative to horizontal motion.
func newWakeInjector(c *tierCascade, upDownMult float64) *wakeInjector {
	return &wakeInjector{cascade: c, upDownMult: clampUpDown(upDownMult)}
}

// clampUpDown constrains the vertical multiplier to its [0, 2] tuning range.
func clampUpDown(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}

// setVec3 stores a named vector parameter, overwriting the prior frame's
// value. Unknown names are ignored.
func (w *wakeInjector) setVec3(name string, v r3.Vec) {
	if name == paramVelocity {
		w.velocity = v
		w.fresh = true
	}
}

// setFloat stores a named scalar parameter, overwriting the prior frame's
// value. Unknown names are ignored.
func (w *wakeInjector) setFloat(name string, v float64) {
	switch name {
	case paramSimDeltaTime:
		w.simDeltaTime = v
	case paramWeight:
		w.weight = v
	}
}

// apply consumes the current frame's parameters and queues impulses into the
// active covering tiers. Frames without a fresh publication inject nothing;
// stale parameters are never re-consumed.
func (w *wakeInjector) apply(x, y float64) {
	if !w.fresh {
		return
	}
	w.fresh = false
	if w.weight <= 0 || r3.Norm(w.velocity) < minWakeSpeed {
		return
	}
	horizontal := math.Hypot(w.velocity.X, w.velocity.Y)
	vertical := math.Abs(w.velocity.Z) * w.upDownMult
	strength := float32(w.weight * w.simDeltaTime * wakeImpulseStrength *
		(horizontal/wakeSpeedReference + vertical*wakeVerticalGain))
	for _, t := range w.cascade.tiers {
		if !t.active {
			continue
		}
		cx, cy, ok := t.cellAt(x, y)
		if !ok {
			continue
		}
		for _, off := range t.stamp {
			ix := cx + off.dx
			iy := cy + off.dy
			if t.isLandCell(ix, iy) {
				continue
			}
			t.field.queueImpulse(ix, iy, strength)
		}
	}
}
