package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Parameter names understood by the wake injection pass.
const (
	paramVelocity     = "wake/velocity"
	paramSimDeltaTime = "wake/simDeltaTime"
	paramWeight       = "wake/weight"
)

// interactionParams is the per-frame output of the interaction component:
// the filtered water-relative velocity, the fixed solver timestep, and the
// normalized tier blend weight. Produced fresh every frame, never retained.
type interactionParams struct {
	velocity     r3.Vec
	simDeltaTime float64
	weight       float64
}

// renderParamSink accepts named per-frame parameters with overwrite
// semantics; values never accumulate across frames.
type renderParamSink interface {
	setVec3(name string, v r3.Vec)
	setFloat(name string, v float64)
}

// injectionWeight bounds the total energy injected across overlapping tiers:
// one object's per-tier weights sum to at most one. The square-root term
// keeps ripple timing visually consistent when gravity is reconfigured,
// since wave energy scales with the square root of gravity.
func injectionWeight(inWater bool, simsActive int, gravity float64) float64 {
	if !inWater || simsActive <= 0 {
		return 0
	}
	return 1 / float64(simsActive) * math.Sqrt(gravity/referenceGravity)
}
