package main

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// flowField provides the ambient horizontal water current, independent of the
// wave ripples. Two noise channels drive heading and strength so the current
// curls smoothly instead of pulsing.
type flowField struct {
	heading  opensimplex.Noise
	strength opensimplex.Noise
	time     float64
	enabled  bool
}

// newFlowField seeds the current noise channels.
func newFlowField(seed int64, enabled bool) *flowField {
	return &flowField{
		heading:  opensimplex.NewNormalized(seed + 1),
		strength: opensimplex.NewNormalized(seed + 2),
		enabled:  enabled,
	}
}

// advance drifts the flow pattern over time.
func (f *flowField) advance(dt float64) {
	f.time += dt * flowTimeScale
}

// flowAt samples the ambient current at a position, averaged over the object's
// footprint by tapping the center and corners of the footprint square.
func (f *flowField) flowAt(x, y, width float64) (float64, float64) {
	if !f.enabled {
		return 0, 0
	}
	half := width / 2
	taps := [...][2]float64{
		{x, y},
		{x - half, y - half},
		{x + half, y - half},
		{x - half, y + half},
		{x + half, y + half},
	}
	var fx, fy float64
	for _, p := range taps {
		angle := f.heading.Eval3(p[0]*flowNoiseScale, p[1]*flowNoiseScale, f.time) * 2 * math.Pi
		mag := f.strength.Eval3(p[0]*flowNoiseScale+100, p[1]*flowNoiseScale+100, f.time) * flowMaxSpeed
		fx += math.Cos(angle) * mag
		fy += math.Sin(angle) * mag
	}
	n := float64(len(taps))
	return fx / n, fy / n
}
