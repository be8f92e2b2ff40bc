package main

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// terrain holds the procedural land mask shared by every cascade tier, the
// boat's in-water check, and the renderer.
type terrain struct {
	noise opensimplex.Noise
}

// newTerrain seeds the island noise field.
func newTerrain(seed int64) *terrain {
	return &terrain{noise: opensimplex.NewNormalized(seed)}
}

// isLand reports whether the world position sits on an island. A clear radius
// around the origin keeps the spawn area navigable.
func (t *terrain) isLand(x, y float64) bool {
	if x*x+y*y < landExclusionRadius*landExclusionRadius {
		return false
	}
	return t.noise.Eval2(x*landNoiseScale, y*landNoiseScale) > landThreshold
}

// isSolid reports whether the position blocks movement. The band between the
// land threshold and the solid threshold is beachable shallows: dry enough to
// mask out of the solver, wet enough to run aground on.
func (t *terrain) isSolid(x, y float64) bool {
	if x*x+y*y < landExclusionRadius*landExclusionRadius {
		return false
	}
	return t.noise.Eval2(x*landNoiseScale, y*landNoiseScale) > landThreshold+landSolidMargin
}

// rasterize samples the land mask at a tier's grid resolution. Cell centers
// are evaluated so neighboring tiers agree on coastline placement.
func (t *terrain) rasterize(extent float64, size int) []bool {
	land := make([]bool, size*size)
	cellSize := 2 * extent / float64(size)
	for cy := 0; cy < size; cy++ {
		wy := -extent + (float64(cy)+0.5)*cellSize
		for cx := 0; cx < size; cx++ {
			wx := -extent + (float64(cx)+0.5)*cellSize
			if t.isLand(wx, wy) {
				land[cy*size+cx] = true
			}
		}
	}
	return land
}
