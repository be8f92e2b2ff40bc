package main

import "math"

// tier is one resolution level of the wave cascade. Geometry always exists;
// field is nil when no wave simulation is allocated at this level.
type tier struct {
	index    int
	extent   float64 // half-width of the coverage square, world units
	cellSize float64
	field    *waveField
	land     []bool
	rowMasks []rowMask
	masks    []workerMask
	stamp    []gridOffset
	active   bool
}

// allocated reports whether a wave simulation instance exists for this tier.
func (t *tier) allocated() bool { return t.field != nil }

// contains reports whether the horizontal point lies inside the coverage square.
func (t *tier) contains(x, y float64) bool {
	return math.Abs(x) <= t.extent && math.Abs(y) <= t.extent
}

// cellAt maps a world position to tier grid coordinates. ok is false when the
// position falls outside the coverage square.
func (t *tier) cellAt(x, y float64) (int, int, bool) {
	if !t.contains(x, y) {
		return 0, 0, false
	}
	cx := int((x + t.extent) / t.cellSize)
	cy := int((y + t.extent) / t.cellSize)
	cx = clampCoord(cx, 0, tierGridSize-1)
	cy = clampCoord(cy, 0, tierGridSize-1)
	return cx, cy, true
}

// isLandCell reports whether the tier grid cell is masked out as land.
func (t *tier) isLandCell(cx, cy int) bool {
	if cx < 0 || cx >= tierGridSize || cy < 0 || cy >= tierGridSize {
		return true
	}
	return t.land[cy*tierGridSize+cx]
}

// heightAt samples the wave displacement at a world position, or zero when
// the tier carries no simulation or the point is off-grid.
func (t *tier) heightAt(x, y float64) float64 {
	if t.field == nil {
		return 0
	}
	cx, cy, ok := t.cellAt(x, y)
	if !ok || t.isLandCell(cx, cy) {
		return 0
	}
	return float64(t.field.readCurr(cx, cy))
}

// tierCascade owns the tier geometry and the allocated wave simulations. It is
// the simulation context the interaction component queries every frame.
type tierCascade struct {
	tiers        []*tier
	gravityMult  float64
	wavesEnabled bool
}

// newTierCascade lays out count nested tiers and allocates wave simulations
// for the innermost simCount of them. simCount < 0 allocates one per tier.
func newTierCascade(count, simCount int, terr *terrain, footprintWidth, gravityMult float64, wavesEnabled bool, workerCount int) *tierCascade {
	if count < 0 {
		count = 0
	}
	if count > maxTierCount {
		count = maxTierCount
	}
	if simCount < 0 || simCount > count {
		simCount = count
	}
	if !wavesEnabled {
		simCount = 0
	}
	c := &tierCascade{gravityMult: gravityMult, wavesEnabled: wavesEnabled}
	extent := tierBaseExtent
	for i := 0; i < count; i++ {
		t := &tier{
			index:    i,
			extent:   extent,
			cellSize: 2 * extent / tierGridSize,
		}
		if i < simCount {
			t.field = newWaveField(tierGridSize, tierGridSize)
			t.land = terr.rasterize(extent, tierGridSize)
			t.rowMasks = buildInteriorRows(t.land, tierGridSize, tierGridSize)
			t.masks = assignRowMasks(workerCount, t.rowMasks)
			radius := int(footprintWidth / 2 / t.cellSize)
			t.stamp = precomputeFootprint(radius)
		}
		c.tiers = append(c.tiers, t)
		extent *= tierExtentFactor
	}
	return c
}

// coveringTier returns the smallest-index tier whose coverage square contains
// the horizontal point, or -1 when the point lies outside every tier.
func (c *tierCascade) coveringTier(x, y float64) int {
	for _, t := range c.tiers {
		if t.contains(x, y) {
			return t.index
		}
	}
	return -1
}

// simCounts reports how many wave simulations exist at or above the tier
// index, and how many of those are running this frame.
func (c *tierCascade) simCounts(index int) (present, active int) {
	if index < 0 {
		return 0, 0
	}
	for i := index; i < len(c.tiers); i++ {
		if !c.tiers[i].allocated() {
			continue
		}
		present++
		if c.tiers[i].active {
			active++
		}
	}
	return present, active
}

// solverTimestep returns the fixed timestep the wave solver advances by.
func (c *tierCascade) solverTimestep() float64 { return fixedDeltaTime }

// gravity returns the effective gravity driving the wave simulation.
func (c *tierCascade) gravity() float64 { return standardGravity * c.gravityMult }

// dynamicWavesEnabled reports whether the dynamic wave feature is on at all.
func (c *tierCascade) dynamicWavesEnabled() bool { return c.wavesEnabled }

// refreshActivity gates each allocated tier on viewer distance: a tier runs
// only while the viewer sits inside its coverage expanded by the activation
// margin.
func (c *tierCascade) refreshActivity(viewerX, viewerY float64) {
	for _, t := range c.tiers {
		if !t.allocated() {
			t.active = false
			continue
		}
		limit := t.extent + tierActivationMargin
		t.active = math.Abs(viewerX) <= limit && math.Abs(viewerY) <= limit
	}
}

// heightAt samples the wave displacement from the finest allocated tier
// covering the point, or zero when no tier covers it.
func (c *tierCascade) heightAt(x, y float64) float64 {
	for _, t := range c.tiers {
		if t.allocated() && t.contains(x, y) {
			return t.heightAt(x, y)
		}
	}
	return 0
}

// worldExtent returns the half-width of the outermost tier's coverage, or the
// base extent when the cascade is empty.
func (c *tierCascade) worldExtent() float64 {
	if len(c.tiers) == 0 {
		return tierBaseExtent
	}
	return c.tiers[len(c.tiers)-1].extent
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
