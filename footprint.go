package main

// gridOffset is a cell offset relative to the center of an object footprint.
type gridOffset struct {
	dx int
	dy int
}

// precomputeFootprint returns the circular set of cell offsets covered by an
// object of the given radius, in cells. Each tier caches its own footprint
// because cell sizes differ between tiers.
func precomputeFootprint(radius int) []gridOffset {
	if radius < 1 {
		radius = 1
	}
	footprint := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				footprint = append(footprint, gridOffset{dx: x, dy: y})
			}
		}
	}
	return footprint
}
