package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainSpawnAreaIsClear(t *testing.T) {
	t.Parallel()
	terr := newTerrain(1)
	for _, p := range [][2]float64{{0, 0}, {3, -3}, {-5, 5}, {7, 0}} {
		assert.False(t, terr.isLand(p[0], p[1]))
		assert.False(t, terr.isSolid(p[0], p[1]))
	}
}

func TestTerrainSolidImpliesLand(t *testing.T) {
	t.Parallel()
	terr := newTerrain(1)
	for y := -160.0; y <= 160; y += 7.3 {
		for x := -160.0; x <= 160; x += 7.3 {
			if terr.isSolid(x, y) {
				assert.True(t, terr.isLand(x, y), "solid but not land at (%.1f, %.1f)", x, y)
			}
		}
	}
}

func TestTerrainRasterizeMatchesPointQueries(t *testing.T) {
	t.Parallel()
	terr := newTerrain(1)
	const extent = 40.0
	const size = 64
	land := terr.rasterize(extent, size)
	require.Len(t, land, size*size)

	cellSize := 2 * extent / float64(size)
	for _, cell := range [][2]int{{0, 0}, {31, 31}, {10, 50}, {63, 63}} {
		wx := -extent + (float64(cell[0])+0.5)*cellSize
		wy := -extent + (float64(cell[1])+0.5)*cellSize
		assert.Equal(t, terr.isLand(wx, wy), land[cell[1]*size+cell[0]])
	}
}

func TestTerrainDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := newTerrain(9)
	b := newTerrain(9)
	c := newTerrain(10)

	aRaster := a.rasterize(40, 32)
	assert.Equal(t, aRaster, b.rasterize(40, 32))
	assert.NotEqual(t, aRaster, c.rasterize(40, 32))
}
