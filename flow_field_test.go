package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowFieldDisabled(t *testing.T) {
	t.Parallel()
	f := newFlowField(7, false)
	fx, fy := f.flowAt(12, -3, boatFootprintWidth)
	assert.Zero(t, fx)
	assert.Zero(t, fy)
}

func TestFlowFieldBounded(t *testing.T) {
	t.Parallel()
	f := newFlowField(7, true)
	for _, p := range [][2]float64{{0, 0}, {25, -40}, {-130, 15}, {3.5, 3.5}} {
		fx, fy := f.flowAt(p[0], p[1], boatFootprintWidth)
		assert.LessOrEqual(t, math.Hypot(fx, fy), flowMaxSpeed+1e-9)
	}
}

func TestFlowFieldDeterministic(t *testing.T) {
	t.Parallel()
	a := newFlowField(42, true)
	b := newFlowField(42, true)
	for _, p := range [][2]float64{{0, 0}, {25, -40}, {-130, 15}} {
		ax, ay := a.flowAt(p[0], p[1], boatFootprintWidth)
		bx, by := b.flowAt(p[0], p[1], boatFootprintWidth)
		assert.Equal(t, ax, bx)
		assert.Equal(t, ay, by)
	}
}

func TestFlowFieldDriftsOverTime(t *testing.T) {
	t.Parallel()
	f := newFlowField(42, true)
	beforeX, beforeY := f.flowAt(25, -40, boatFootprintWidth)
	f.advance(600)
	afterX, afterY := f.flowAt(25, -40, boatFootprintWidth)
	assert.True(t, beforeX != afterX || beforeY != afterY)
}
