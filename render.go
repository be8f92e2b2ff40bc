package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw composites the cascade coarse-to-fine into the frame buffer: every
// pixel samples the finest allocated tier covering it, so the view gains
// detail toward the center without seams.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.pixels == nil {
		g.pixels = make([]byte, screenSize*screenSize*4)
	}
	extent := g.cascade.worldExtent()
	cell := 2 * extent / screenSize
	for sy := 0; sy < screenSize; sy++ {
		wy := -extent + (float64(sy)+0.5)*cell
		for sx := 0; sx < screenSize; sx++ {
			wx := -extent + (float64(sx)+0.5)*cell
			base := (sy*screenSize + sx) * 4
			if *showLandFlag && g.terr.isLand(wx, wy) {
				g.pixels[base] = 86
				g.pixels[base+1] = 78
				g.pixels[base+2] = 52
				g.pixels[base+3] = 255
				continue
			}
			v := g.sampleDisplacement(wx, wy)
			intensity := math.Min(1, math.Abs(v))
			g.pixels[base] = byte(12 + intensity*180)
			g.pixels[base+1] = byte(34 + intensity*190)
			g.pixels[base+2] = byte(92 + intensity*160)
			g.pixels[base+3] = 255
		}
	}
	screen.WritePixels(g.pixels)

	g.drawBoatMarker(screen, extent)

	if *debugFlag {
		g.drawDebugOverlay(screen)
	}
}

// Layout reports the logical screen size used by ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenSize, screenSize }

// sampleDisplacement reads the wave height from the finest allocated tier
// covering the world position.
func (g *Game) sampleDisplacement(wx, wy float64) float64 {
	for _, t := range g.cascade.tiers {
		if t.allocated() && t.contains(wx, wy) {
			return t.heightAt(wx, wy)
		}
	}
	return 0
}

// drawBoatMarker renders the boat anchor, extrapolated along the body
// velocity by the unstepped remainder of the frame.
func (g *Game) drawBoatMarker(screen *ebiten.Image, extent float64) {
	anchorX := g.boat.pos.X + g.boat.vel.X*g.stepAccumulator
	anchorY := g.boat.pos.Y + g.boat.vel.Y*g.stepAccumulator
	cx := int((anchorX/extent + 1) * 0.5 * screenSize)
	cy := int((anchorY/extent + 1) * 0.5 * screenSize)
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			px := cx + dx
			py := cy + dy
			if px >= 0 && px < screenSize && py >= 0 && py < screenSize {
				screen.Set(px, py, color.RGBA{255, 40, 40, 255})
			}
		}
	}
}

// drawDebugOverlay prints frame timing and cascade activity.
func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	index := g.cascade.coveringTier(g.boat.pos.X, g.boat.pos.Y)
	present, active := g.cascade.simCounts(0)
	state := "active"
	if g.interaction.disabled() {
		state = "disabled"
	}
	speed := math.Hypot(g.boat.vel.X, g.boat.vel.Y) * metersPerSecondToKMH
	msg := fmt.Sprintf("FPS: %.1f (%.1f TPS)\nSim: %.2f ms\nTiers: %d present, %d active, covering %d\nBoat: (%.1f, %.1f) %.1f km/h\nInteraction: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.lastSimDuration.Seconds()*1000,
		present, active, index,
		g.boat.pos.X, g.boat.pos.Y, speed, state)
	ebitenutil.DebugPrint(screen, msg)
}
