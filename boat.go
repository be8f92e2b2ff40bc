package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// boat is the floating object whose wake disturbs the cascade. X/Y is the
// horizontal plane, Z is vertical heave.
type boat struct {
	pos    r3.Vec
	vel    r3.Vec // anchor extrapolation for rendering, not the injected velocity
	width  float64
	terr   *terrain
	bounds float64

	autoPilot           bool
	autoPilotDeadline   time.Time
	autoPilotRand       *rand.Rand
	autoPilotDirX       float64
	autoPilotDirY       float64
	autoPilotFrameCount int
}

// newBoat places the boat at the origin of the navigable area.
func newBoat(terr *terrain, bounds float64) *boat {
	return &boat{width: boatFootprintWidth, terr: terr, bounds: bounds}
}

func (b *boat) position() r3.Vec { return b.pos }

func (b *boat) footprintWidth() float64 { return b.width }

// inWater reports whether the hull sits on open water. A beached boat keeps
// updating but injects no wake.
func (b *boat) inWater() bool { return !b.terr.isLand(b.pos.X, b.pos.Y) }

// steer advances the boat by this frame's movement and eases the heave toward
// the wave displacement sampled under the hull.
func (b *boat) steer(dt, waveHeight float64) {
	dx, dy := b.movementVector()
	oldX, oldY := b.pos.X, b.pos.Y
	b.pos.X = math.Max(-b.bounds, math.Min(b.bounds, b.pos.X+dx*dt))
	b.pos.Y = math.Max(-b.bounds, math.Min(b.bounds, b.pos.Y+dy*dt))
	if b.terr.isSolid(b.pos.X, b.pos.Y) {
		b.pos.X, b.pos.Y = oldX, oldY
	}
	targetZ := waveHeight * boatBobGain
	b.pos.Z += (targetZ - b.pos.Z) * boatBobSmoothing
	if dt > 0 {
		b.vel = r3.Vec{X: (b.pos.X - oldX) / dt, Y: (b.pos.Y - oldY) / dt}
	}
}

// enableAutoPilot schedules scripted cruising for a limited duration.
func (b *boat) enableAutoPilot(duration time.Duration) {
	b.autoPilot = true
	b.autoPilotDeadline = time.Now().Add(duration)
	if b.autoPilotRand == nil {
		b.autoPilotRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	b.autoPilotFrameCount = 0
}

// movementVector selects either manual or scripted movement, in world units
// per second.
func (b *boat) movementVector() (float64, float64) {
	if b.autoPilot {
		if time.Now().After(b.autoPilotDeadline) {
			b.autoPilot = false
			return 0, 0
		}
		return b.autoPilotVector()
	}
	return b.manualMovementVector()
}

// manualMovementVector returns WASD-based movement scaled by the cruise speed.
func (b *boat) manualMovementVector() (float64, float64) {
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= boatMoveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += boatMoveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= boatMoveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += boatMoveSpeed
	}
	if dx != 0 && dy != 0 {
		dx *= boatDiagonalFactor
		dy *= boatDiagonalFactor
	}
	return dx, dy
}

// autoPilotVector returns a pseudo-random, grounding-aware heading.
func (b *boat) autoPilotVector() (float64, float64) {
	if b.autoPilotRand == nil {
		b.autoPilotRand = rand.New(rand.NewSource(time.Now().UnixNano() + 4))
	}
	for attempts := 0; attempts < autoPilotMaxAttempts; attempts++ {
		if b.autoPilotFrameCount <= 0 {
			b.randomizeAutoPilotHeading()
		}
		nextX := b.pos.X + b.autoPilotDirX*boatMoveSpeed*fixedDeltaTime
		nextY := b.pos.Y + b.autoPilotDirY*boatMoveSpeed*fixedDeltaTime
		if math.Abs(nextX) < b.bounds && math.Abs(nextY) < b.bounds &&
			!b.terr.isSolid(nextX, nextY) {
			b.autoPilotFrameCount--
			return b.autoPilotDirX * boatMoveSpeed, b.autoPilotDirY * boatMoveSpeed
		}
		b.autoPilotFrameCount = 0
	}
	return 0, 0
}

// randomizeAutoPilotHeading chooses a new cruise heading.
func (b *boat) randomizeAutoPilotHeading() {
	angle := b.autoPilotRand.Float64() * 2 * math.Pi
	b.autoPilotDirX = math.Cos(angle)
	b.autoPilotDirY = math.Sin(angle)
	b.autoPilotFrameCount = autoPilotMinFrames + b.autoPilotRand.Intn(autoPilotFrameJitter)
}
