package main

import (
	"log"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Game wires the cascade, the boat, the interaction component, and the
// solvers into ebiten's per-frame loop. Update runs strictly in order: boat
// transform first, interaction pipeline second, wake injection third, wave
// propagation last, so the published parameters always reflect the current
// frame's transform.
type Game struct {
	terr        *terrain
	cascade     *tierCascade
	flow        *flowField
	boat        *boat
	interaction *waterInteraction
	injector    *wakeInjector

	cpuSolver  *cpuWaveSolver
	gpuSolvers []*openCLWaveSolver

	lastUpdate      time.Time
	stepAccumulator float64
	lastSimDuration time.Duration

	audioCtx    *audio.Context
	audioStream *wakeAudioStream
	audioPlayer *audio.Player

	pixels []byte
}

// newGame constructs a fully initialized Game instance. A failed interaction
// validation leaves the component permanently disabled but keeps the water
// rendering.
func newGame() *Game {
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	terr := newTerrain(seed)
	workers := runtime.NumCPU()
	cascade := newTierCascade(*tierCountFlag, *simTierCountFlag, terr,
		boatFootprintWidth, *gravityMultFlag, *dynamicWavesFlag, workers)
	flow := newFlowField(seed, *ambientFlowFlag)
	b := newBoat(terr, cascade.worldExtent()*1.25)
	injector := newWakeInjector(cascade, *upDownMultFlag)
	policy := filterPolicy{
		teleportThreshold: *teleportThresholdFlag,
		maxSpeed:          *maxSpeedFlag,
		warnOnTeleport:    *warnTeleportFlag,
		warnOnClamp:       *warnClampFlag,
	}
	interaction, err := newWaterInteraction(cascade, flow, b, injector, policy)
	if err != nil {
		log.Printf("continuing without wake injection: %v", err)
	}

	g := &Game{
		terr:        terr,
		cascade:     cascade,
		flow:        flow,
		boat:        b,
		interaction: interaction,
		injector:    injector,
		cpuSolver:   newCPUWaveSolver(workers),
	}
	g.initGPUSolvers()
	if *enableAudioFlag {
		g.initAudio()
	}
	return g
}

// initGPUSolvers attaches an OpenCL solver to every allocated tier, falling
// back to the CPU pool when the device or build does not support it.
func (g *Game) initGPUSolvers() {
	g.gpuSolvers = make([]*openCLWaveSolver, len(g.cascade.tiers))
	for _, t := range g.cascade.tiers {
		if !t.allocated() {
			continue
		}
		solver, err := newOpenCLWaveSolver(tierGridSize, tierGridSize)
		if err != nil {
			log.Printf("tier %d: using CPU solver: %v", t.index, err)
			continue
		}
		log.Printf("tier %d: OpenCL solver enabled (device: %s)", t.index, solver.DeviceName())
		g.gpuSolvers[t.index] = solver
	}
}

// initAudio starts the wake ambience stream.
func (g *Game) initAudio() {
	g.audioCtx = audio.NewContext(audioSampleRate)
	g.audioStream = newWakeAudioStream()
	player, err := g.audioCtx.NewPlayer(g.audioStream)
	if err != nil {
		log.Printf("audio player creation failed: %v", err)
		return
	}
	g.audioPlayer = player
	g.audioPlayer.Play()
}

// Update advances one frame: transforms, interaction pipeline, injection,
// then fixed-step wave propagation.
func (g *Game) Update() error {
	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	dt := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now
	if dt <= 0 {
		dt = 1.0 / defaultTPS
	}

	g.flow.advance(dt)
	g.cascade.refreshActivity(g.boat.pos.X, g.boat.pos.Y)

	waveHeight := g.cascade.heightAt(g.boat.pos.X, g.boat.pos.Y)
	g.boat.steer(dt, waveHeight)

	g.interaction.update(dt)
	g.injector.apply(g.boat.pos.X, g.boat.pos.Y)

	g.stepAccumulator += dt
	steps := int(g.stepAccumulator / fixedDeltaTime)
	if steps > maxStepsPerFrame {
		// Drop backlog instead of spiraling after a stall.
		steps = maxStepsPerFrame
		g.stepAccumulator = 0
	} else {
		g.stepAccumulator -= float64(steps) * fixedDeltaTime
	}
	if steps > 0 {
		simStart := time.Now()
		g.stepTiers(steps)
		g.lastSimDuration = time.Since(simStart)
	}

	if g.audioStream != nil {
		g.audioStream.SetSample(float32(g.cascade.heightAt(g.boat.pos.X, g.boat.pos.Y)))
	}
	return nil
}

// stepTiers advances every active tier by the given number of fixed steps.
func (g *Game) stepTiers(steps int) {
	for _, t := range g.cascade.tiers {
		if !t.active {
			continue
		}
		if solver := g.gpuSolvers[t.index]; solver != nil {
			if err := solver.Step(t.field, t.land, steps); err != nil {
				log.Printf("tier %d: OpenCL step failed, falling back to CPU: %v", t.index, err)
				solver.Close()
				g.gpuSolvers[t.index] = nil
			} else {
				continue
			}
		}
		for i := 0; i < steps; i++ {
			g.cpuSolver.stepTier(t)
		}
	}
}
