package main

import "time"

// Simulation and rendering configuration constants used throughout the
// application. These values define the tier cascade geometry, solver timing,
// wake injection behavior, and the demo boat's handling.
const (
	screenSize  = 512
	windowScale = 2

	// Tier cascade geometry. Tier i covers the square
	// [-tierBaseExtent*4^i, tierBaseExtent*4^i]^2 at tierGridSize cells per side.
	tierBaseExtent   = 10.0
	tierExtentFactor = 4.0
	defaultTierCount = 3
	maxTierCount     = 6
	tierGridSize     = 256

	// Wave solver coefficients, shared by the CPU and OpenCL paths.
	damp            = 0.9994
	speed           = 0.5
	waveDamp32      = float32(damp)
	waveSpeed32     = float32(speed)
	boundaryReflect = 0.90

	// Fixed solver timing. The injected parameters always carry the fixed
	// timestep, never the per-frame elapsed time.
	simulationFrequency = 60.0
	fixedDeltaTime      = 1.0 / simulationFrequency
	maxStepsPerFrame    = 4
	defaultTPS          = 60.0

	// Velocity policy. Thresholds are compared in km/h.
	metersPerSecondToKMH = 3.6
	minDynamicsTimestep  = 1e-4
	referenceGravity     = 9.81
	standardGravity      = 9.81

	// Wake injection.
	minWakeSpeed        = 0.05
	wakeImpulseStrength = 1.0
	wakeVerticalGain    = 0.6
	wakeSpeedReference  = 10.0

	// Boat handling and heave response.
	boatMoveSpeed        = 6.0
	boatFootprintWidth   = 3.0
	boatBobGain          = 0.8
	boatBobSmoothing     = 0.25
	boatDiagonalFactor   = 0.7071
	autoPilotMinFrames   = 20
	autoPilotFrameJitter = 50
	autoPilotMaxAttempts = 5

	// Tier activity gating: a tier runs only while the viewer sits inside its
	// coverage expanded by this margin (world units).
	tierActivationMargin = 5.0

	// Procedural terrain.
	landNoiseScale      = 0.035
	landThreshold       = 0.66
	landSolidMargin     = 0.04
	landExclusionRadius = 8.0

	// Ambient flow field.
	flowNoiseScale = 0.012
	flowTimeScale  = 0.02
	flowMaxSpeed   = 1.5

	pgoRecordDuration = 15 * time.Second
	audioSampleRate   = 48000
)
