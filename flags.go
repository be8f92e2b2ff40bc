package main

import "flag"

// Command-line flags that control optional rendering, simulation, and runtime
// behavior.
var (
	// tierCountFlag sets how many cascade tiers are laid out.
	tierCountFlag = flag.Int("tiers", defaultTierCount, "number of cascade tiers (1-6)")

	// simTierCountFlag limits how many of the innermost tiers carry an
	// allocated wave simulation. -1 allocates one per tier.
	simTierCountFlag = flag.Int("sim-tiers", -1, "allocate wave sims for the innermost N tiers (-1 = all)")

	// dynamicWavesFlag enables the dynamic wave feature as a whole. Disabling
	// it fails the interaction component's startup validation.
	dynamicWavesFlag = flag.Bool("dynamic-waves", true, "enable dynamic wave simulation")

	// teleportThresholdFlag sets the speed, in km/h, above which a position
	// change is treated as a teleport and discarded.
	teleportThresholdFlag = flag.Float64("teleport-threshold", 500.0, "discard velocity samples faster than this (km/h)")

	// maxSpeedFlag clamps injected velocity magnitude, in km/h.
	maxSpeedFlag = flag.Float64("max-speed", 100.0, "clamp injected velocity to this speed (km/h)")

	// warnTeleportFlag logs a diagnostic whenever a teleport sample is discarded.
	warnTeleportFlag = flag.Bool("warn-teleport", true, "log discarded teleport samples")

	// warnClampFlag logs a diagnostic whenever a velocity sample is clamped.
	warnClampFlag = flag.Bool("warn-clamp", false, "log clamped velocity samples")

	// upDownMultFlag scales how strongly vertical bobbing feeds the wake (0-2).
	upDownMultFlag = flag.Float64("updown-mult", 0.5, "vertical velocity multiplier for wake injection (0-2)")

	// gravityMultFlag scales gravity relative to the reference constant.
	gravityMultFlag = flag.Float64("gravity-mult", 1.0, "gravity multiplier applied to the wave simulation")

	// ambientFlowFlag toggles the ambient current field.
	ambientFlowFlag = flag.Bool("ambient-flow", true, "subtract ambient water current from the injected velocity")

	// showLandFlag toggles rendering of land overlays.
	showLandFlag = flag.Bool("show-land", true, "render land overlays")

	// seedFlag fixes the terrain and flow noise seed. 0 derives one from the clock.
	seedFlag = flag.Int64("seed", 0, "noise seed for terrain and flow (0 = random)")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")

	// enableAudioFlag toggles wake ambience driven by the wave height under the boat.
	enableAudioFlag = flag.Bool("enable-audio", false, "enable wake ambience audio")

	// recordDefaultPGO triggers a scripted cruise to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "cruise on auto-pilot for 15s while capturing default.pgo")
)
