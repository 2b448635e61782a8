package config

import "math"

// Reference resolution the tuning constants were chosen for.
const (
	BaseWidth  = 800
	BaseHeight = 600
)

// Scaled derives every resolution-dependent constant for a world of
// width x height pixels. Lengths follow the screen as fractions of it;
// forces and speeds follow the height relative to BaseHeight.
func Scaled(width, height int) Settings {
	w, h := float64(width), float64(height)
	unit := math.Min(w, h)
	hs := h / BaseHeight
	px := func(v float64) int { return int(math.Round(v)) }

	return Settings{
		Screen: ScreenSettings{
			Width:  width,
			Height: height,
			FPS:    60,
		},
		Physics: PhysicsSettings{
			PixelsPerMeter:  unit / 30,
			Mass:            100,
			Gravity:         40 * hs,
			MainEngineForce: 1500 * hs,
			SideEngineForce: 250 * hs,
			LinearDamping:   0.1,
			AngularDamping:  0.5,
		},
		Lander: LanderSettings{
			Width:        px(w * 0.025),
			Height:       px(h * 0.05),
			LegLength:    px(h * 0.017),
			LegSpread:    0.7,
			InitialFuel:  200,
			MainFuelCost: 1,
			SideFuelCost: 0.5,
		},
		Terrain: TerrainSettings{
			GroundHeight: px(h * 0.917),
			PadWidth:     px(w * 0.125),
			Roughness:    px(h * 0.033),
			StepWidth:    20,
			HeightBand:   px(50 * hs),
		},
		Landing: LandingSettings{
			SafeVelocity: 80 * hs,
			SafeAngleDeg: 18,
			PadTolerance: float64(px(h * 0.008)),
		},
		Observation: ObservationSettings{
			PosNormalization: unit / 2,
			VelNormalization: 80 * hs * 2,
		},
		Rewards: RewardSettings{
			Landing:     100,
			Crash:       -100,
			OutOfBounds: -100,
			OutOfFuel:   -100,
		},
		Episode: EpisodeSettings{
			Landers:  10,
			MaxSteps: 2000,
			MinSteps: 200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "episode",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				RoughnessMultiplier: 1.0,
				FuelReduction:       0.5,
				PadReduction:        px(w * 0.05),
			},
		},
	}
}

// DefaultSettings returns the settings for the reference resolution.
func DefaultSettings() Settings {
	return Scaled(BaseWidth, BaseHeight)
}
