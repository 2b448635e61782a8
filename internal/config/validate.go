package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/physics"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// Validate checks the settings as a whole. Every failure wraps
// core.ErrInvalidConfig.
func (s Settings) Validate() error {
	switch {
	case s.Screen.Width <= 0 || s.Screen.Height <= 0:
		return fmt.Errorf("config: screen size must be positive, got %dx%d: %w", s.Screen.Width, s.Screen.Height, core.ErrInvalidConfig)
	case s.Screen.FPS <= 0:
		return fmt.Errorf("config: fps must be positive, got %d: %w", s.Screen.FPS, core.ErrInvalidConfig)
	case s.Lander.Width <= 0 || s.Lander.Height <= 0:
		return fmt.Errorf("config: lander size must be positive: %w", core.ErrInvalidConfig)
	case s.Episode.Landers <= 0:
		return fmt.Errorf("config: episode needs at least one lander: %w", core.ErrInvalidConfig)
	case s.Episode.MaxSteps <= 0 || s.Episode.MinSteps < 0:
		return fmt.Errorf("config: invalid episode step limits: %w", core.ErrInvalidConfig)
	case s.Difficulty.InitialLevel < 0 || s.Difficulty.InitialLevel > 1:
		return fmt.Errorf("config: initial difficulty %v outside [0, 1]: %w", s.Difficulty.InitialLevel, core.ErrInvalidConfig)
	case s.Difficulty.Scaling.RoughnessMultiplier < 0:
		return fmt.Errorf("config: roughness multiplier must be non-negative, got %v: %w", s.Difficulty.Scaling.RoughnessMultiplier, core.ErrInvalidConfig)
	case s.Difficulty.Scaling.FuelReduction < 0 || s.Difficulty.Scaling.FuelReduction >= 1:
		return fmt.Errorf("config: fuel reduction %v outside [0, 1): %w", s.Difficulty.Scaling.FuelReduction, core.ErrInvalidConfig)
	case s.Difficulty.Scaling.PadReduction < 0:
		return fmt.Errorf("config: pad reduction must be non-negative, got %d: %w", s.Difficulty.Scaling.PadReduction, core.ErrInvalidConfig)
	}
	if err := s.PhysicsConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.LanderConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.TerrainConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Every level in [0, 1] lies between the base and the hardest round.
	lc, tc := NewDifficultyManager(s.Difficulty).Apply(s.LanderConfig(), s.TerrainConfig(), 1)
	if err := lc.Validate(); err != nil {
		return fmt.Errorf("config: at max difficulty: %w", err)
	}
	if err := tc.Validate(); err != nil {
		return fmt.Errorf("config: at max difficulty: %w", err)
	}
	return nil
}

// DT returns the fixed physics time step.
func (s Settings) DT() float64 {
	return 1 / float64(s.Screen.FPS)
}

// LanderConfig converts the settings into lander parameters.
func (s Settings) LanderConfig() lander.Config {
	return lander.Config{
		PixelsPerMeter:   s.Physics.PixelsPerMeter,
		Mass:             s.Physics.Mass,
		Width:            float64(s.Lander.Width),
		Height:           float64(s.Lander.Height),
		LegLength:        float64(s.Lander.LegLength),
		LegSpread:        s.Lander.LegSpread,
		Gravity:          s.Physics.Gravity,
		MainEngineForce:  s.Physics.MainEngineForce,
		SideEngineForce:  s.Physics.SideEngineForce,
		LinearDrag:       s.Physics.LinearDamping,
		AngularDrag:      s.Physics.AngularDamping,
		DT:               s.DT(),
		InitialFuel:      s.Lander.InitialFuel,
		MainFuelCost:     s.Lander.MainFuelCost,
		SideFuelCost:     s.Lander.SideFuelCost,
		PosNormalization: s.Observation.PosNormalization,
		VelNormalization: s.Observation.VelNormalization,
	}
}

// PhysicsConfig returns the engine parameters in SI units.
func (s Settings) PhysicsConfig() physics.Config {
	return s.LanderConfig().Physics()
}

// TerrainConfig converts the settings into generator and landing
// parameters. The pad center is left random.
func (s Settings) TerrainConfig() terrain.Config {
	return terrain.Config{
		Width:        s.Screen.Width,
		Height:       s.Screen.Height,
		GroundHeight: s.Terrain.GroundHeight,
		PadWidth:     s.Terrain.PadWidth,
		Roughness:    s.Terrain.Roughness,
		StepWidth:    s.Terrain.StepWidth,
		HeightBand:   s.Terrain.HeightBand,
		PadTolerance: s.Landing.PadTolerance,
		SafeVelocity: s.Landing.SafeVelocity,
		SafeAngle:    s.Landing.SafeAngleDeg * math.Pi / 180,
	}
}
