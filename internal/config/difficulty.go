package config

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// DifficultyManager calculates per-episode parameters from the episode
// count or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(episode int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "episode":
		progress = float64(episode) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Roughness returns the terrain roughness at the given level.
func (d *DifficultyManager) Roughness(base int, level float64) int {
	return int(math.Round(float64(base) * (1.0 + level*d.cfg.Scaling.RoughnessMultiplier)))
}

// Fuel returns the fuel budget at the given level.
func (d *DifficultyManager) Fuel(base float64, level float64) float64 {
	f := base * (1.0 - level*clampF(d.cfg.Scaling.FuelReduction, 0.0, 0.9))
	return math.Max(f, 1)
}

// PadWidth returns the landing pad width at the given level.
func (d *DifficultyManager) PadWidth(base int, level float64) int {
	result := base - int(level*float64(d.cfg.Scaling.PadReduction))
	if result < base/2 { // Minimum landable pad
		result = base / 2
	}
	return result
}

// Apply scales the lander and terrain parameters for the given level.
func (d *DifficultyManager) Apply(lc lander.Config, tc terrain.Config, level float64) (lander.Config, terrain.Config) {
	lc.InitialFuel = d.Fuel(lc.InitialFuel, level)
	tc.Roughness = d.Roughness(tc.Roughness, level)
	tc.PadWidth = d.PadWidth(tc.PadWidth, level)
	return lc, tc
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
