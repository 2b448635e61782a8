// Package config provides YAML-based simulation settings, resolution
// scaling and difficulty management for the lander.
package config

// Settings is the complete configuration document.
type Settings struct {
	Screen      ScreenSettings      `yaml:"screen"`
	Physics     PhysicsSettings     `yaml:"physics"`
	Lander      LanderSettings      `yaml:"lander"`
	Terrain     TerrainSettings     `yaml:"terrain"`
	Landing     LandingSettings     `yaml:"landing"`
	Observation ObservationSettings `yaml:"observation"`
	Rewards     RewardSettings      `yaml:"rewards"`
	Episode     EpisodeSettings     `yaml:"episode"`
	Difficulty  DifficultyConfig    `yaml:"difficulty"`
}

// ScreenSettings defines the world size in pixels and the tick rate.
type ScreenSettings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// PhysicsSettings defines the body and environment parameters.
// Gravity is in pixels/s², forces in newtons.
type PhysicsSettings struct {
	PixelsPerMeter  float64 `yaml:"pixels_per_meter"`
	Mass            float64 `yaml:"mass"`
	Gravity         float64 `yaml:"gravity"`
	MainEngineForce float64 `yaml:"main_engine_force"`
	SideEngineForce float64 `yaml:"side_engine_force"`
	LinearDamping   float64 `yaml:"linear_damping"`
	AngularDamping  float64 `yaml:"angular_damping"`
}

// LanderSettings defines the vehicle shape and fuel budget.
type LanderSettings struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	LegLength    int     `yaml:"leg_length"`
	LegSpread    float64 `yaml:"leg_spread"`
	InitialFuel  float64 `yaml:"initial_fuel"`
	MainFuelCost float64 `yaml:"main_fuel_cost"`
	SideFuelCost float64 `yaml:"side_fuel_cost"`
}

// TerrainSettings defines the ground generator.
type TerrainSettings struct {
	GroundHeight int `yaml:"ground_height"`
	PadWidth     int `yaml:"pad_width"`
	Roughness    int `yaml:"roughness"`
	StepWidth    int `yaml:"step_width"`
	HeightBand   int `yaml:"height_band"`
}

// LandingSettings defines what counts as a safe touchdown.
type LandingSettings struct {
	SafeVelocity float64 `yaml:"safe_velocity"`  // px/s
	SafeAngleDeg float64 `yaml:"safe_angle_deg"` // degrees
	PadTolerance float64 `yaml:"pad_tolerance"`  // px
}

// ObservationSettings defines the normalization of the observation vector.
type ObservationSettings struct {
	PosNormalization float64 `yaml:"pos_normalization"`
	VelNormalization float64 `yaml:"vel_normalization"`
}

// RewardSettings defines the terminal rewards per outcome.
type RewardSettings struct {
	Landing     float64 `yaml:"landing"`
	Crash       float64 `yaml:"crash"`
	OutOfBounds float64 `yaml:"out_of_bounds"`
	OutOfFuel   float64 `yaml:"out_of_fuel"`
}

// EpisodeSettings defines the headless episode shape.
type EpisodeSettings struct {
	Landers  int `yaml:"landers"`
	MaxSteps int `yaml:"max_steps"`
	MinSteps int `yaml:"min_steps"` // steps before an all-idle episode may end early
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "episode", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Episodes/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	RoughnessMultiplier float64 `yaml:"roughness_multiplier"` // Added to the roughness factor at max difficulty
	FuelReduction       float64 `yaml:"fuel_reduction"`       // Fraction of fuel removed at max difficulty
	PadReduction        int     `yaml:"pad_reduction"`        // Pad width reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
