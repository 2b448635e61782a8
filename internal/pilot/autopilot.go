// Package pilot contains scripted lander controllers. Each registers itself
// with the registry in init().
package pilot

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

func init() {
	registry.RegisterPilot("autopilot", func() registry.Pilot { return NewAutopilot() })
}

// Gains tune the autopilot. Distances and velocities are in observation
// units, angles in radians.
type Gains struct {
	Position   float64 // target tilt per unit of horizontal pad offset
	Velocity   float64 // target tilt per unit of horizontal velocity
	MaxTilt    float64
	Spin       float64 // angular velocity damping
	BigTilt    float64 // attitude error that overrides the main engine
	Deadband   float64
	MinDescent float64 // allowed sink rate at the pad
	Glide      float64 // extra sink rate per unit of height
	Far        float64 // horizontal offset beyond which the lander hovers
	Hover      float64 // height kept while still far from the pad
}

// DefaultGains returns gains that land from the default spawn height when
// the pad is within reach of the fuel budget.
func DefaultGains() Gains {
	return Gains{
		Position:   2.0,
		Velocity:   0.8,
		MaxTilt:    0.3,
		Spin:       0.4,
		BigTilt:    0.35,
		Deadband:   0.03,
		MinDescent: 0.06,
		Glide:      0.6,
		Far:        0.04,
		Hover:      0.2,
	}
}

// Autopilot is a rule-based controller. It tilts toward the pad, damps
// horizontal drift and fires the main engine whenever the sink rate exceeds
// a height-dependent limit. Attitude corrections win over thrust when the
// attitude error is large.
type Autopilot struct {
	gains Gains
}

// NewAutopilot creates an autopilot with DefaultGains.
func NewAutopilot() *Autopilot {
	return &Autopilot{gains: DefaultGains()}
}

// NewAutopilotWithGains creates an autopilot with custom gains.
func NewAutopilotWithGains(g Gains) *Autopilot {
	return &Autopilot{gains: g}
}

func (a *Autopilot) Name() string        { return "autopilot" }
func (a *Autopilot) Description() string { return "Rule-based controller that steers to the pad" }
func (a *Autopilot) Reset()              {}

// Gains returns the controller gains.
func (a *Autopilot) Gains() Gains { return a.gains }

// Act implements registry.Pilot.
func (a *Autopilot) Act(obs lander.Observation) lander.Action {
	g := a.gains
	dx, dy := obs[lander.ObsPadDX], obs[lander.ObsPadDY]
	vx, vy := obs[lander.ObsVelX], obs[lander.ObsVelY]
	angle := obs[lander.ObsAngle] * math.Pi
	spin := obs[lander.ObsAngularVel]

	target := core.ClampF(g.Position*dx-g.Velocity*vx, -g.MaxTilt, g.MaxTilt)
	err := target - angle - g.Spin*spin

	sink := g.MinDescent + g.Glide*math.Max(dy, 0)
	if math.Abs(dx) > g.Far {
		sink = math.Min(sink, g.Glide*(dy-g.Hover))
	}

	switch {
	case math.Abs(err) > g.BigTilt:
		return turn(err)
	case vy > sink:
		return lander.Main
	case err > g.Deadband:
		return lander.Right
	case err < -g.Deadband:
		return lander.Left
	}
	return lander.Noop
}

// turn returns the side thruster that rotates toward a positive or negative
// attitude error.
func turn(err float64) lander.Action {
	if err > 0 {
		return lander.Right
	}
	return lander.Left
}
