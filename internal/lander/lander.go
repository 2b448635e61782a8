// Package lander wraps the physics engine with fuel, discrete actions and
// pixel-space geometry. The engine works in meters; everything the lander
// exposes is in pixels.
package lander

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// Action is a discrete control input. Exactly one thruster fires per step.
type Action int

const (
	Noop Action = iota
	Left
	Main
	Right
)

// NumActions is the size of the action space.
const NumActions = 4

func (a Action) String() string {
	switch a {
	case Noop:
		return "noop"
	case Left:
		return "left"
	case Main:
		return "main"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Thrusters maps the action to engine inputs. Unknown codes fire nothing.
func (a Action) Thrusters() physics.Thrusters {
	switch a {
	case Left:
		return physics.Thrusters{Left: true}
	case Main:
		return physics.Thrusters{Main: true}
	case Right:
		return physics.Thrusters{Right: true}
	default:
		return physics.Thrusters{}
	}
}

// TerminateReason records why a lander stopped.
type TerminateReason string

const (
	ReasonNone        TerminateReason = ""
	ReasonLanded      TerminateReason = "landed"
	ReasonCrashed     TerminateReason = "crashed"
	ReasonOutOfBounds TerminateReason = "out_of_bounds"
	ReasonOutOfFuel   TerminateReason = "out_of_fuel"
)

// Config describes the lander in render units. Forces and mass are SI.
type Config struct {
	PixelsPerMeter   float64
	Mass             float64
	Width            float64 // px
	Height           float64 // px
	LegLength        float64 // px
	LegSpread        float64 // outward foot offset as a fraction of LegLength
	Gravity          float64 // px/s²
	MainEngineForce  float64
	SideEngineForce  float64
	LinearDrag       float64
	AngularDrag      float64
	DT               float64
	InitialFuel      float64
	MainFuelCost     float64
	SideFuelCost     float64
	PosNormalization float64
	VelNormalization float64
}

// Physics converts the pixel config to the engine's SI config.
func (c Config) Physics() physics.Config {
	return physics.Config{
		Mass:            c.Mass,
		Width:           c.Width / c.PixelsPerMeter,
		Height:          c.Height / c.PixelsPerMeter,
		Gravity:         c.Gravity / c.PixelsPerMeter,
		MainEngineForce: c.MainEngineForce,
		SideEngineForce: c.SideEngineForce,
		LinearDrag:      c.LinearDrag,
		AngularDrag:     c.AngularDrag,
		DT:              c.DT,
	}
}

// Validate checks the lander-specific parameters. Body parameters are
// checked by the physics engine.
func (c Config) Validate() error {
	if !core.Finite(c.PixelsPerMeter, c.LegLength, c.LegSpread, c.InitialFuel,
		c.MainFuelCost, c.SideFuelCost, c.PosNormalization, c.VelNormalization) {
		return fmt.Errorf("lander: non-finite parameter: %w", core.ErrInvalidConfig)
	}
	switch {
	case c.PixelsPerMeter <= 0:
		return fmt.Errorf("lander: pixels per meter must be positive, got %v: %w", c.PixelsPerMeter, core.ErrInvalidConfig)
	case c.InitialFuel <= 0:
		return fmt.Errorf("lander: initial fuel must be positive, got %v: %w", c.InitialFuel, core.ErrInvalidConfig)
	case c.MainFuelCost < 0 || c.SideFuelCost < 0:
		return fmt.Errorf("lander: fuel costs must be non-negative: %w", core.ErrInvalidConfig)
	case c.LegLength < 0 || c.LegSpread < 0:
		return fmt.Errorf("lander: leg geometry must be non-negative: %w", core.ErrInvalidConfig)
	case c.PosNormalization <= 0 || c.VelNormalization <= 0:
		return fmt.Errorf("lander: normalization factors must be positive: %w", core.ErrInvalidConfig)
	}
	return nil
}

// Lander is one controllable vehicle over a shared terrain.
type Lander struct {
	cfg     Config
	engine  *physics.Engine
	terrain *terrain.Terrain

	fuel       float64
	terminated bool
	reason     TerminateReason
}

// New spawns a lander at pixel (x, y) at rest and upright with full fuel.
// The terrain is only read, for the pad-relative observation terms, and may
// be nil.
func New(x, y float64, cfg Config, t *terrain.Terrain) (*Lander, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := physics.State{Position: r2.Vec{X: x / cfg.PixelsPerMeter, Y: y / cfg.PixelsPerMeter}}
	engine, err := physics.NewEngine(cfg.Physics(), start)
	if err != nil {
		return nil, fmt.Errorf("lander: %w", err)
	}
	return &Lander{
		cfg:     cfg,
		engine:  engine,
		terrain: t,
		fuel:    cfg.InitialFuel,
	}, nil
}

// Step applies one action for one physics tick and returns the new
// observation. A terminated or empty lander does not move.
func (l *Lander) Step(a Action) Observation {
	if !l.Active() || l.fuel <= 0 {
		return l.Observation()
	}

	switch a {
	case Main:
		l.fuel -= l.cfg.MainFuelCost
	case Left, Right:
		l.fuel -= l.cfg.SideFuelCost
	}
	l.fuel = math.Max(0, l.fuel)

	l.engine.Step(a.Thrusters())
	return l.Observation()
}

// Terminate deactivates the lander. Only the first reason is kept.
func (l *Lander) Terminate(reason TerminateReason) {
	if l.terminated {
		return
	}
	l.terminated = true
	l.reason = reason
}

// Active reports whether the lander still responds to actions.
func (l *Lander) Active() bool { return !l.terminated }

// Terminated reports whether Terminate has been called.
func (l *Lander) Terminated() bool { return l.terminated }

// Reason returns the termination reason, empty while active.
func (l *Lander) Reason() TerminateReason { return l.reason }

// Fuel returns the remaining fuel.
func (l *Lander) Fuel() float64 { return l.fuel }

// Config returns the lander parameters.
func (l *Lander) Config() Config { return l.cfg }

// Terrain returns the terrain the lander observes, possibly nil.
func (l *Lander) Terrain() *terrain.Terrain { return l.terrain }

// PhysicsState returns the raw engine state in SI units.
func (l *Lander) PhysicsState() physics.State { return l.engine.State() }

// X returns the horizontal center position in pixels.
func (l *Lander) X() float64 { return l.engine.State().Position.X * l.cfg.PixelsPerMeter }

// Y returns the vertical center position in pixels.
func (l *Lander) Y() float64 { return l.engine.State().Position.Y * l.cfg.PixelsPerMeter }

// Position returns the center position in pixels.
func (l *Lander) Position() r2.Vec { return r2.Vec{X: l.X(), Y: l.Y()} }

// VelocityX returns the horizontal velocity in pixels per second.
func (l *Lander) VelocityX() float64 { return l.engine.State().Velocity.X * l.cfg.PixelsPerMeter }

// VelocityY returns the vertical velocity in pixels per second, positive
// when falling.
func (l *Lander) VelocityY() float64 { return l.engine.State().Velocity.Y * l.cfg.PixelsPerMeter }

// Angle returns the body angle in radians.
func (l *Lander) Angle() float64 { return l.engine.State().Angle }

// AngularVelocity returns the spin in radians per second.
func (l *Lander) AngularVelocity() float64 { return l.engine.State().AngularVelocity }

// toWorld rotates a body-frame pixel offset by the current angle, moves it
// to the lander position and truncates to a pixel.
func (l *Lander) toWorld(p r2.Vec) core.Point {
	w := r2.Add(r2.Rotate(p, l.Angle(), r2.Vec{}), l.Position())
	return core.Pt(w.X, w.Y)
}

// Vertices returns the hull corners in order top-left, top-right,
// bottom-right, bottom-left.
func (l *Lander) Vertices() [4]core.Point {
	hw, hh := l.cfg.Width/2, l.cfg.Height/2
	return [4]core.Point{
		l.toWorld(r2.Vec{X: -hw, Y: -hh}),
		l.toWorld(r2.Vec{X: hw, Y: -hh}),
		l.toWorld(r2.Vec{X: hw, Y: hh}),
		l.toWorld(r2.Vec{X: -hw, Y: hh}),
	}
}

// Legs returns the left and right legs, each from a bottom hull corner to
// its foot.
func (l *Lander) Legs() [2]core.Segment {
	hw, hh := l.cfg.Width/2, l.cfg.Height/2
	out := l.cfg.LegSpread * l.cfg.LegLength
	return [2]core.Segment{
		{
			From: l.toWorld(r2.Vec{X: -hw, Y: hh}),
			To:   l.toWorld(r2.Vec{X: -hw - out, Y: hh + l.cfg.LegLength}),
		},
		{
			From: l.toWorld(r2.Vec{X: hw, Y: hh}),
			To:   l.toWorld(r2.Vec{X: hw + out, Y: hh + l.cfg.LegLength}),
		},
	}
}

// Feet returns the left and right foot points.
func (l *Lander) Feet() [2]core.Point {
	legs := l.Legs()
	return [2]core.Point{legs[0].To, legs[1].To}
}

var _ terrain.Geometry = (*Lander)(nil)
