// Package physics integrates a rigid rectangular body driven by gravity and
// three fixed thrusters. Units are SI (meters, seconds, newtons, radians)
// with +y pointing down the screen.
package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Config holds the immutable body and integration parameters.
type Config struct {
	Mass            float64 // kg
	Width           float64 // m
	Height          float64 // m
	Gravity         float64 // m/s², positive pulls toward +y
	MainEngineForce float64 // N
	SideEngineForce float64 // N
	LinearDrag      float64 // 1/s
	AngularDrag     float64 // 1/s
	DT              float64 // s
}

// Validate checks that the config describes a physical body.
func (c Config) Validate() error {
	if !core.Finite(c.Mass, c.Width, c.Height, c.Gravity, c.MainEngineForce,
		c.SideEngineForce, c.LinearDrag, c.AngularDrag, c.DT) {
		return fmt.Errorf("physics: non-finite parameter: %w", core.ErrInvalidConfig)
	}
	switch {
	case c.Mass <= 0:
		return fmt.Errorf("physics: mass must be positive, got %v: %w", c.Mass, core.ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("physics: body size must be positive, got %vx%v: %w", c.Width, c.Height, core.ErrInvalidConfig)
	case c.DT <= 0:
		return fmt.Errorf("physics: dt must be positive, got %v: %w", c.DT, core.ErrInvalidConfig)
	case c.LinearDrag < 0 || c.AngularDrag < 0:
		return fmt.Errorf("physics: drag must be non-negative: %w", core.ErrInvalidConfig)
	}
	return nil
}

// State is the complete kinematic state of the body.
type State struct {
	Position        r2.Vec  // m
	Velocity        r2.Vec  // m/s
	Angle           float64 // rad, in (-π, π]
	AngularVelocity float64 // rad/s
}

// Thrusters selects which engines fire during one step.
type Thrusters struct {
	Main  bool
	Left  bool
	Right bool
}

// thruster is a body-frame force and its application point relative to the
// center of mass.
type thruster struct {
	force r2.Vec
	at    r2.Vec
}

// Engine owns one body and advances it by fixed time steps.
type Engine struct {
	cfg     Config
	inertia float64
	state   State

	main, left, right thruster
}

// NewEngine creates an engine for the given body, starting from initial.
func NewEngine(cfg Config, initial State) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hw, hh := cfg.Width/2, cfg.Height/2
	e := &Engine{
		cfg:     cfg,
		inertia: cfg.Mass / 12 * (cfg.Width*cfg.Width + cfg.Height*cfg.Height),
		main:    thruster{force: r2.Vec{Y: -cfg.MainEngineForce}, at: r2.Vec{Y: hh}},
		left:    thruster{force: r2.Vec{Y: cfg.SideEngineForce}, at: r2.Vec{X: -hw}},
		right:   thruster{force: r2.Vec{Y: cfg.SideEngineForce}, at: r2.Vec{X: hw}},
	}
	e.SetState(initial)
	return e, nil
}

// Config returns the body parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// MomentOfInertia returns m/12·(w²+h²).
func (e *Engine) MomentOfInertia() float64 {
	return e.inertia
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// SetState replaces the current state. The angle is normalized.
func (e *Engine) SetState(s State) {
	s.Angle = NormalizeAngle(s.Angle)
	e.state = s
}

// Step advances the body by one DT with the given thrusters and returns the
// new state.
func (e *Engine) Step(th Thrusters) State {
	s := e.state
	dt := e.cfg.DT

	acc := r2.Vec{Y: e.cfg.Gravity}
	torque := 0.0
	apply := func(t thruster) {
		f := r2.Rotate(t.force, s.Angle, r2.Vec{})
		p := r2.Rotate(t.at, s.Angle, r2.Vec{})
		acc = r2.Add(acc, r2.Scale(1/e.cfg.Mass, f))
		torque += r2.Cross(p, f)
	}
	if th.Main {
		apply(e.main)
	}
	if th.Left {
		apply(e.left)
	}
	if th.Right {
		apply(e.right)
	}
	alpha := torque / e.inertia

	linDamp := math.Exp(-e.cfg.LinearDrag * dt)
	angDamp := math.Exp(-e.cfg.AngularDrag * dt)

	next := State{
		Velocity:        r2.Add(r2.Scale(linDamp, s.Velocity), r2.Scale(dt, acc)),
		AngularVelocity: s.AngularVelocity*angDamp + alpha*dt,
		Position: r2.Add(s.Position,
			r2.Add(r2.Scale(dt, s.Velocity), r2.Scale(0.5*dt*dt, acc))),
		Angle: NormalizeAngle(s.Angle + s.AngularVelocity*dt + 0.5*alpha*dt*dt),
	}
	e.state = next
	return next
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}
