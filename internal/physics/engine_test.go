package physics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/core"
)

const tol = 1e-9

// lunar returns the 800x600 lander body in SI units.
func lunar() Config {
	return Config{
		Mass:            100,
		Width:           1,
		Height:          1.5,
		Gravity:         2,
		MainEngineForce: 1500,
		SideEngineForce: 250,
		LinearDrag:      0.1,
		AngularDrag:     0.5,
		DT:              1.0 / 60,
	}
}

func newEngine(t *testing.T, cfg Config, s State) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, s)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"zero dt", func(c *Config) { c.DT = 0 }},
		{"negative linear drag", func(c *Config) { c.LinearDrag = -0.1 }},
		{"negative angular drag", func(c *Config) { c.AngularDrag = -1 }},
		{"NaN gravity", func(c *Config) { c.Gravity = math.NaN() }},
		{"infinite force", func(c *Config) { c.MainEngineForce = math.Inf(1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := lunar()
			tc.mutate(&cfg)
			_, err := NewEngine(cfg, State{})
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("NewEngine() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestMomentOfInertia(t *testing.T) {
	e := newEngine(t, lunar(), State{})
	expected := 100.0 / 12 * (1 + 2.25)
	if !scalar.EqualWithinAbs(e.MomentOfInertia(), expected, tol) {
		t.Errorf("MomentOfInertia() = %v, expected %v", e.MomentOfInertia(), expected)
	}
}

func TestFreeFallClosedForm(t *testing.T) {
	cfg := lunar()
	cfg.LinearDrag = 0
	cfg.AngularDrag = 0
	y0, v0 := 10.0, 1.5
	e := newEngine(t, cfg, State{Position: r2.Vec{X: 3, Y: y0}, Velocity: r2.Vec{Y: v0}})

	const n = 120
	var s State
	for i := 0; i < n; i++ {
		s = e.Step(Thrusters{})
	}

	tt := n * cfg.DT
	wantY := y0 + v0*tt + 0.5*cfg.Gravity*tt*tt
	wantV := v0 + cfg.Gravity*tt
	if !scalar.EqualWithinAbs(s.Position.Y, wantY, 1e-9) {
		t.Errorf("Position.Y = %v, expected %v", s.Position.Y, wantY)
	}
	if !scalar.EqualWithinAbs(s.Velocity.Y, wantV, 1e-9) {
		t.Errorf("Velocity.Y = %v, expected %v", s.Velocity.Y, wantV)
	}
	if s.Position.X != 3 || s.Velocity.X != 0 {
		t.Errorf("horizontal motion in free fall: pos %v vel %v", s.Position, s.Velocity)
	}
	if s.Angle != 0 || s.AngularVelocity != 0 {
		t.Errorf("rotation in free fall: angle %v omega %v", s.Angle, s.AngularVelocity)
	}
}

func TestFallFromRestIsMonotonic(t *testing.T) {
	e := newEngine(t, lunar(), State{Position: r2.Vec{X: 400, Y: 60}})

	prev := e.State()
	for i := range 60 {
		s := e.Step(Thrusters{})
		if s.Velocity.Y <= prev.Velocity.Y {
			t.Fatalf("step %d: Velocity.Y = %v, did not grow past %v", i, s.Velocity.Y, prev.Velocity.Y)
		}
		if s.Position.Y <= prev.Position.Y {
			t.Fatalf("step %d: Position.Y = %v, did not advance past %v", i, s.Position.Y, prev.Position.Y)
		}
		if s.Position.X != 400 || s.Angle != 0 {
			t.Fatalf("step %d: drifted to x=%v angle=%v", i, s.Position.X, s.Angle)
		}
		prev = s
	}
}

func TestSingleStepFromRest(t *testing.T) {
	cfg := lunar()
	e := newEngine(t, cfg, State{})
	s := e.Step(Thrusters{})

	dt := cfg.DT
	if !scalar.EqualWithinAbs(s.Velocity.Y, cfg.Gravity*dt, tol) {
		t.Errorf("Velocity.Y = %v, expected %v", s.Velocity.Y, cfg.Gravity*dt)
	}
	if !scalar.EqualWithinAbs(s.Position.Y, 0.5*cfg.Gravity*dt*dt, tol) {
		t.Errorf("Position.Y = %v, expected %v", s.Position.Y, 0.5*cfg.Gravity*dt*dt)
	}
}

func TestMainEngineUpright(t *testing.T) {
	cfg := lunar()
	e := newEngine(t, cfg, State{})
	s := e.Step(Thrusters{Main: true})

	acc := cfg.Gravity - cfg.MainEngineForce/cfg.Mass
	if !scalar.EqualWithinAbs(s.Velocity.Y, acc*cfg.DT, tol) {
		t.Errorf("Velocity.Y = %v, expected %v", s.Velocity.Y, acc*cfg.DT)
	}
	if s.Velocity.X != 0 {
		t.Errorf("Velocity.X = %v, expected 0", s.Velocity.X)
	}
	// Upright main engine thrusts along its lever arm.
	if s.AngularVelocity != 0 || s.Angle != 0 {
		t.Errorf("main engine produced rotation: omega %v angle %v", s.AngularVelocity, s.Angle)
	}
}

func TestSideThrusterTorque(t *testing.T) {
	cfg := lunar()
	dt := cfg.DT
	alpha := 0.5 * cfg.Width * cfg.SideEngineForce / (cfg.Mass / 12 * (cfg.Width*cfg.Width + cfg.Height*cfg.Height))

	tests := []struct {
		name      string
		th        Thrusters
		wantOmega float64
	}{
		{"left spins negative", Thrusters{Left: true}, -alpha * dt},
		{"right spins positive", Thrusters{Right: true}, alpha * dt},
		{"both cancel", Thrusters{Left: true, Right: true}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(t, cfg, State{})
			s := e.Step(tc.th)
			if !scalar.EqualWithinAbs(s.AngularVelocity, tc.wantOmega, tol) {
				t.Errorf("AngularVelocity = %v, expected %v", s.AngularVelocity, tc.wantOmega)
			}
			if !scalar.EqualWithinAbs(s.Angle, 0.5*tc.wantOmega*dt, tol) {
				t.Errorf("Angle = %v, expected %v", s.Angle, 0.5*tc.wantOmega*dt)
			}
		})
	}
}

func TestMainEngineRotated(t *testing.T) {
	cfg := lunar()
	cfg.Gravity = 0
	angle := math.Pi / 2
	e := newEngine(t, cfg, State{Angle: angle})
	s := e.Step(Thrusters{Main: true})

	// Rotating (0, -F) by +90° gives (+F, 0).
	wantVX := cfg.MainEngineForce / cfg.Mass * cfg.DT
	if !scalar.EqualWithinAbs(s.Velocity.X, wantVX, 1e-9) {
		t.Errorf("Velocity.X = %v, expected %v", s.Velocity.X, wantVX)
	}
	if !scalar.EqualWithinAbs(s.Velocity.Y, 0, 1e-9) {
		t.Errorf("Velocity.Y = %v, expected 0", s.Velocity.Y)
	}
	if !scalar.EqualWithinAbs(s.AngularVelocity, 0, 1e-9) {
		t.Errorf("AngularVelocity = %v, expected 0", s.AngularVelocity)
	}
}

func TestDragDampsPreviousVelocity(t *testing.T) {
	cfg := lunar()
	cfg.Gravity = 0
	v0 := r2.Vec{X: 4, Y: -2}
	omega0 := 1.2
	e := newEngine(t, cfg, State{Velocity: v0, AngularVelocity: omega0})
	s := e.Step(Thrusters{})

	lin := math.Exp(-cfg.LinearDrag * cfg.DT)
	ang := math.Exp(-cfg.AngularDrag * cfg.DT)
	if !scalar.EqualWithinAbs(s.Velocity.X, v0.X*lin, tol) || !scalar.EqualWithinAbs(s.Velocity.Y, v0.Y*lin, tol) {
		t.Errorf("Velocity = %v, expected %v", s.Velocity, r2.Scale(lin, v0))
	}
	if !scalar.EqualWithinAbs(s.AngularVelocity, omega0*ang, tol) {
		t.Errorf("AngularVelocity = %v, expected %v", s.AngularVelocity, omega0*ang)
	}
	// Position integrates the undamped previous velocity.
	if !scalar.EqualWithinAbs(s.Position.X, v0.X*cfg.DT, tol) {
		t.Errorf("Position.X = %v, expected %v", s.Position.X, v0.X*cfg.DT)
	}
}

func TestAngleStaysNormalized(t *testing.T) {
	cfg := lunar()
	cfg.AngularDrag = 0
	e := newEngine(t, cfg, State{Angle: 3, AngularVelocity: 40})

	for i := 0; i < 600; i++ {
		s := e.Step(Thrusters{Right: i%2 == 0})
		if s.Angle <= -math.Pi || s.Angle > math.Pi {
			t.Fatalf("step %d: angle %v outside (-π, π]", i, s.Angle)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{math.Pi / 3, math.Pi / 3},
		{2*math.Pi + 0.25, 0.25},
		{-2*math.Pi - 0.25, -0.25},
		{3 * math.Pi / 2, -math.Pi / 2},
	}

	for _, tc := range tests {
		if got := NormalizeAngle(tc.in); !scalar.EqualWithinAbs(got, tc.expected, 1e-12) {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := []Thrusters{{Main: true}, {Left: true}, {}, {Right: true}, {Main: true, Left: true}}
	start := State{Position: r2.Vec{X: 20, Y: 3}, Velocity: r2.Vec{X: 0.5}, Angle: 0.1}

	run := func() State {
		e := newEngine(t, lunar(), start)
		var s State
		for i := 0; i < 300; i++ {
			s = e.Step(script[i%len(script)])
		}
		return s
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("replays diverged: %+v vs %+v", a, b)
	}
}

func TestSetStateNormalizes(t *testing.T) {
	e := newEngine(t, lunar(), State{})
	e.SetState(State{Angle: 2*math.Pi + 0.5})
	if !scalar.EqualWithinAbs(e.State().Angle, 0.5, 1e-12) {
		t.Errorf("State().Angle = %v, expected 0.5", e.State().Angle)
	}
}
