package lander

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// testConfig mirrors the 800x600 scaled settings.
func testConfig() Config {
	return Config{
		PixelsPerMeter:   20,
		Mass:             100,
		Width:            20,
		Height:           30,
		LegLength:        10,
		LegSpread:        0.7,
		Gravity:          40,
		MainEngineForce:  1500,
		SideEngineForce:  250,
		LinearDrag:       0.1,
		AngularDrag:      0.5,
		DT:               1.0 / 60,
		InitialFuel:      200,
		MainFuelCost:     1,
		SideFuelCost:     0.5,
		PosNormalization: 300,
		VelNormalization: 160,
	}
}

// flatTerrain is level at y=550 with the pad centered at x=400.
func flatTerrain(t *testing.T) *terrain.Terrain {
	t.Helper()
	tr, err := terrain.New(terrain.Config{
		Width:        800,
		Height:       600,
		GroundHeight: 550,
		PadWidth:     100,
		PadCenter:    400,
		Roughness:    0,
		StepWidth:    20,
		HeightBand:   50,
		PadTolerance: 5,
		SafeVelocity: 80,
		SafeAngle:    18 * math.Pi / 180,
	}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("terrain.New() error = %v", err)
	}
	return tr
}

func newLander(t *testing.T, x, y float64, cfg Config, tr *terrain.Terrain) *Lander {
	t.Helper()
	l, err := New(x, y, cfg, tr)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

// setAngle rotates the lander in place.
func setAngle(l *Lander, angle float64) {
	s := l.engine.State()
	s.Angle = angle
	l.engine.SetState(s)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scale", func(c *Config) { c.PixelsPerMeter = 0 }},
		{"no fuel", func(c *Config) { c.InitialFuel = 0 }},
		{"negative fuel cost", func(c *Config) { c.SideFuelCost = -1 }},
		{"zero position normalization", func(c *Config) { c.PosNormalization = 0 }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"zero dt", func(c *Config) { c.DT = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := New(400, 100, cfg, nil); !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigPhysics(t *testing.T) {
	p := testConfig().Physics()
	expected := physics.Config{
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
	if p != expected {
		t.Errorf("Physics() = %+v, expected %+v", p, expected)
	}
}

func TestSpawn(t *testing.T) {
	l := newLander(t, 400, 120, testConfig(), nil)

	if l.X() != 400 || l.Y() != 120 {
		t.Errorf("position = (%v, %v), expected (400, 120)", l.X(), l.Y())
	}
	if l.VelocityX() != 0 || l.VelocityY() != 0 || l.Angle() != 0 || l.AngularVelocity() != 0 {
		t.Error("lander should spawn at rest and upright")
	}
	if l.Fuel() != 200 {
		t.Errorf("Fuel() = %v, expected 200", l.Fuel())
	}
	if !l.Active() || l.Terminated() || l.Reason() != ReasonNone {
		t.Error("lander should spawn active")
	}
}

func TestFuelConsumption(t *testing.T) {
	tests := []struct {
		action   Action
		expected float64
	}{
		{Noop, 200},
		{Left, 199.5},
		{Main, 199},
		{Right, 199.5},
		{Action(9), 200},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			l := newLander(t, 400, 100, testConfig(), nil)
			l.Step(tc.action)
			if l.Fuel() != tc.expected {
				t.Errorf("Fuel() = %v, expected %v", l.Fuel(), tc.expected)
			}
		})
	}
}

func TestFuelClampsAtZero(t *testing.T) {
	cfg := testConfig()
	cfg.InitialFuel = 0.75
	l := newLander(t, 400, 100, cfg, nil)

	l.Step(Main)
	if l.Fuel() != 0 {
		t.Errorf("Fuel() = %v, expected 0", l.Fuel())
	}
	if l.Y() == 100 {
		t.Error("the step that drains the tank should still move the lander")
	}
}

func TestObservation(t *testing.T) {
	const ppm = 20 // testConfig pixels per meter

	tests := []struct {
		name    string
		x, y    float64
		vx, vy  float64 // px/s
		angle   float64
		omega   float64
		fuel    float64
		terrain bool
		want    Observation
	}{
		{
			name: "above the pad", x: 400, y: 100, vx: 32, vy: -16, angle: 0.5, omega: 0.25, fuel: 200, terrain: true,
			want: Observation{1.0 / 3, -2.0 / 3, 0.2, -0.1, 0.5 / math.Pi, 0.25, 0, 0.75, 1},
		},
		{
			name: "left of the pad", x: 200, y: 250, vx: -80, vy: 48, angle: -math.Pi / 2, omega: -1, fuel: 50, terrain: true,
			want: Observation{-1.0 / 3, -1.0 / 6, -0.5, 0.3, -0.5, -1, 0.25, 0.5, 0.25},
		},
		{
			name: "clamped up and left", x: -600, y: -700, fuel: 200, terrain: true,
			want: Observation{-3, -1 - 7.0/3, 0, 0, 0, 0, 1, 1, 1},
		},
		{
			name: "clamped down and right", x: 1400, y: 1300, fuel: 0, terrain: true,
			want: Observation{1400.0/300 - 1, 1300.0/300 - 1, 0, 0, 0, 0, -1, -1, 0},
		},
		{
			name: "no terrain", x: 400, y: 100, vy: 160, fuel: 100,
			want: Observation{1.0 / 3, -2.0 / 3, 0, 1, 0, 0, 0, 0, 0.5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tr *terrain.Terrain
			if tc.terrain {
				tr = flatTerrain(t)
			}
			l := newLander(t, tc.x, tc.y, testConfig(), tr)
			s := l.engine.State()
			s.Velocity = r2.Vec{X: tc.vx / ppm, Y: tc.vy / ppm}
			s.Angle = tc.angle
			s.AngularVelocity = tc.omega
			l.engine.SetState(s)
			l.fuel = tc.fuel

			got := l.Observation()
			for i := range ObservationSize {
				if !scalar.EqualWithinAbs(got[i], tc.want[i], 1e-9) {
					t.Errorf("obs[%d] = %v, expected %v", i, got[i], tc.want[i])
				}
			}

			v, sl := got.Vec(), got.Slice()
			if v.Len() != ObservationSize || len(sl) != ObservationSize {
				t.Fatalf("Vec len %d, Slice len %d", v.Len(), len(sl))
			}
			for i := range ObservationSize {
				if v.AtVec(i) != sl[i] {
					t.Errorf("Vec()[%d] = %v, Slice()[%d] = %v", i, v.AtVec(i), i, sl[i])
				}
			}
			sl[ObsX] = 99
			if got[ObsX] == 99 {
				t.Error("Slice() aliases the observation")
			}
		})
	}
}

func TestEmptyTankFreezes(t *testing.T) {
	cfg := testConfig()
	cfg.InitialFuel = 1
	l := newLander(t, 400, 100, cfg, nil)
	l.Step(Main)

	before := l.PhysicsState()
	obs := l.Observation()
	for _, a := range []Action{Noop, Main, Left} {
		if got := l.Step(a); got != obs {
			t.Errorf("Step(%v) observation changed with an empty tank", a)
		}
	}
	if l.PhysicsState() != before {
		t.Error("physics advanced with an empty tank")
	}
}

func TestTerminatedLanderIgnoresActions(t *testing.T) {
	l := newLander(t, 400, 100, testConfig(), nil)
	l.Terminate(ReasonCrashed)
	l.Terminate(ReasonLanded)

	if l.Active() || !l.Terminated() {
		t.Error("Terminate() should deactivate the lander")
	}
	if l.Reason() != ReasonCrashed {
		t.Errorf("Reason() = %q, expected %q", l.Reason(), ReasonCrashed)
	}

	before := l.PhysicsState()
	l.Step(Main)
	if l.PhysicsState() != before || l.Fuel() != 200 {
		t.Error("terminated lander should neither move nor burn fuel")
	}
}

func TestFallsUnderGravity(t *testing.T) {
	l := newLander(t, 400, 100, testConfig(), nil)
	l.Step(Noop)

	dt := 1.0 / 60
	if !scalar.EqualWithinAbs(l.VelocityY(), 40*dt, 1e-9) {
		t.Errorf("VelocityY() = %v, expected %v", l.VelocityY(), 40*dt)
	}
	if !scalar.EqualWithinAbs(l.Y(), 100+0.5*40*dt*dt, 1e-9) {
		t.Errorf("Y() = %v, expected %v", l.Y(), 100+0.5*40*dt*dt)
	}
}

func TestMainEngineLifts(t *testing.T) {
	l := newLander(t, 400, 300, testConfig(), nil)
	for i := 0; i < 30; i++ {
		l.Step(Main)
	}
	if l.VelocityY() >= 0 {
		t.Errorf("VelocityY() = %v, expected upward (negative) velocity", l.VelocityY())
	}
}

func TestSideThrustersRotate(t *testing.T) {
	left := newLander(t, 400, 300, testConfig(), nil)
	right := newLander(t, 400, 300, testConfig(), nil)
	for i := 0; i < 10; i++ {
		left.Step(Left)
		right.Step(Right)
	}
	if left.Angle() >= 0 {
		t.Errorf("left thruster angle = %v, expected negative", left.Angle())
	}
	if right.Angle() <= 0 {
		t.Errorf("right thruster angle = %v, expected positive", right.Angle())
	}
}

func TestVerticesUpright(t *testing.T) {
	l := newLander(t, 400, 300, testConfig(), nil)
	expected := [4]core.Point{{X: 390, Y: 285}, {X: 410, Y: 285}, {X: 410, Y: 315}, {X: 390, Y: 315}}
	if got := l.Vertices(); got != expected {
		t.Errorf("Vertices() = %v, expected %v", got, expected)
	}
}

func TestVerticesRotated(t *testing.T) {
	l := newLander(t, 400, 300, testConfig(), nil)
	setAngle(l, math.Pi/2)

	expected := [4]core.Point{{X: 415, Y: 290}, {X: 415, Y: 310}, {X: 385, Y: 310}, {X: 385, Y: 290}}
	if got := l.Vertices(); got != expected {
		t.Errorf("Vertices() = %v, expected %v", got, expected)
	}
}

func TestLegs(t *testing.T) {
	l := newLander(t, 400, 300, testConfig(), nil)

	expected := [2]core.Segment{
		{From: core.Point{X: 390, Y: 315}, To: core.Point{X: 383, Y: 325}},
		{From: core.Point{X: 410, Y: 315}, To: core.Point{X: 417, Y: 325}},
	}
	if got := l.Legs(); got != expected {
		t.Errorf("Legs() = %v, expected %v", got, expected)
	}
	if feet := l.Feet(); feet != [2]core.Point{{X: 383, Y: 325}, {X: 417, Y: 325}} {
		t.Errorf("Feet() = %v", feet)
	}

	setAngle(l, math.Pi/2)
	if feet := l.Feet(); feet != [2]core.Point{{X: 375, Y: 283}, {X: 375, Y: 317}} {
		t.Errorf("rotated Feet() = %v, expected [{375 283} {375 317}]", feet)
	}
}

func TestGeometryTruncates(t *testing.T) {
	l := newLander(t, 400.75, 300.5, testConfig(), nil)
	if got := l.Vertices()[0]; got != (core.Point{X: 390, Y: 285}) {
		t.Errorf("Vertices()[0] = %v, expected {390 285}", got)
	}
}

func TestRestingOnPadLands(t *testing.T) {
	tr := flatTerrain(t)
	l := newLander(t, 400, 521, testConfig(), tr)

	if !tr.CheckLanding(l, l.VelocityY()) {
		t.Errorf("CheckLanding() = false, report %+v", tr.Landing(l, l.VelocityY()))
	}
	if tr.CheckCollision(l) {
		t.Error("CheckCollision() = true for a lander resting on the pad")
	}
}

func TestTiltedOverPadDoesNotLand(t *testing.T) {
	tr := flatTerrain(t)
	l := newLander(t, 400, 521, testConfig(), tr)
	setAngle(l, 30*math.Pi/180)

	if tr.CheckLanding(l, 0) {
		t.Error("CheckLanding() = true at 30 degrees")
	}
	if tr.CheckCollision(l) {
		t.Error("CheckCollision() = true, hull should still be above ground")
	}
}

func TestDescentEndsInCollision(t *testing.T) {
	tr := flatTerrain(t)
	l := newLander(t, 200, 100, testConfig(), tr)

	for i := 0; i < 2000; i++ {
		l.Step(Noop)
		if tr.CheckCollision(l) {
			if tr.CheckLanding(l, l.VelocityY()) {
				t.Fatal("off-pad free fall reported a landing")
			}
			return
		}
	}
	t.Fatal("free fall never reached the ground")
}

func TestGeometryPosition(t *testing.T) {
	l := newLander(t, 123, 456, testConfig(), nil)
	if l.Position() != (r2.Vec{X: 123, Y: 456}) {
		t.Errorf("Position() = %v, expected {123 456}", l.Position())
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{Noop, "noop"},
		{Left, "left"},
		{Main, "main"},
		{Right, "right"},
		{Action(7), "action(7)"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
