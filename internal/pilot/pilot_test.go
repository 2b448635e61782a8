package pilot

import (
	"testing"

	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

func obs(set map[int]float64) lander.Observation {
	var o lander.Observation
	for i, v := range set {
		o[i] = v
	}
	return o
}

func TestAutopilotDecisions(t *testing.T) {
	tests := []struct {
		name string
		obs  lander.Observation
		want lander.Action
	}{
		{"settled over pad", obs(nil), lander.Noop},
		{"sinking fast", obs(map[int]float64{lander.ObsVelY: 0.5, lander.ObsPadDY: 0.5}), lander.Main},
		{"slow descent high up", obs(map[int]float64{lander.ObsVelY: 0.2, lander.ObsPadDY: 0.5}), lander.Noop},
		{"tilted right overrides thrust", obs(map[int]float64{lander.ObsAngle: 0.2, lander.ObsVelY: 1}), lander.Left},
		{"tilted left overrides thrust", obs(map[int]float64{lander.ObsAngle: -0.2, lander.ObsVelY: 1}), lander.Right},
		{"small tilt corrected", obs(map[int]float64{lander.ObsAngle: 0.015}), lander.Left},
		{"within deadband", obs(map[int]float64{lander.ObsAngle: 0.005}), lander.Noop},
		{"lean toward pad on the right", obs(map[int]float64{lander.ObsPadDX: 0.2, lander.ObsPadDY: 0.5}), lander.Right},
		{"lean toward pad on the left", obs(map[int]float64{lander.ObsPadDX: -0.2, lander.ObsPadDY: 0.5}), lander.Left},
		{"hover while far and low", obs(map[int]float64{lander.ObsPadDX: 0.2, lander.ObsPadDY: 0.1}), lander.Main},
	}

	a := NewAutopilot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Act(tt.obs); got != tt.want {
				t.Errorf("Act() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotCustomGains(t *testing.T) {
	g := DefaultGains()
	g.MinDescent = 1
	a := NewAutopilotWithGains(g)
	if a.Gains() != g {
		t.Errorf("Gains() = %+v, want %+v", a.Gains(), g)
	}
	// A generous sink limit leaves the main engine off.
	if got := a.Act(obs(map[int]float64{lander.ObsVelY: 0.5})); got != lander.Noop {
		t.Errorf("Act() = %v, want noop", got)
	}
}

func TestIdle(t *testing.T) {
	var p Idle
	for _, o := range []lander.Observation{obs(nil), obs(map[int]float64{lander.ObsVelY: 5, lander.ObsAngle: 0.5})} {
		if got := p.Act(o); got != lander.Noop {
			t.Errorf("Act() = %v, want noop", got)
		}
	}
}

func TestRandomReproducible(t *testing.T) {
	p := NewRandom(42)
	first := make([]lander.Action, 50)
	for i := range first {
		first[i] = p.Act(obs(nil))
		if first[i] < 0 || int(first[i]) >= lander.NumActions {
			t.Fatalf("action %d out of range: %v", i, first[i])
		}
	}

	p.Reset()
	for i, want := range first {
		if got := p.Act(obs(nil)); got != want {
			t.Fatalf("after Reset, action %d = %v, want %v", i, got, want)
		}
	}
}

func TestReplay(t *testing.T) {
	script := []lander.Action{lander.Main, lander.Left, lander.Right}
	p := NewReplay(script)
	script[0] = lander.Noop // the pilot keeps its own copy

	want := []lander.Action{lander.Main, lander.Left, lander.Right, lander.Noop, lander.Noop}
	for i, w := range want {
		if got := p.Act(obs(nil)); got != w {
			t.Errorf("step %d: Act() = %v, want %v", i, got, w)
		}
	}
	if !p.Done() {
		t.Error("Done() = false after the script ran out")
	}

	p.Reset()
	if p.Done() {
		t.Error("Done() = true after Reset")
	}
	if got := p.Act(obs(nil)); got != lander.Main {
		t.Errorf("after Reset, Act() = %v, want main", got)
	}
}

func TestLinearDefaultPolicy(t *testing.T) {
	p := NewDefaultLinear()
	tests := []struct {
		name string
		obs  lander.Observation
		want lander.Action
	}{
		{"level and slow", obs(nil), lander.Noop},
		{"sinking", obs(map[int]float64{lander.ObsVelY: 0.5}), lander.Main},
		{"tilted right", obs(map[int]float64{lander.ObsAngle: 0.2}), lander.Left},
		{"tilted left", obs(map[int]float64{lander.ObsAngle: -0.2}), lander.Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Act(tt.obs); got != tt.want {
				t.Errorf("Act() = %v, want %v (scores %v)", got, tt.want, p.Scores(tt.obs))
			}
		})
	}
}

func TestLinearScores(t *testing.T) {
	w := make([]float64, lander.NumActions*lander.ObservationSize)
	w[2*lander.ObservationSize+lander.ObsFuel] = 2 // main scores 2*fuel
	p, err := NewLinear(w, []float64{0.5, 0, 0, 0})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}

	got := p.Scores(obs(map[int]float64{lander.ObsFuel: 1}))
	want := []float64{0.5, 0, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scores()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if a := p.Act(obs(nil)); a != lander.Noop {
		t.Errorf("Act() with no fuel = %v, want noop", a)
	}
}

func TestNewLinearRejectsBadShapes(t *testing.T) {
	if _, err := NewLinear(make([]float64, 3), make([]float64, lander.NumActions)); err == nil {
		t.Error("NewLinear() accepted short weights")
	}
	if _, err := NewLinear(make([]float64, lander.NumActions*lander.ObservationSize), nil); err == nil {
		t.Error("NewLinear() accepted missing bias")
	}
}

func TestPilotsRegistered(t *testing.T) {
	for _, id := range []string{"autopilot", "idle", "linear", "random"} {
		p, err := registry.CreatePilot(id)
		if err != nil {
			t.Errorf("CreatePilot(%q) error = %v", id, err)
			continue
		}
		if p.Name() != id {
			t.Errorf("CreatePilot(%q).Name() = %q", id, p.Name())
		}
		if p.Description() == "" {
			t.Errorf("pilot %q has no description", id)
		}
	}
}
