package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
)

// flatSettings returns default settings over a flat world with progression
// off, so every episode is identical.
func flatSettings() config.Settings {
	s := config.DefaultSettings()
	s.Terrain.Roughness = 0
	s.Difficulty.Enabled = false
	s.Episode.Landers = 3
	return s
}

func newFlatEnv(t *testing.T, opts ...Option) *Env {
	t.Helper()
	opts = append([]Option{WithSeed(1), WithPadCenter(400)}, opts...)
	env, err := NewEnv(flatSettings(), opts...)
	if err != nil {
		t.Fatalf("NewEnv() error = %v", err)
	}
	return env
}

func actions(n int, a lander.Action) []lander.Action {
	out := make([]lander.Action, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestNewEnvRejectsInvalidSettings(t *testing.T) {
	s := flatSettings()
	s.Screen.FPS = 0
	if _, err := NewEnv(s); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("NewEnv() error = %v, want ErrInvalidConfig", err)
	}

	if _, err := NewEnv(flatSettings(), WithLanders(0)); err == nil {
		t.Error("NewEnv() accepted zero landers")
	}
}

func TestResetSpawnsLanders(t *testing.T) {
	env := newFlatEnv(t)
	s := env.Settings()
	w, h := float64(s.Screen.Width), float64(s.Screen.Height)

	if len(env.Landers()) != 3 {
		t.Fatalf("got %d landers, want 3", len(env.Landers()))
	}
	for i, l := range env.Landers() {
		if l.X() < 0.2*w || l.X() > 0.8*w {
			t.Errorf("lander %d x = %v, want within [%v, %v]", i, l.X(), 0.2*w, 0.8*w)
		}
		if math.Abs(l.Y()-0.1*h) > 1e-9 {
			t.Errorf("lander %d y = %v, want %v", i, l.Y(), 0.1*h)
		}
		if !l.Active() {
			t.Errorf("lander %d inactive after reset", i)
		}
	}
	if env.Terrain().PadCenter() != 400 {
		t.Errorf("PadCenter() = %d, want 400", env.Terrain().PadCenter())
	}
	if env.Steps() != 0 || env.Episode() != 1 {
		t.Errorf("Steps() = %d, Episode() = %d, want 0 and 1", env.Steps(), env.Episode())
	}
}

func TestResetIsReproducible(t *testing.T) {
	a := newFlatEnv(t, WithSeed(7))
	b := newFlatEnv(t, WithSeed(7))
	for i := range a.Landers() {
		if a.Landers()[i].X() != b.Landers()[i].X() {
			t.Errorf("lander %d spawned at %v and %v with the same seed", i, a.Landers()[i].X(), b.Landers()[i].X())
		}
	}
}

func TestResetStartsNewEpisode(t *testing.T) {
	env := newFlatEnv(t)
	if _, err := env.Step(actions(3, lander.Noop)); err != nil {
		t.Fatal(err)
	}

	obs, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if len(obs) != 3 {
		t.Errorf("Reset() returned %d observations, want 3", len(obs))
	}
	if env.Steps() != 0 || env.Episode() != 2 {
		t.Errorf("Steps() = %d, Episode() = %d, want 0 and 2", env.Steps(), env.Episode())
	}
}

func TestStepRejectsWrongActionCount(t *testing.T) {
	env := newFlatEnv(t)
	if _, err := env.Step(actions(2, lander.Noop)); err == nil {
		t.Error("Step() accepted 2 actions for 3 landers")
	}
}

func TestStepSurvivalReward(t *testing.T) {
	env := newFlatEnv(t)
	res, err := env.Step(actions(3, lander.Noop))
	if err != nil {
		t.Fatal(err)
	}
	if res.AllDone || res.Steps != 1 {
		t.Errorf("AllDone = %v, Steps = %d, want false and 1", res.AllDone, res.Steps)
	}
	for i := range res.Rewards {
		if res.Done[i] {
			t.Errorf("lander %d done after one step", i)
		}
		// Upright landers earn at least the angle term.
		if res.Rewards[i] <= 0 {
			t.Errorf("lander %d reward = %v, want positive", i, res.Rewards[i])
		}
		if res.Totals[i] != res.Rewards[i] {
			t.Errorf("lander %d total = %v, want %v", i, res.Totals[i], res.Rewards[i])
		}
	}
}

func TestStepIdleLandersCrash(t *testing.T) {
	env := newFlatEnv(t, WithSpawn(400, 60))
	var res StepResult
	var err error
	for env.Steps() < 1000 && !env.AllDone() {
		if res, err = env.Step(actions(3, lander.Noop)); err != nil {
			t.Fatal(err)
		}
	}
	if !res.AllDone {
		t.Fatal("idle landers still flying after 1000 steps")
	}
	for i := range res.Reasons {
		if res.Reasons[i] != lander.ReasonCrashed {
			t.Errorf("lander %d reason = %q, want crashed", i, res.Reasons[i])
		}
		if res.Rewards[i] != env.Settings().Rewards.Crash {
			t.Errorf("lander %d terminal reward = %v, want %v", i, res.Rewards[i], env.Settings().Rewards.Crash)
		}
	}

	// A finished lander keeps reporting done and earns nothing more.
	again, err := env.Step(actions(3, lander.Main))
	if err != nil {
		t.Fatal(err)
	}
	for i := range again.Rewards {
		if again.Rewards[i] != 0 || !again.Done[i] {
			t.Errorf("lander %d after termination: reward %v, done %v", i, again.Rewards[i], again.Done[i])
		}
		if again.Totals[i] != res.Totals[i] {
			t.Errorf("lander %d total changed after termination: %v -> %v", i, res.Totals[i], again.Totals[i])
		}
	}
}

func TestStepOutOfBounds(t *testing.T) {
	env := newFlatEnv(t, WithLanders(1), WithSpawn(400, 60))
	var res StepResult
	var err error
	// Full thrust climbs through the top edge well before the fuel runs out.
	for i := 0; i < 200 && !env.AllDone(); i++ {
		if res, err = env.Step(actions(1, lander.Main)); err != nil {
			t.Fatal(err)
		}
	}
	if res.Reasons[0] != lander.ReasonOutOfBounds {
		t.Errorf("reason = %q, want out_of_bounds", res.Reasons[0])
	}
}

func TestStepOutOfFuel(t *testing.T) {
	s := flatSettings()
	s.Lander.InitialFuel = 3
	env, err := NewEnv(s, WithSeed(1), WithLanders(1), WithSpawn(400, 60))
	if err != nil {
		t.Fatal(err)
	}

	var res StepResult
	for i := 0; i < 3; i++ {
		if res, err = env.Step(actions(1, lander.Main)); err != nil {
			t.Fatal(err)
		}
	}
	if res.Reasons[0] != lander.ReasonOutOfFuel {
		t.Errorf("reason = %q, want out_of_fuel", res.Reasons[0])
	}
	if res.Rewards[0] != s.Rewards.OutOfFuel {
		t.Errorf("terminal reward = %v, want %v", res.Rewards[0], s.Rewards.OutOfFuel)
	}
}

func TestDifficultyAdvancesPerEpisode(t *testing.T) {
	s := config.DefaultSettings()
	s.Episode.Landers = 1
	s.Difficulty.Progression.MaxAt = 2
	env, err := NewEnv(s, WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	fuel := env.Landers()[0].Fuel()
	if env.Level() != 0 {
		t.Errorf("first episode level = %v, want 0", env.Level())
	}

	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}
	if env.Level() != 0.5 {
		t.Errorf("second episode level = %v, want 0.5", env.Level())
	}
	if got := env.Landers()[0].Fuel(); got >= fuel {
		t.Errorf("fuel did not shrink with difficulty: %v -> %v", fuel, got)
	}
}
