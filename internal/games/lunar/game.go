// Package lunar implements the interactive lunar lander game.
// The player fires three thrusters to set a lander down on the pad.
package lunar

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/pilot"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/sim"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// Scoring
const (
	LandingScore  = 100
	FailureScore  = -50
	SurvivalTicks = 10 // one point per this many ticks in flight
)

// Game implements the lunar lander game logic.
type Game struct {
	settings   config.Settings
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand

	terrain *terrain.Terrain
	lander  *lander.Lander
	pilot   *pilot.Autopilot

	autopilot  bool
	lastAction lander.Action
	score      int
	outcome    lander.TerminateReason
	gameOver   bool
	paused     bool
	tickCount  int
	round      int // completed resets, drives difficulty
	level      float64
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var startAutopilot bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetAutopilot makes new games start under autopilot control.
func SetAutopilot(on bool) {
	startAutopilot = on
}

// New creates a new lunar lander game instance.
func New() *Game {
	return &Game{pilot: pilot.NewAutopilot(), autopilot: startAutopilot}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "lunar"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lunar Lander"
}

// Reset starts a new round on a fresh terrain. Difficulty advances with
// every round when progression is enabled.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.difficulty == nil {
		s, err := config.Load(configPath)
		if err != nil {
			s = config.DefaultSettings()
		}
		if difficultyPreset != "" {
			config.ApplyPreset(&s, difficultyPreset)
		}
		g.settings = s
		g.difficulty = config.NewDifficultyManager(s.Difficulty)

		seed := runtime.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}

	g.level = g.difficulty.Level(g.round, 0)
	lc, tc := g.difficulty.Apply(g.settings.LanderConfig(), g.settings.TerrainConfig(), g.level)
	g.round++

	t, l, err := g.spawn(lc, tc)
	if err != nil {
		d := config.DefaultSettings()
		if t, l, err = g.spawn(d.LanderConfig(), d.TerrainConfig()); err != nil {
			panic(fmt.Errorf("lunar: embedded defaults: %w", err))
		}
	}

	g.terrain = t
	g.lander = l
	g.pilot.Reset()
	g.lastAction = lander.Noop
	g.score = 0
	g.outcome = lander.ReasonNone
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
}

// spawn generates a terrain and places a lander in its upper band.
func (g *Game) spawn(lc lander.Config, tc terrain.Config) (*terrain.Terrain, *lander.Lander, error) {
	t, err := terrain.New(tc, g.rng)
	if err != nil {
		return nil, nil, err
	}
	w, h := float64(tc.Width), float64(tc.Height)
	l, err := lander.New(w*0.2+g.rng.Float64()*w*0.6, h*0.1, lc, t)
	if err != nil {
		return nil, nil, err
	}
	return t, l, nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionAutopilot) {
		g.autopilot = !g.autopilot
		g.pilot.Reset()
	}

	g.tickCount++

	action := actionFromInput(in)
	if g.autopilot {
		action = g.pilot.Act(g.lander.Observation())
	}
	if g.lander.Fuel() <= 0 {
		action = lander.Noop
	}
	g.lastAction = action
	g.lander.Step(action)

	if reason := sim.Judge(g.lander, g.terrain); reason != lander.ReasonNone {
		g.lander.Terminate(reason)
		g.outcome = reason
		g.gameOver = true
		if reason == lander.ReasonLanded {
			g.score += LandingScore
		} else {
			g.score += FailureScore
		}
	} else if g.tickCount%SurvivalTicks == 0 {
		g.score++
	}

	return core.StepResult{State: g.State()}
}

// actionFromInput maps held keys to one lander action. The main engine
// wins over the side thrusters.
func actionFromInput(in core.InputFrame) lander.Action {
	switch {
	case in.Has(core.ActionMain):
		return lander.Main
	case in.Has(core.ActionLeft):
		return lander.Left
	case in.Has(core.ActionRight):
		return lander.Right
	}
	return lander.Noop
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Outcome:  string(g.outcome),
	}
}

// Lander returns the lander of the current round.
func (g *Game) Lander() *lander.Lander { return g.lander }

// Terrain returns the terrain of the current round.
func (g *Game) Terrain() *terrain.Terrain { return g.terrain }

// Autopilot reports whether the autopilot is flying.
func (g *Game) Autopilot() bool { return g.autopilot }

// Settings returns the settings the game was loaded with.
func (g *Game) Settings() config.Settings { return g.settings }

// Register the game with the registry
func init() {
	registry.RegisterGame("lunar", func() registry.Game {
		return New()
	})
}
