// Package sim runs headless multi-lander episodes: it spawns landers over a
// fresh terrain, applies pilot actions, decides terminations and tracks
// rewards.
package sim

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// Pilot chooses an action for one lander.
type Pilot interface {
	Act(obs lander.Observation) lander.Action
}

// Option configures an Env.
type Option func(*Env)

// WithLogger sets the logger used for terminations and episode summaries.
func WithLogger(l *log.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// WithSeed makes terrain generation and spawn positions reproducible.
func WithSeed(seed int64) Option {
	return func(e *Env) {
		e.seed = seed
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLanders overrides the number of landers per episode.
func WithLanders(n int) Option {
	return func(e *Env) { e.numLanders = n }
}

// WithSpawn places every lander at the given pixel position instead of a
// random one.
func WithSpawn(x, y float64) Option {
	return func(e *Env) { e.spawn = &spawnPoint{x, y} }
}

// WithPadCenter fixes the landing pad center x.
func WithPadCenter(x int) Option {
	return func(e *Env) { e.padCenter = x }
}

type spawnPoint struct{ x, y float64 }

// StepResult is the outcome of one environment step, indexed by lander.
type StepResult struct {
	Observations []lander.Observation
	Rewards      []float64
	Done         []bool
	Reasons      []lander.TerminateReason
	Totals       []float64 // episode reward so far
	AllDone      bool
	Steps        int
}

// Env is a multi-lander environment. It is not safe for concurrent use.
type Env struct {
	settings   config.Settings
	difficulty *config.DifficultyManager
	logger     *log.Logger
	rng        *rand.Rand
	seed       int64
	numLanders int
	spawn      *spawnPoint
	padCenter  int

	episode  int
	level    float64
	terrain  *terrain.Terrain
	landers  []*lander.Lander
	trackers []*RewardTracker
	steps    int
}

// NewEnv validates the settings and prepares the first episode.
func NewEnv(s config.Settings, opts ...Option) (*Env, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	e := &Env{
		settings:   s,
		difficulty: config.NewDifficultyManager(s.Difficulty),
		logger:     log.New(io.Discard),
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		numLanders: s.Episode.Landers,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.numLanders <= 0 {
		return nil, fmt.Errorf("sim: need at least one lander, got %d", e.numLanders)
	}

	if _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset starts a new episode on a fresh terrain and returns the initial
// observations. Difficulty advances with every reset after the first.
func (e *Env) Reset() ([]lander.Observation, error) {
	e.level = e.difficulty.Level(e.episode, 0)
	lc, tc := e.difficulty.Apply(e.settings.LanderConfig(), e.settings.TerrainConfig(), e.level)
	tc.PadCenter = e.padCenter

	t, err := terrain.New(tc, e.rng)
	if err != nil {
		return nil, fmt.Errorf("sim: generate terrain: %w", err)
	}

	w, h := float64(tc.Width), float64(tc.Height)
	landers := make([]*lander.Lander, e.numLanders)
	trackers := make([]*RewardTracker, e.numLanders)
	obs := make([]lander.Observation, e.numLanders)
	for i := range landers {
		x, y := w*0.2+e.rng.Float64()*w*0.6, h*0.1
		if e.spawn != nil {
			x, y = e.spawn.x, e.spawn.y
		}
		l, err := lander.New(x, y, lc, t)
		if err != nil {
			return nil, fmt.Errorf("sim: spawn lander %d: %w", i, err)
		}
		landers[i] = l
		trackers[i] = NewRewardTracker(e.settings)
		obs[i] = l.Observation()
	}

	e.terrain = t
	e.landers = landers
	e.trackers = trackers
	e.steps = 0
	e.episode++

	e.logger.Debug("episode reset",
		"episode", e.episode, "level", e.level, "pad_x", t.PadCenter(), "landers", len(landers))
	return obs, nil
}

// Step applies one action per lander. Terminated landers keep their final
// state and earn nothing.
func (e *Env) Step(actions []lander.Action) (StepResult, error) {
	if len(actions) != len(e.landers) {
		return StepResult{}, fmt.Errorf("sim: got %d actions for %d landers", len(actions), len(e.landers))
	}
	e.steps++

	n := len(e.landers)
	res := StepResult{
		Observations: make([]lander.Observation, n),
		Rewards:      make([]float64, n),
		Done:         make([]bool, n),
		Reasons:      make([]lander.TerminateReason, n),
		Totals:       make([]float64, n),
		AllDone:      true,
		Steps:        e.steps,
	}

	for i, l := range e.landers {
		tr := e.trackers[i]
		if !l.Active() {
			res.Observations[i] = l.Observation()
			res.Done[i] = true
			res.Reasons[i] = l.Reason()
			res.Totals[i] = tr.Total()
			continue
		}

		res.Observations[i] = l.Step(actions[i])
		if reason := Judge(l, e.terrain); reason != lander.ReasonNone {
			l.Terminate(reason)
			res.Rewards[i] = tr.Terminal(reason)
			res.Done[i] = true
			res.Reasons[i] = reason
			e.logger.Debug("lander terminated",
				append([]any{"lander", i, "reason", reason, "step", e.steps}, tr.Summary()...)...)
		} else {
			res.Rewards[i] = tr.Survival(l, e.terrain)
			res.AllDone = false
		}
		res.Totals[i] = tr.Total()
	}
	return res, nil
}

// Judge returns why l should stop flying over t, or ReasonNone. Conditions
// are checked in the order landed, crashed, out of bounds, out of fuel.
func Judge(l *lander.Lander, t *terrain.Terrain) lander.TerminateReason {
	switch {
	case t.CheckLanding(l, l.VelocityY()):
		return lander.ReasonLanded
	case t.CheckCollision(l):
		return lander.ReasonCrashed
	case l.X() < 0 || l.X() > float64(t.Width()) || l.Y() < 0:
		return lander.ReasonOutOfBounds
	case l.Fuel() <= 0:
		return lander.ReasonOutOfFuel
	}
	return lander.ReasonNone
}

// Observations returns the current observation of every lander.
func (e *Env) Observations() []lander.Observation {
	obs := make([]lander.Observation, len(e.landers))
	for i, l := range e.landers {
		obs[i] = l.Observation()
	}
	return obs
}

// AllDone reports whether no lander is still active.
func (e *Env) AllDone() bool {
	for _, l := range e.landers {
		if l.Active() {
			return false
		}
	}
	return true
}

// Landers returns the landers of the current episode.
func (e *Env) Landers() []*lander.Lander { return e.landers }

// Trackers returns the reward trackers, parallel to Landers.
func (e *Env) Trackers() []*RewardTracker { return e.trackers }

// Terrain returns the terrain of the current episode.
func (e *Env) Terrain() *terrain.Terrain { return e.terrain }

// Steps returns the number of steps taken in the current episode.
func (e *Env) Steps() int { return e.steps }

// Episode returns the 1-based number of the current episode.
func (e *Env) Episode() int { return e.episode }

// Level returns the difficulty level of the current episode.
func (e *Env) Level() float64 { return e.level }

// Seed returns the seed the environment's generator was created with.
func (e *Env) Seed() int64 { return e.seed }

// Settings returns the environment settings.
func (e *Env) Settings() config.Settings { return e.settings }
