package pilot

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

func init() {
	registry.RegisterPilot("idle", func() registry.Pilot { return Idle{} })
	registry.RegisterPilot("random", func() registry.Pilot { return NewRandom(time.Now().UnixNano()) })
}

// Idle never fires an engine.
type Idle struct{}

func (Idle) Name() string                         { return "idle" }
func (Idle) Description() string                  { return "Never fires an engine" }
func (Idle) Reset()                               {}
func (Idle) Act(lander.Observation) lander.Action { return lander.Noop }

// Random picks a uniformly random action every step.
type Random struct {
	seed int64
	rng  *rand.Rand
}

// NewRandom creates a random pilot. Reset restarts the same sequence.
func NewRandom(seed int64) *Random {
	return &Random{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string        { return "random" }
func (r *Random) Description() string { return "Uniformly random actions" }

func (r *Random) Reset() {
	r.rng = rand.New(rand.NewSource(r.seed))
}

func (r *Random) Act(lander.Observation) lander.Action {
	return lander.Action(r.rng.Intn(lander.NumActions))
}

// Replay plays a fixed action script, then idles.
type Replay struct {
	script []lander.Action
	pos    int
}

// NewReplay creates a pilot that replays script.
func NewReplay(script []lander.Action) *Replay {
	return &Replay{script: append([]lander.Action(nil), script...)}
}

func (r *Replay) Name() string        { return "replay" }
func (r *Replay) Description() string { return "Replays a fixed action script" }
func (r *Replay) Reset()              { r.pos = 0 }

// Act returns the next scripted action, or Noop once the script is spent.
func (r *Replay) Act(lander.Observation) lander.Action {
	if r.pos >= len(r.script) {
		return lander.Noop
	}
	a := r.script[r.pos]
	r.pos++
	return a
}

// Done reports whether the script has been fully played.
func (r *Replay) Done() bool { return r.pos >= len(r.script) }
