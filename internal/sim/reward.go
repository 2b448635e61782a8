package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// Survival reward shaping. Weights are fractions of survivalBase per step.
const (
	survivalBase   = 20.0
	fuelWeight     = 0.0
	distanceWeight = 0.3
	heightWeight   = 0.15
	angleWeight    = 0.35
	velocityWeight = 0.20

	// optimalDescent is the fraction of the safe velocity that earns the
	// full velocity reward.
	optimalDescent = 0.8
)

// RewardComponents holds one value per shaping term.
type RewardComponents struct {
	Fuel     float64
	Distance float64
	Height   float64
	Angle    float64
	Velocity float64
}

// Sum adds up all terms.
func (c RewardComponents) Sum() float64 {
	return c.Fuel + c.Distance + c.Height + c.Angle + c.Velocity
}

func (c *RewardComponents) add(o RewardComponents) {
	c.Fuel += o.Fuel
	c.Distance += o.Distance
	c.Height += o.Height
	c.Angle += o.Angle
	c.Velocity += o.Velocity
}

// RewardTracker accumulates the reward of a single lander over an episode.
type RewardTracker struct {
	rewards config.RewardSettings

	survival RewardComponents // accumulated
	ratios   RewardComponents // last step, not accumulated
	terminal float64
	reason   lander.TerminateReason
}

// NewRewardTracker creates a tracker using the terminal rewards in s.
func NewRewardTracker(s config.Settings) *RewardTracker {
	return &RewardTracker{rewards: s.Rewards}
}

// Ratios computes the unweighted shaping ratios for the lander's current
// state.
func Ratios(l *lander.Lander, t *terrain.Terrain) RewardComponents {
	tc := t.Config()

	var r RewardComponents
	r.Fuel = l.Fuel() / l.Config().InitialFuel
	r.Distance = 1 - math.Abs(l.X()-float64(t.PadCenter()))/float64(t.Width())
	r.Height = math.Abs(l.Y()-float64(t.GroundHeight())) / float64(t.Height())

	r.Angle = -1
	if math.Abs(l.Angle()) <= tc.SafeAngle {
		r.Angle = 1
	}

	optimal := optimalDescent * tc.SafeVelocity
	vy := l.VelocityY()
	if vy <= optimal {
		r.Velocity = vy / optimal
	} else {
		r.Velocity = math.Max(0, 1-(vy-optimal)/(tc.SafeVelocity-optimal))
	}
	return r
}

// Survival records and returns the reward for one surviving step.
func (rt *RewardTracker) Survival(l *lander.Lander, t *terrain.Terrain) float64 {
	r := Ratios(l, t)
	step := RewardComponents{
		Fuel:     survivalBase * fuelWeight * r.Fuel,
		Distance: survivalBase * distanceWeight * r.Distance,
		Height:   survivalBase * heightWeight * r.Height,
		Angle:    survivalBase * angleWeight * r.Angle,
		Velocity: survivalBase * velocityWeight * r.Velocity,
	}
	rt.ratios = r
	rt.survival.add(step)
	return step.Sum()
}

// Terminal records and returns the reward for ending with reason.
func (rt *RewardTracker) Terminal(reason lander.TerminateReason) float64 {
	switch reason {
	case lander.ReasonLanded:
		rt.terminal = rt.rewards.Landing
	case lander.ReasonCrashed:
		rt.terminal = rt.rewards.Crash
	case lander.ReasonOutOfBounds:
		rt.terminal = rt.rewards.OutOfBounds
	case lander.ReasonOutOfFuel:
		rt.terminal = rt.rewards.OutOfFuel
	default:
		rt.terminal = 0
	}
	rt.reason = reason
	return rt.terminal
}

// Survived returns the accumulated survival components.
func (rt *RewardTracker) Survived() RewardComponents { return rt.survival }

// LastRatios returns the ratios of the most recent surviving step.
func (rt *RewardTracker) LastRatios() RewardComponents { return rt.ratios }

// TerminalReward returns the recorded terminal reward.
func (rt *RewardTracker) TerminalReward() float64 { return rt.terminal }

// Total returns accumulated survival plus terminal reward.
func (rt *RewardTracker) Total() float64 {
	return rt.survival.Sum() + rt.terminal
}

// Summary returns key/value pairs for structured logging.
func (rt *RewardTracker) Summary() []any {
	return []any{
		"fuel", round1(rt.survival.Fuel),
		"distance", round1(rt.survival.Distance),
		"height", round1(rt.survival.Height),
		"angle", round1(rt.survival.Angle),
		"velocity", round1(rt.survival.Velocity),
		"terminal", rt.terminal,
		"total", round1(rt.Total()),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
