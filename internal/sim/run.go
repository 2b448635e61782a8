package sim

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// EpisodeSummary is the aggregate outcome of one episode.
type EpisodeSummary struct {
	Episode     int
	Seed        int64
	Landers     int
	Landed      int
	Crashed     int
	OutOfBounds int
	OutOfFuel   int
	Active      int // still flying when the episode stopped
	Steps       int
	BestReward  float64
	MeanReward  float64
	StdReward   float64
	Rewards     []float64
}

// Run drives the current episode of env until every lander is done, maxSteps
// is reached or ctx is cancelled. With one pilot it flies every lander;
// otherwise there must be one pilot per lander. A maxSteps of zero or less
// uses the configured episode limit.
//
// The all-done check only applies after the configured minimum step count.
func Run(ctx context.Context, env *Env, pilots []Pilot, maxSteps int) (EpisodeSummary, error) {
	n := len(env.Landers())
	if len(pilots) != 1 && len(pilots) != n {
		return EpisodeSummary{}, fmt.Errorf("sim: need 1 or %d pilots, got %d", n, len(pilots))
	}
	if maxSteps <= 0 {
		maxSteps = env.Settings().Episode.MaxSteps
	}
	minSteps := min(env.Settings().Episode.MinSteps, maxSteps)
	for _, p := range pilots {
		if r, ok := p.(interface{ Reset() }); ok {
			r.Reset()
		}
	}

	obs := env.Observations()
	actions := make([]lander.Action, n)
	for env.Steps() < maxSteps {
		if err := ctx.Err(); err != nil {
			return summarize(env), err
		}

		for i := range actions {
			p := pilots[0]
			if len(pilots) > 1 {
				p = pilots[i]
			}
			actions[i] = p.Act(obs[i])
		}

		res, err := env.Step(actions)
		if err != nil {
			return summarize(env), err
		}
		obs = res.Observations

		if res.AllDone && res.Steps >= minSteps {
			break
		}
	}

	sum := summarize(env)
	env.logger.Info("episode finished",
		"episode", sum.Episode, "steps", sum.Steps, "landed", sum.Landed, "crashed", sum.Crashed,
		"out_of_bounds", sum.OutOfBounds, "out_of_fuel", sum.OutOfFuel, "best", round1(sum.BestReward))
	return sum, nil
}

func summarize(env *Env) EpisodeSummary {
	landers := env.Landers()
	sum := EpisodeSummary{
		Episode: env.Episode(),
		Seed:    env.Seed(),
		Landers: len(landers),
		Steps:   env.Steps(),
		Rewards: make([]float64, len(landers)),
	}

	for i, l := range landers {
		switch l.Reason() {
		case lander.ReasonLanded:
			sum.Landed++
		case lander.ReasonCrashed:
			sum.Crashed++
		case lander.ReasonOutOfBounds:
			sum.OutOfBounds++
		case lander.ReasonOutOfFuel:
			sum.OutOfFuel++
		default:
			sum.Active++
		}
		sum.Rewards[i] = env.Trackers()[i].Total()
	}
	if len(sum.Rewards) > 0 {
		sum.BestReward = floats.Max(sum.Rewards)
		sum.MeanReward, sum.StdReward = stat.PopMeanStdDev(sum.Rewards, nil)
	}
	return sum
}
