package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/sim"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagLanders  int
	flagEpisodes int
	flagPilot    string
	flagMaxSteps int
	flagNoSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless episodes with a pilot",
	Long: `Fly episodes without a display. Every lander of an episode shares one
terrain and flies under its own instance of the chosen pilot.

Episode results are stored in the scores database unless --no-save is set.

Examples:
  lander sim
  lander sim --pilot autopilot --landers 8 --episodes 5
  lander sim --pilot random --seed 7 --no-save
  lander sim --log-level debug --max-steps 500`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagLanders, "landers", 0, "Landers per episode (0 = config value)")
	simCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Number of episodes to run")
	simCmd.Flags().StringVar(&flagPilot, "pilot", "autopilot", "Registered pilot to fly with")
	simCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step limit per episode (0 = config value)")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store episode results")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if !registry.PilotExists(flagPilot) {
		return fmt.Errorf("unknown pilot %q (run 'lander pilots' to list them)", flagPilot)
	}
	if flagEpisodes <= 0 {
		return fmt.Errorf("--episodes must be positive, got %d", flagEpisodes)
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	opts := []sim.Option{sim.WithLogger(logger)}
	if flagSeed != 0 {
		opts = append(opts, sim.WithSeed(flagSeed))
	}
	if flagLanders > 0 {
		opts = append(opts, sim.WithLanders(flagLanders))
	}
	env, err := sim.NewEnv(s, opts...)
	if err != nil {
		return err
	}

	pilots := make([]sim.Pilot, len(env.Landers()))
	for i := range pilots {
		p, err := registry.CreatePilot(flagPilot)
		if err != nil {
			return err
		}
		pilots[i] = p
	}

	var store *storage.Store
	if !flagNoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-4s  %-6s  %-7s  %-7s  %-4s  %-4s  %-5s  %9s  %9s\n",
		"Ep", "Level", "Landed", "Crashed", "OOB", "Fuel", "Steps", "Best", "Mean")

	for ep := 0; ep < flagEpisodes; ep++ {
		if ep > 0 {
			if _, err := env.Reset(); err != nil {
				return err
			}
		}

		sum, err := sim.Run(ctx, env, pilots, flagMaxSteps)
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted", "episode", sum.Episode, "steps", sum.Steps)
				return nil
			}
			return err
		}

		fmt.Fprintf(out, "  %-4d  %-6.2f  %-7s  %-7d  %-4d  %-4d  %-5d  %9.1f  %9.1f\n",
			sum.Episode, env.Level(), fmt.Sprintf("%d/%d", sum.Landed, sum.Landers),
			sum.Crashed, sum.OutOfBounds, sum.OutOfFuel, sum.Steps, sum.BestReward, sum.MeanReward)

		if store != nil {
			saveEpisode(store, env, sum)
		}
	}

	if store != nil {
		printPilotStats(cmd, store, flagPilot)
	}
	return nil
}

func saveEpisode(store *storage.Store, env *sim.Env, sum sim.EpisodeSummary) {
	_, err := store.SaveEpisode(storage.EpisodeRecord{
		Seed:        sum.Seed,
		Pilot:       flagPilot,
		Level:       env.Level(),
		Landers:     sum.Landers,
		Landed:      sum.Landed,
		Crashed:     sum.Crashed,
		OutOfBounds: sum.OutOfBounds,
		OutOfFuel:   sum.OutOfFuel,
		Steps:       sum.Steps,
		BestReward:  sum.BestReward,
		MeanReward:  sum.MeanReward,
	})
	if err != nil {
		logger.Warn("could not save episode", "episode", sum.Episode, "error", err)
	}
}

func printPilotStats(cmd *cobra.Command, store *storage.Store, pilot string) {
	stats, err := store.GetPilotStats(pilot)
	if err != nil {
		logger.Warn("could not load pilot stats", "pilot", pilot, "error", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d episodes, %.0f%% landed, best %.1f\n",
		stats.Pilot, stats.Episodes, stats.LandingRate()*100, stats.BestReward)
}
