package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresPilot string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent episodes",
	Long: `Display the top piloted rounds and the most recent simulation episodes.

Examples:
  lander scores
  lander scores --pilot autopilot --limit 20
  lander scores --tui`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Rows per table")
	scoresCmd.Flags().StringVar(&flagScoresPilot, "pilot", "", "Only show episodes of this pilot")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	scores, err := store.TopScores("lunar", flagScoresLimit)
	if err != nil {
		return err
	}
	episodes, err := store.RecentEpisodes(flagScoresPilot, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Lunar Lander")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'lander play' to set the first high score!")
	} else {
		fmt.Fprintf(out, "  %-4s  %-8s  %-13s  %s\n", "Rank", "Score", "Outcome", "Date")
		fmt.Fprintf(out, "  %-4s  %-8s  %-13s  %s\n", "----", "-----", "-------", "----")
		for i, entry := range scores {
			fmt.Fprintf(out, "  %-4d  %-8d  %-13s  %s\n",
				i+1, entry.Score, entry.Outcome, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		stats, err := store.GetGameStats("lunar")
		if err == nil {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Best: %d  |  Rounds: %d  |  Landings: %d  |  Average: %.1f\n",
				stats.HighScore, stats.GamesCount, stats.Landings, stats.AvgScore)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent Episodes")
	fmt.Fprintln(out)

	if len(episodes) == 0 {
		fmt.Fprintln(out, "No episodes recorded yet. Run 'lander sim' to fly some.")
		return nil
	}

	fmt.Fprintf(out, "  %-10s  %-20s  %-7s  %-6s  %9s  %9s  %s\n",
		"Pilot", "Seed", "Landed", "Steps", "Best", "Mean", "Date")
	for _, e := range episodes {
		fmt.Fprintf(out, "  %-10s  %-20d  %-7s  %-6d  %9.1f  %9.1f  %s\n",
			e.Pilot, e.Seed, fmt.Sprintf("%d/%d", e.Landed, e.Landers), e.Steps,
			e.BestReward, e.MeanReward, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
