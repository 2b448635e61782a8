// lander is a lunar lander simulator for the terminal.
//
// Usage:
//
//	lander play              - Fly a lander interactively
//	lander menu              - Start menu with scoreboard
//	lander sim               - Run headless episodes with a pilot
//	lander terrain           - Preview a generated terrain
//	lander scores            - Show high scores and recent episodes
//	lander pilots            - List registered pilots
//
// Global flags:
//
//	--fps <rate>          - Set render tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.lander/scores.db)
//	--config <path>       - Load settings from a YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"

	// Import the game and pilots to register them
	_ "github.com/vovakirdan/tui-lander/internal/games/lunar"
	_ "github.com/vovakirdan/tui-lander/internal/pilot"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Lunar Lander - land on the pad in your terminal",
	Long: `Lunar Lander is a 2D lander simulation with a terminal front end
and a headless multi-lander harness for scripted pilots.

Available commands:
  play     - Fly a lander directly
  menu     - Interactive start menu
  sim      - Run headless episodes
  terrain  - Preview a generated terrain
  scores   - View high scores and recent episodes
  pilots   - List registered pilots

Examples:
  lander play
  lander play --autopilot --difficulty hard
  lander sim --pilot autopilot --landers 8 --episodes 5
  lander terrain --seed 42
  lander scores --tui`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		if flagDifficulty != "" {
			if _, err := config.ParsePreset(flagDifficulty); err != nil {
				return err
			}
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: true,
			Prefix:          "lander",
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render tick rate; the physics step comes from screen.fps")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lander/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(terrainCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(pilotsCmd)
}

// loadSettings loads the configured settings and applies --difficulty.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(flagConfig)
	if err != nil {
		return config.Settings{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.Settings{}, err
		}
		config.ApplyPreset(&s, preset)
	}
	return s, nil
}
