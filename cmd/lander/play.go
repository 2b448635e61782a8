package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lunar"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var flagAutopilot bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly a lander",
	Long: `Start a round of Lunar Lander.

Controls:
  W/Up/Space - Main engine
  A/Left     - Left thruster (turns clockwise)
  D/Right    - Right thruster (turns counter-clockwise)
  T          - Toggle autopilot
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Extra fuel, progression starts at the lowest level
  normal - Progression starts at 30%
  hard   - Less fuel, progression starts at 70%
  fixed  - No progression, stays at config's initial level

Examples:
  lander play
  lander play --autopilot
  lander play --difficulty hard
  lander play --config ./my-lander.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Start with the autopilot flying")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failures are logged and the game
// continues without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newGame creates the lunar game with the CLI settings applied.
func newGame(autopilot bool) (registry.Game, error) {
	lunar.SetConfigPath(flagConfig)
	lunar.SetDifficultyPreset(flagDifficulty)
	lunar.SetAutopilot(autopilot)
	return registry.CreateGame("lunar")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Surface config errors before the alt screen takes over.
	if _, err := loadSettings(); err != nil {
		return err
	}

	game, err := newGame(flagAutopilot)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
