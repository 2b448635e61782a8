package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lunar"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

var (
	flagCols int
	flagRows int
)

var terrainCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Preview a generated terrain",
	Long: `Generate one terrain from the configured settings and print it as text.

Examples:
  lander terrain
  lander terrain --seed 42 --cols 120 --rows 30
  lander terrain --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runTerrain,
}

func init() {
	terrainCmd.Flags().IntVar(&flagCols, "cols", 80, "Preview width in characters")
	terrainCmd.Flags().IntVar(&flagRows, "rows", 24, "Preview height in characters")
}

func runTerrain(cmd *cobra.Command, _ []string) error {
	if flagCols <= 0 || flagRows <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", flagCols, flagRows)
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t, err := terrain.New(s.TerrainConfig(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	screen := core.NewScreen(flagCols, flagRows)
	lunar.DrawTerrain(screen, t)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, screen.String())
	fmt.Fprintf(out, "seed %d  pad x=%d width=%d  ground y=%d  %d points\n",
		seed, t.PadCenter(), t.PadWidth(), t.GroundHeight(), len(t.Points()))
	return nil
}
