// Package terrain generates the ground profile an episode is played on and
// answers collision and safe-landing queries against it.
//
// Coordinates are render pixels with y growing downward, so a point is
// below the ground when its y is larger than the profile height at its x.
package terrain

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Config holds the generation and landing parameters, all in pixels except
// SafeAngle (radians) and SafeVelocity (pixels per second).
type Config struct {
	Width        int
	Height       int
	GroundHeight int // pad baseline, measured from the top
	PadWidth     int
	PadCenter    int // 0 picks a random center in [20%, 80%] of Width
	Roughness    int // max height change between neighboring points
	StepWidth    int // horizontal distance between generated points
	HeightBand   int // max deviation from GroundHeight
	PadTolerance float64
	SafeVelocity float64
	SafeAngle    float64
}

// Validate checks that a profile can be generated from the config.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("terrain: size must be positive, got %dx%d: %w", c.Width, c.Height, core.ErrInvalidConfig)
	case c.GroundHeight <= 0 || c.GroundHeight > c.Height:
		return fmt.Errorf("terrain: ground height %d outside (0, %d]: %w", c.GroundHeight, c.Height, core.ErrInvalidConfig)
	case c.PadWidth <= 0 || c.PadWidth >= c.Width:
		return fmt.Errorf("terrain: pad width %d outside (0, %d): %w", c.PadWidth, c.Width, core.ErrInvalidConfig)
	case c.StepWidth <= 0:
		return fmt.Errorf("terrain: step width must be positive, got %d: %w", c.StepWidth, core.ErrInvalidConfig)
	case c.Roughness < 0 || c.HeightBand < 0:
		return fmt.Errorf("terrain: roughness and height band must be non-negative: %w", core.ErrInvalidConfig)
	case c.PadTolerance < 0 || c.SafeVelocity < 0 || c.SafeAngle < 0:
		return fmt.Errorf("terrain: landing thresholds must be non-negative: %w", core.ErrInvalidConfig)
	}
	if c.PadCenter != 0 {
		half := float64(c.PadWidth) / 2
		if float64(c.PadCenter)-half < 0 || float64(c.PadCenter)+half > float64(c.Width) {
			return fmt.Errorf("terrain: pad centered at %d does not fit in width %d: %w", c.PadCenter, c.Width, core.ErrInvalidConfig)
		}
	}
	return nil
}

// Segment is one straight piece of the ground profile, A.X <= B.X.
type Segment struct {
	A, B r2.Vec
}

// HeightAt interpolates the segment's y at x. A vertical segment reports
// the y of its first point.
func (s Segment) HeightAt(x float64) float64 {
	if s.B.X == s.A.X {
		return s.A.Y
	}
	slope := (s.B.Y - s.A.Y) / (s.B.X - s.A.X)
	return s.A.Y + slope*(x-s.A.X)
}

// Terrain is an immutable ground profile with one flat landing pad.
type Terrain struct {
	cfg       Config
	padCenter int
	points    []r2.Vec
	segments  []Segment
}

// New generates a terrain. A nil rng draws from the process-wide source.
func New(cfg Config, rng *rand.Rand) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	t := &Terrain{cfg: cfg, padCenter: cfg.PadCenter}
	if t.padCenter == 0 {
		lo, hi := int(float64(cfg.Width)*0.2), int(float64(cfg.Width)*0.8)
		t.padCenter = lo + intn(hi-lo+1)
		// Keep the whole pad on screen for narrow terrains.
		half := (cfg.PadWidth + 1) / 2
		t.padCenter = core.Clamp(t.padCenter, half, cfg.Width-half)
	}

	t.points = t.generate(intn)
	t.segments = make([]Segment, 0, len(t.points)-1)
	for i := 0; i+1 < len(t.points); i++ {
		t.segments = append(t.segments, Segment{A: t.points[i], B: t.points[i+1]})
	}
	return t, nil
}

func (t *Terrain) generate(intn func(int) int) []r2.Vec {
	ground := t.cfg.GroundHeight
	lo, hi := ground-t.cfg.HeightBand, ground+t.cfg.HeightBand
	step := t.cfg.StepWidth
	left, right := t.PadLeft(), t.PadRight()

	walk := func(prev int) int {
		return core.Clamp(prev+intn(2*t.cfg.Roughness+1)-t.cfg.Roughness, lo, hi)
	}

	var pts []r2.Vec
	h := ground
	for x := 0; float64(x) < left; x += step {
		h = walk(h)
		pts = append(pts, r2.Vec{X: float64(x), Y: float64(h)})
	}

	pts = append(pts,
		r2.Vec{X: left, Y: float64(ground)},
		r2.Vec{X: right, Y: float64(ground)})

	// The right walk closes on exactly Width so the profile spans the screen.
	h = ground
	width := float64(t.cfg.Width)
	for x := right; x < width; {
		x = math.Min(x+float64(step), width)
		h = walk(h)
		pts = append(pts, r2.Vec{X: x, Y: float64(h)})
	}
	return pts
}

// Config returns the parameters the terrain was generated with.
func (t *Terrain) Config() Config { return t.cfg }

// Width returns the horizontal extent in pixels.
func (t *Terrain) Width() int { return t.cfg.Width }

// Height returns the vertical extent in pixels.
func (t *Terrain) Height() int { return t.cfg.Height }

// GroundHeight returns the pad baseline y.
func (t *Terrain) GroundHeight() int { return t.cfg.GroundHeight }

// PadCenter returns the x of the pad center.
func (t *Terrain) PadCenter() int { return t.padCenter }

// PadWidth returns the width of the pad.
func (t *Terrain) PadWidth() int { return t.cfg.PadWidth }

// PadLeft returns the x of the left pad edge.
func (t *Terrain) PadLeft() float64 {
	return float64(t.padCenter) - float64(t.cfg.PadWidth)/2
}

// PadRight returns the x of the right pad edge.
func (t *Terrain) PadRight() float64 {
	return float64(t.padCenter) + float64(t.cfg.PadWidth)/2
}

// Points returns a copy of the profile, ordered by strictly increasing x.
func (t *Terrain) Points() []r2.Vec {
	return append([]r2.Vec(nil), t.points...)
}

// Segments returns a copy of the segments between consecutive points.
func (t *Terrain) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

// HeightAt returns the ground y at x using the first segment whose x-range
// contains x. It reports false when x lies outside the profile.
func (t *Terrain) HeightAt(x float64) (float64, bool) {
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].B.X >= x
	})
	if i == len(t.segments) || t.segments[i].A.X > x {
		return 0, false
	}
	return t.segments[i].HeightAt(x), true
}
