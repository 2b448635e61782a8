package terrain

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Geometry is the read-only view of a lander the terrain queries need.
// Position is in pixels; Legs run from the hull corner to the foot.
type Geometry interface {
	Position() r2.Vec
	Angle() float64
	Vertices() [4]core.Point
	Legs() [2]core.Segment
}

// CheckCollision reports whether any hull corner is below the ground, or
// any foot is below it by more than the pad tolerance.
func (t *Terrain) CheckCollision(g Geometry) bool {
	if g.Position().Y >= float64(t.cfg.Height) {
		return true
	}
	for _, v := range g.Vertices() {
		if t.below(v, 0) {
			return true
		}
	}
	for _, leg := range g.Legs() {
		if t.below(leg.To, t.cfg.PadTolerance) {
			return true
		}
	}
	return false
}

func (t *Terrain) below(p core.Point, tolerance float64) bool {
	ground, ok := t.HeightAt(float64(p.X))
	return ok && float64(p.Y) > ground+tolerance
}

// LandingReport breaks a landing check into its independent conditions.
type LandingReport struct {
	FeetOnPad       bool // both feet horizontally within the pad
	FeetAtPadHeight bool // both feet within tolerance of the baseline
	VelocityOK      bool
	AngleOK         bool
}

// Landed reports whether every condition holds.
func (r LandingReport) Landed() bool {
	return r.FeetOnPad && r.FeetAtPadHeight && r.VelocityOK && r.AngleOK
}

// Landing evaluates the safe-landing conditions for g moving down at
// verticalVelocity pixels per second.
func (t *Terrain) Landing(g Geometry, verticalVelocity float64) LandingReport {
	legs := g.Legs()
	left, right := t.PadLeft(), t.PadRight()
	ground := float64(t.cfg.GroundHeight)

	r := LandingReport{FeetOnPad: true, FeetAtPadHeight: true}
	for _, leg := range legs {
		x, y := float64(leg.To.X), float64(leg.To.Y)
		if x < left || x > right {
			r.FeetOnPad = false
		}
		if math.Abs(y-ground) >= t.cfg.PadTolerance {
			r.FeetAtPadHeight = false
		}
	}
	r.VelocityOK = math.Abs(verticalVelocity) < t.cfg.SafeVelocity
	r.AngleOK = math.Abs(g.Angle()) < t.cfg.SafeAngle
	return r
}

// CheckLanding reports whether g has touched down safely on the pad.
func (t *Terrain) CheckLanding(g Geometry, verticalVelocity float64) bool {
	return t.Landing(g, verticalVelocity).Landed()
}
