package lander

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// ObservationSize is the length of the observation vector.
const ObservationSize = 9

// Observation indices.
const (
	ObsX = iota
	ObsY
	ObsVelX
	ObsVelY
	ObsAngle
	ObsAngularVel
	ObsPadDX
	ObsPadDY
	ObsFuel
)

// Observation is the normalized state a pilot acts on.
//
//	0  x/PosNormalization - 1
//	1  y/PosNormalization - 1
//	2  vx/VelNormalization
//	3  vy/VelNormalization
//	4  angle/π
//	5  angular velocity, rad/s
//	6  (pad center x - x)/terrain width, clamped to [-1, 1]
//	7  (ground y - y)/terrain height, clamped to [-1, 1]
//	8  fuel/InitialFuel
//
// The pad terms are zero when the lander has no terrain.
type Observation [ObservationSize]float64

// Slice returns the observation as a new slice.
func (o Observation) Slice() []float64 {
	return append([]float64(nil), o[:]...)
}

// Vec returns the observation as a column vector.
func (o Observation) Vec() *mat.VecDense {
	return mat.NewVecDense(ObservationSize, o.Slice())
}

// Observation returns the current normalized state.
func (l *Lander) Observation() Observation {
	x, y := l.X(), l.Y()
	o := Observation{
		ObsX:          x/l.cfg.PosNormalization - 1,
		ObsY:          y/l.cfg.PosNormalization - 1,
		ObsVelX:       l.VelocityX() / l.cfg.VelNormalization,
		ObsVelY:       l.VelocityY() / l.cfg.VelNormalization,
		ObsAngle:      l.Angle() / math.Pi,
		ObsAngularVel: l.AngularVelocity(),
		ObsFuel:       l.fuel / l.cfg.InitialFuel,
	}
	if t := l.terrain; t != nil {
		o[ObsPadDX] = core.ClampF((float64(t.PadCenter())-x)/float64(t.Width()), -1, 1)
		o[ObsPadDY] = core.ClampF((float64(t.GroundHeight())-y)/float64(t.Height()), -1, 1)
	}
	return o
}
