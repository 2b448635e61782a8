package pilot

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

func init() {
	registry.RegisterPilot("linear", func() registry.Pilot { return NewDefaultLinear() })
}

// Linear scores every action as a linear function of the observation and
// picks the highest score.
type Linear struct {
	weights *mat.Dense    // NumActions x ObservationSize
	bias    *mat.VecDense // NumActions
	scores  *mat.VecDense
}

// NewLinear creates a linear policy. weights is row-major with one row per
// action; bias has one entry per action.
func NewLinear(weights, bias []float64) (*Linear, error) {
	if len(weights) != lander.NumActions*lander.ObservationSize {
		return nil, fmt.Errorf("pilot: linear weights need %d values, got %d",
			lander.NumActions*lander.ObservationSize, len(weights))
	}
	if len(bias) != lander.NumActions {
		return nil, fmt.Errorf("pilot: linear bias needs %d values, got %d", lander.NumActions, len(bias))
	}
	return &Linear{
		weights: mat.NewDense(lander.NumActions, lander.ObservationSize, append([]float64(nil), weights...)),
		bias:    mat.NewVecDense(lander.NumActions, append([]float64(nil), bias...)),
		scores:  mat.NewVecDense(lander.NumActions, nil),
	}, nil
}

// NewDefaultLinear returns a hand-weighted policy: brake when sinking fast,
// counter-rotate when tilted, and lean toward the pad.
func NewDefaultLinear() *Linear {
	w := []float64{
		// x, y, vx, vy, angle, spin, pad dx, pad dy, fuel
		0, 0, 0, 0, 0, 0, 0, 0, 0, // noop
		0, 0, 0, 0, 6, 0.5, -1, 0, 0, // left
		0, 0, 0, 4, 0, 0, 0, 0, 0, // main
		0, 0, 0, 0, -6, -0.5, 1, 0, 0, // right
	}
	b := []float64{0, -0.3, -1.2, -0.3}
	l, err := NewLinear(w, b)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Linear) Name() string        { return "linear" }
func (l *Linear) Description() string { return "Argmax over a linear score per action" }
func (l *Linear) Reset()              {}

// Scores returns the action scores for obs.
func (l *Linear) Scores(obs lander.Observation) []float64 {
	l.scores.MulVec(l.weights, obs.Vec())
	l.scores.AddVec(l.scores, l.bias)
	return append([]float64(nil), l.scores.RawVector().Data...)
}

// Act returns the action with the highest score. Ties go to the lowest
// action index.
func (l *Linear) Act(obs lander.Observation) lander.Action {
	return lander.Action(floats.MaxIdx(l.Scores(obs)))
}
