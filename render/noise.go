package render

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise is the organic variation source shared by layers
type Noise struct {
	n opensimplex.Noise
}

// NewNoise creates a noise source; equal seeds yield equal frames
func NewNoise(seed int64) *Noise {
	return &Noise{n: opensimplex.New(seed)}
}

// Ring samples a closed loop around the centre at angle, evolving with t
func (n *Noise) Ring(angle, t, scale float64) float64 {
	return n.n.Eval3(math.Cos(angle)*scale, math.Sin(angle)*scale, t)
}

// Drift is a slow one-dimensional wander keyed by seed, in [-1, 1]
func (n *Noise) Drift(seed, t float64) float64 {
	return n.n.Eval2(seed*7.31, t)
}
