// Package metrics derives scalar observables from sampled radial wavefunctions.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/quarkonium/internal/shooting"
)

// Metric reduces a wavefunction u sampled on the grid r to a scalar.
type Metric interface {
	Name() string
	Compute(r, u []float64) float64
}

// Integrate returns the composite Simpson estimate of ∫f dr, falling back to
// the trapezoid rule for two samples. r must be strictly increasing.
func Integrate(r, f []float64) float64 {
	switch {
	case len(r) != len(f) || len(r) < 2:
		return 0
	case len(r) == 2:
		return integrate.Trapezoidal(r, f)
	default:
		return integrate.Simpsons(r, f)
	}
}

// Density returns u² sample by sample.
func Density(u []float64) []float64 {
	d := make([]float64, len(u))
	for i, v := range u {
		d[i] = v * v
	}
	return d
}

type Norm struct{}

func (Norm) Name() string { return "norm" }
func (Norm) Compute(r, u []float64) float64 {
	return Integrate(r, Density(u))
}

// MeanRadius is <r> = ∫r·u² / ∫u².
type MeanRadius struct{}

func (MeanRadius) Name() string { return "mean_radius" }
func (MeanRadius) Compute(r, u []float64) float64 {
	return moment(r, u, 1)
}

// RMSRadius is sqrt(<r²>).
type RMSRadius struct{}

func (RMSRadius) Name() string { return "rms_radius" }
func (RMSRadius) Compute(r, u []float64) float64 {
	return math.Sqrt(moment(r, u, 2))
}

// Nodes counts sign changes away from the origin, where u starts at zero.
type Nodes struct{}

func (Nodes) Name() string { return "nodes" }
func (Nodes) Compute(r, u []float64) float64 {
	if len(u) < 2 {
		return 0
	}
	return float64(shooting.CountNodes(u[1:]))
}

type TurningPoints struct{}

func (TurningPoints) Name() string { return "turning_points" }
func (TurningPoints) Compute(r, u []float64) float64 {
	return float64(shooting.CountTurningPoints(u))
}

func moment(r, u []float64, k float64) float64 {
	norm := Norm{}.Compute(r, u)
	if norm <= 0 {
		return math.NaN()
	}
	f := make([]float64, len(u))
	for i, v := range u {
		f[i] = math.Pow(r[i], k) * v * v
	}
	return Integrate(r, f) / norm
}

func Default() []Metric {
	return []Metric{Norm{}, MeanRadius{}, RMSRadius{}, Nodes{}, TurningPoints{}}
}

// Evaluate computes every metric in ms, keyed by name.
func Evaluate(r, u []float64, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Compute(r, u)
	}
	return out
}
