// Package radial encodes the radial Schrödinger equation of a two-body
// system bound by a linear plus Coulomb-like potential
//
//	V(r) = b·r − (4/3)·a/r
//
// as a first-order system in (u, du/dr).
package radial

import (
	"fmt"
	"math"

	"github.com/san-kum/quarkonium/internal/dynamo"
)

// Params is an immutable snapshot of the physical parameters of one trial.
type Params struct {
	Mu      float64 // reduced mass
	L       int     // angular momentum quantum number
	Energy  float64 // binding energy E
	Slope   float64 // string tension b
	Coulomb float64 // Coulomb strength a
}

func (p Params) Validate() error {
	if p.L < 0 {
		return fmt.Errorf("%w: angular momentum must be >= 0, got %d", dynamo.ErrParameterBounds, p.L)
	}
	if !(p.Mu > 0) || math.IsInf(p.Mu, 0) {
		return fmt.Errorf("%w: reduced mass must be positive, got %g", dynamo.ErrParameterBounds, p.Mu)
	}
	return nil
}

// Parameter names the field a shooting search varies.
type Parameter int

const (
	Energy Parameter = iota
	Slope
)

func (p Parameter) String() string {
	switch p {
	case Energy:
		return "energy"
	case Slope:
		return "slope"
	default:
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
}

// With returns a copy of p with the named field set to v.
func (p Params) With(param Parameter, v float64) Params {
	switch param {
	case Energy:
		p.Energy = v
	case Slope:
		p.Slope = v
	}
	return p
}

// Equation is the right-hand side of the radial equation for fixed Params.
type Equation struct {
	p Params
}

func NewEquation(p Params) *Equation {
	return &Equation{p: p}
}

func (e *Equation) StateDim() int { return 2 }

func (e *Equation) Derive(x dynamo.State, r float64) dynamo.State {
	u, du := x[0], x[1]
	if r <= 0 {
		return dynamo.State{du, 0}
	}
	p := e.p
	centrifugal := float64(p.L*(p.L+1)) / (r * r)
	kinetic := p.Energy - p.Potential(r)
	return dynamo.State{du, (centrifugal - 2*p.Mu*kinetic) * u}
}

// Potential returns V(r) for the slope and Coulomb strength of p.
func (p Params) Potential(r float64) float64 {
	return p.Slope*r - 4*p.Coulomb/(3*r)
}
