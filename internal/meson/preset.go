package meson

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

type Quark string

const (
	Charm  Quark = "charm"
	Bottom Quark = "bottom"
)

// QuarkMasses holds constituent masses in GeV.
var QuarkMasses = map[Quark]float64{
	Charm:  1.34,
	Bottom: 4.7,
}

func ParseQuark(s string) (Quark, error) {
	q := Quark(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := QuarkMasses[q]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuark, s)
	}
	return q, nil
}

// Preset describes one quark pair. Distances are in GeV⁻¹, masses in GeV.
type Preset struct {
	Name   string
	Quarks [2]Quark
	// StateMass is the measured mass of the (n, l) = (1, 0) state; it only
	// seeds the energy used by the slope search.
	StateMass    float64
	Coulomb      float64
	RMin         float64
	RMax         float64
	Step         float64
	SlopeBracket [2]float64
}

var presets = []Preset{
	{
		Name:         "charmonium",
		Quarks:       [2]Quark{Charm, Charm},
		StateMass:    3.068,
		Coulomb:      0.4,
		RMin:         0.0001,
		RMax:         15,
		Step:         0.01,
		SlopeBracket: [2]float64{0.19, 0.2},
	},
	{
		Name:         "bottomonium",
		Quarks:       [2]Quark{Bottom, Bottom},
		StateMass:    9.3987,
		Coulomb:      0.28,
		RMin:         0.0001,
		RMax:         9,
		Step:         0.01,
		SlopeBracket: [2]float64{0.2, 0.3},
	},
	{
		Name:         "bc",
		Quarks:       [2]Quark{Bottom, Charm},
		StateMass:    6.276,
		Coulomb:      0.34,
		RMin:         0.0001,
		RMax:         15,
		Step:         0.01,
		SlopeBracket: [2]float64{0.1, 0.2},
	},
}

// LookupPreset returns the preset for a quark pair in either order. The
// returned preset keeps the caller's order.
func LookupPreset(q1, q2 Quark) (Preset, error) {
	for _, p := range presets {
		if p.Quarks == [2]Quark{q1, q2} {
			return p, nil
		}
		if p.Quarks == [2]Quark{q2, q1} {
			p.Quarks = [2]Quark{q1, q2}
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s-%s", ErrUnknownPreset, q1, q2)
}

func PresetByName(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p Preset) Masses() (float64, float64) {
	return QuarkMasses[p.Quarks[0]], QuarkMasses[p.Quarks[1]]
}

func (p Preset) ReducedMass() float64 {
	m1, m2 := p.Masses()
	return 1 / (1/m1 + 1/m2)
}

// ReferenceEnergy is the binding energy of the measured ground state.
func (p Preset) ReferenceEnergy() float64 {
	m1, m2 := p.Masses()
	return p.StateMass - (m1 + m2)
}

// Grid samples [RMin, RMax) every Step.
func (p Preset) Grid() []float64 {
	n := int(math.Ceil((p.RMax - p.RMin) / p.Step))
	if n < 2 {
		return nil
	}
	return floats.Span(make([]float64, n), p.RMin, p.RMin+float64(n-1)*p.Step)
}
