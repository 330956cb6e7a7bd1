package config

import (
	"sort"

	"github.com/san-kum/quarkonium/internal/meson"
	"github.com/san-kum/quarkonium/internal/shooting"
)

func plan(name, q1, q2 string, states ...StateConfig) *Config {
	return &Config{
		Name:       name,
		Quarks:     [2]string{q1, q2},
		Integrator: DefaultIntegrator,
		Tolerance:  DefaultTolerance,
		Substeps:   DefaultSubsteps,
		Search: SearchConfig{
			Threshold:     shooting.DefaultThreshold,
			MaxIterations: shooting.DefaultMaxIterations,
		},
		States:  states,
		Workers: DefaultWorkers,
	}
}

// Presets are the standard spectra, each with the energy brackets that
// isolate its states.
var Presets = map[string]*Config{
	"charmonium": plan("charmonium", "charm", "charm",
		StateConfig{N: 1, L: 0, Bracket: [2]float64{0.3, 0.4}},
		StateConfig{N: 1, L: 1, Bracket: [2]float64{0.8, 0.9}},
		StateConfig{N: 2, L: 0, Bracket: [2]float64{1, 1.1}},
		StateConfig{N: 3, L: 0, Bracket: [2]float64{1.5, 1.6}},
	),
	"bottomonium": plan("bottomonium", "bottom", "bottom",
		StateConfig{N: 1, L: 0, Bracket: [2]float64{0.12, 0.13}},
		StateConfig{N: 1, L: 1, Bracket: [2]float64{0.5, 0.6}},
		StateConfig{N: 2, L: 0, Bracket: [2]float64{0.6, 0.7}},
		StateConfig{N: 3, L: 0, Bracket: [2]float64{1, 1.1}},
	),
	"bc": plan("bc", "bottom", "charm",
		StateConfig{N: 1, L: 0, Bracket: [2]float64{0.2, 0.3}},
		StateConfig{N: 1, L: 1, Bracket: [2]float64{0.6, 0.7}},
		StateConfig{N: 2, L: 0, Bracket: [2]float64{1.1, 1.2}},
	),
}

// GetPreset returns a copy of the named plan, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// PresetForQuarks returns a copy of the plan for the quark pair in either
// order, or nil when the pair has none.
func PresetForQuarks(q1, q2 string) *Config {
	a, err := meson.ParseQuark(q1)
	if err != nil {
		return nil
	}
	b, err := meson.ParseQuark(q2)
	if err != nil {
		return nil
	}
	p, err := meson.LookupPreset(a, b)
	if err != nil {
		return nil
	}
	return GetPreset(p.Name)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
