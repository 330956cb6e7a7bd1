package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/meson"
	"github.com/san-kum/quarkonium/internal/shooting"
)

const (
	DefaultIntegrator = "rk45"
	DefaultTolerance  = 1e-8
	DefaultSubsteps   = 4
	DefaultWorkers    = 1
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config is one solver run: a quark pair and the states to solve for it.
type Config struct {
	Name         string        `yaml:"name"`
	Quarks       [2]string     `yaml:"quarks,flow"`
	Integrator   string        `yaml:"integrator"`
	Tolerance    float64       `yaml:"tolerance"`
	Substeps     int           `yaml:"substeps"`
	Search       SearchConfig  `yaml:"search"`
	SlopeBracket []float64     `yaml:"slope_bracket,flow,omitempty"`
	States       []StateConfig `yaml:"states"`
	Workers      int           `yaml:"workers"`
}

type SearchConfig struct {
	Threshold     float64 `yaml:"threshold"`
	MaxIterations int     `yaml:"max_iterations"`
}

type StateConfig struct {
	N       int        `yaml:"n"`
	L       int        `yaml:"l"`
	Bracket [2]float64 `yaml:"bracket,flow"`
}

func DefaultConfig() *Config {
	return GetPreset("charmonium")
}

// Load reads path over the plan for the file's quark pair, or over
// DefaultConfig when the file names no quarks, so a file only needs the
// fields it changes. A file that sets states replaces the plan's states.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var head struct {
		Quarks [2]string `yaml:"quarks,flow"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Quarks != [2]string{} {
		if cfg = PresetForQuarks(head.Quarks[0], head.Quarks[1]); cfg == nil {
			cfg = DefaultConfig()
			cfg.States = nil
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.States) == 0 {
		return nil, fmt.Errorf("%w: %s: no states for quarks %s-%s", ErrInvalidConfig, path, cfg.Quarks[0], cfg.Quarks[1])
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.MesonPreset(); err != nil {
		return err
	}
	if c.Integrator == "" {
		return fmt.Errorf("%w: integrator is empty", ErrInvalidConfig)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.Substeps < 1 {
		return fmt.Errorf("%w: substeps must be >= 1, got %d", ErrInvalidConfig, c.Substeps)
	}
	if err := c.SearchConfig().Validate(); err != nil {
		return err
	}
	if len(c.SlopeBracket) != 0 && len(c.SlopeBracket) != 2 {
		return fmt.Errorf("%w: slope_bracket needs 2 values, got %d", ErrInvalidConfig, len(c.SlopeBracket))
	}
	if len(c.States) == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidConfig)
	}
	for i, s := range c.States {
		if err := s.Request().Validate(); err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
		if !finite(s.Bracket[0]) || !finite(s.Bracket[1]) {
			return fmt.Errorf("state %d: %w: [%g, %g]", i, shooting.ErrInvalidBracket, s.Bracket[0], s.Bracket[1])
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// MesonPreset resolves the quark pair and applies the slope bracket override.
func (c *Config) MesonPreset() (meson.Preset, error) {
	q1, err := meson.ParseQuark(c.Quarks[0])
	if err != nil {
		return meson.Preset{}, err
	}
	q2, err := meson.ParseQuark(c.Quarks[1])
	if err != nil {
		return meson.Preset{}, err
	}
	p, err := meson.LookupPreset(q1, q2)
	if err != nil {
		return meson.Preset{}, err
	}
	if len(c.SlopeBracket) == 2 {
		p.SlopeBracket = [2]float64{c.SlopeBracket[0], c.SlopeBracket[1]}
	}
	return p, nil
}

func (c *Config) SolverConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Tolerance = c.Tolerance
	cfg.Substeps = c.Substeps
	return cfg
}

func (c *Config) SearchConfig() shooting.Config {
	return shooting.Config{
		Threshold:     c.Search.Threshold,
		MaxIterations: c.Search.MaxIterations,
	}
}

func (c *Config) Requests() []meson.StateRequest {
	reqs := make([]meson.StateRequest, len(c.States))
	for i, s := range c.States {
		reqs[i] = s.Request()
	}
	return reqs
}

func (s StateConfig) Request() meson.StateRequest {
	return meson.StateRequest{N: s.N, L: s.L, Bracket: s.Bracket}
}

func (c *Config) Clone() *Config {
	out := *c
	out.SlopeBracket = append([]float64(nil), c.SlopeBracket...)
	out.States = append([]StateConfig(nil), c.States...)
	return &out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
