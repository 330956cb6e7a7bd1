package shooting

import (
	"context"
	"fmt"
	"math"
)

const (
	DefaultThreshold     = 1e-10
	DefaultMaxIterations = 200
)

// Evaluator integrates the trial solution for one candidate value and
// returns its signature.
type Evaluator func(ctx context.Context, v float64) (Signature, error)

// Iteration is a snapshot of the search state before the bracket is narrowed.
type Iteration struct {
	K                int
	A, B, C          float64
	SigA, SigB, SigC Signature
}

func (it Iteration) Width() float64 { return math.Abs(it.C - it.A) }

type Config struct {
	// Threshold stops the search once B is this close to either end.
	Threshold     float64
	MaxIterations int
	// OnIteration, if set, observes every iteration.
	OnIteration func(Iteration)
}

func DefaultConfig() Config {
	return Config{
		Threshold:     DefaultThreshold,
		MaxIterations: DefaultMaxIterations,
	}
}

func (c Config) Validate() error {
	if c.Threshold < 0 || math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: threshold must be >= 0, got %g", ErrInvalidConfig, c.Threshold)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

type Stop int

const (
	// StopAgreement means A, B and C share one signature.
	StopAgreement Stop = iota
	// StopThreshold means the bracket collapsed below the threshold.
	StopThreshold
)

func (s Stop) String() string {
	switch s {
	case StopAgreement:
		return "agreement"
	case StopThreshold:
		return "threshold"
	default:
		return fmt.Sprintf("Stop(%d)", int(s))
	}
}

type Result struct {
	Value      float64
	Signature  Signature
	Iterations int
	Stop       Stop
}

// Bisect searches [a, c] for the value at which the signature returned by
// eval changes. The ends need not be ordered.
func Bisect(ctx context.Context, eval Evaluator, a, c float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if !isFinite(a) || !isFinite(c) {
		return Result{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidBracket, a, c)
	}

	b := 0.5 * (a + c)

	sigA, err := evaluate(ctx, eval, a)
	if err != nil {
		return Result{}, err
	}
	sigB, err := evaluate(ctx, eval, b)
	if err != nil {
		return Result{}, err
	}
	sigC, err := evaluate(ctx, eval, c)
	if err != nil {
		return Result{}, err
	}

	for k := 0; ; k++ {
		if sigA == sigB && sigB == sigC {
			return Result{Value: b, Signature: sigB, Iterations: k, Stop: StopAgreement}, nil
		}

		if cfg.OnIteration != nil {
			cfg.OnIteration(Iteration{K: k, A: a, B: b, C: c, SigA: sigA, SigB: sigB, SigC: sigC})
		}

		if sigA == sigC {
			return Result{}, fmt.Errorf("%w: %v at both %g and %g but %v at %g",
				ErrAmbiguousBracket, sigA, a, c, sigB, b)
		}
		if math.Abs(b-a) <= cfg.Threshold || math.Abs(c-b) <= cfg.Threshold {
			return Result{Value: b, Signature: sigB, Iterations: k, Stop: StopThreshold}, nil
		}
		if k >= cfg.MaxIterations {
			return Result{}, fmt.Errorf("%w: %d iterations, bracket [%g, %g]", ErrNoConvergence, k, a, c)
		}

		// sigA == sigB implies sigC != sigB here
		if sigA != sigB {
			c, sigC = b, sigB
		} else {
			a, sigA = b, sigB
		}

		b = 0.5 * (a + c)
		if sigB, err = evaluate(ctx, eval, b); err != nil {
			return Result{}, err
		}
	}
}

func evaluate(ctx context.Context, eval Evaluator, v float64) (Signature, error) {
	if err := ctx.Err(); err != nil {
		return Signature{}, err
	}
	sig, err := eval(ctx, v)
	if err != nil {
		return Signature{}, fmt.Errorf("evaluate %g: %w", v, err)
	}
	return sig, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
