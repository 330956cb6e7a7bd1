package shooting_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/integrators"
	"github.com/san-kum/quarkonium/internal/shooting"
)

// stepAt returns an evaluator whose signature changes at x.
func stepAt(x float64, calls *int) shooting.Evaluator {
	return func(_ context.Context, v float64) (shooting.Signature, error) {
		if calls != nil {
			*calls++
		}
		if v < x {
			return shooting.Signature{Turns: 2, Nodes: 1}, nil
		}
		return shooting.Signature{Turns: 1, Nodes: 2}, nil
	}
}

type oscillator struct{ energy float64 }

func (o *oscillator) StateDim() int { return 2 }
func (o *oscillator) Derive(x dynamo.State, r float64) dynamo.State {
	return dynamo.State{x[1], (r*r - 2*o.energy) * x[0]}
}

var _ = Describe("Bisect", func() {
	var (
		ctx context.Context
		cfg shooting.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = shooting.DefaultConfig()
	})

	It("converges on the signature change", func() {
		res, err := shooting.Bisect(ctx, stepAt(0.3, nil), 0, 1, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(BeNumerically("~", 0.3, 1e-9))
		Expect(res.Stop).To(Equal(shooting.StopThreshold))
	})

	It("accepts the bracket ends in either order", func() {
		res, err := shooting.Bisect(ctx, stepAt(0.3, nil), 1, 0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(BeNumerically("~", 0.3, 1e-9))
	})

	It("returns the midpoint at once when all signatures agree", func() {
		calls := 0
		res, err := shooting.Bisect(ctx, stepAt(5, &calls), 0, 1, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(Equal(0.5))
		Expect(res.Iterations).To(BeZero())
		Expect(res.Stop).To(Equal(shooting.StopAgreement))
		Expect(calls).To(Equal(3))
	})

	It("shrinks the bracket on every iteration", func() {
		var widths []float64
		cfg.OnIteration = func(it shooting.Iteration) {
			widths = append(widths, it.Width())
		}
		_, err := shooting.Bisect(ctx, stepAt(0.123, nil), 0, 1, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(widths)).To(BeNumerically(">", 10))
		for i := 1; i < len(widths); i++ {
			Expect(widths[i]).To(BeNumerically("<", widths[i-1]))
		}
	})

	It("terminates with a zero threshold once the midpoint meets an end", func() {
		cfg.Threshold = 0
		res, err := shooting.Bisect(ctx, stepAt(0.3, nil), 0, 1, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Stop).To(Equal(shooting.StopThreshold))
		Expect(res.Iterations).To(BeNumerically("<", cfg.MaxIterations))
	})

	It("reports non-convergence at the iteration cap", func() {
		cfg.Threshold = 0
		cfg.MaxIterations = 5
		_, err := shooting.Bisect(ctx, stepAt(0.3, nil), 0, 1, cfg)
		Expect(err).To(MatchError(shooting.ErrNoConvergence))
	})

	It("rejects a bracket whose ends share a signature the midpoint lacks", func() {
		band := func(_ context.Context, v float64) (shooting.Signature, error) {
			if v > 0.4 && v < 0.6 {
				return shooting.Signature{Turns: 1}, nil
			}
			return shooting.Signature{}, nil
		}
		_, err := shooting.Bisect(ctx, band, 0, 1, cfg)
		Expect(err).To(MatchError(shooting.ErrAmbiguousBracket))
	})

	It("propagates evaluator failures", func() {
		boom := errors.New("boom")
		failing := func(context.Context, float64) (shooting.Signature, error) {
			return shooting.Signature{}, boom
		}
		_, err := shooting.Bisect(ctx, failing, 0, 1, cfg)
		Expect(errors.Is(err, boom)).To(BeTrue())
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := shooting.Bisect(canceled, stepAt(0.3, nil), 0, 1, cfg)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	DescribeTable("validates its input",
		func(a, c float64, mutate func(*shooting.Config), want error) {
			mutate(&cfg)
			_, err := shooting.Bisect(ctx, stepAt(0.3, nil), a, c, cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("negative threshold", 0.0, 1.0, func(c *shooting.Config) { c.Threshold = -1 }, shooting.ErrInvalidConfig),
		Entry("zero iteration cap", 0.0, 1.0, func(c *shooting.Config) { c.MaxIterations = 0 }, shooting.ErrInvalidConfig),
		Entry("NaN end", math.NaN(), 1.0, func(*shooting.Config) {}, shooting.ErrInvalidBracket),
		Entry("infinite end", 0.0, math.Inf(1), func(*shooting.Config) {}, shooting.ErrInvalidBracket),
	)

	It("finds the ground state of the three-dimensional harmonic oscillator", func() {
		solver := integrators.NewGridSolver(func() dynamo.Integrator { return integrators.NewRK45() }, dynamo.DefaultConfig())
		grid := make([]float64, 600)
		for i := range grid {
			grid[i] = 0.0001 + 0.01*float64(i)
		}

		eval := func(ctx context.Context, e float64) (shooting.Signature, error) {
			traj, err := solver.Solve(ctx, &oscillator{energy: e}, dynamo.State{0, 1}, grid)
			if err != nil {
				return shooting.Signature{}, err
			}
			u := make([]float64, len(traj))
			for i, s := range traj {
				u[i] = s[0]
			}
			return shooting.Classify(u), nil
		}

		res, err := shooting.Bisect(ctx, eval, 1.2, 1.8, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(BeNumerically("~", 1.5, 1e-3))
	})
})
