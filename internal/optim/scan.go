// Package optim locates shooting brackets by sweeping a parameter range.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/quarkonium/internal/shooting"
)

var ErrInvalidRange = errors.New("optim: invalid scan range")

// Bracket is an interval whose ends carry different signatures. Every
// eigenvalue lies in some bracket, but not every bracket holds one.
type Bracket struct {
	Lo, Hi       float64
	SigLo, SigHi shooting.Signature
}

// Scanner evaluates a uniform grid of trial values.
type Scanner struct {
	values []float64
}

// NewScanner samples [lo, hi] at n points.
func NewScanner(lo, hi float64, n int) (*Scanner, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidRange, n)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(hi > lo) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}
	return &Scanner{values: floats.Span(make([]float64, n), lo, hi)}, nil
}

// Scan evaluates every grid value on up to workers goroutines and returns
// the adjacent pairs whose signatures differ, in increasing order.
func (s *Scanner) Scan(ctx context.Context, eval shooting.Evaluator, workers int) ([]Bracket, error) {
	sigs, err := s.signatures(ctx, eval, workers)
	if err != nil {
		return nil, err
	}

	var out []Bracket
	for i := 1; i < len(sigs); i++ {
		if sigs[i] != sigs[i-1] {
			out = append(out, Bracket{
				Lo:    s.values[i-1],
				Hi:    s.values[i],
				SigLo: sigs[i-1],
				SigHi: sigs[i],
			})
		}
	}
	return out, nil
}

func (s *Scanner) signatures(ctx context.Context, eval shooting.Evaluator, workers int) ([]shooting.Signature, error) {
	workers = min(max(workers, 1), len(s.values))
	sigs := make([]shooting.Signature, len(s.values))
	errs := make([]error, len(s.values))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				sig, err := eval(ctx, s.values[i])
				if err != nil {
					errs[i] = fmt.Errorf("evaluate %g: %w", s.values[i], err)
					continue
				}
				sigs[i] = sig
			}
		}()
	}
	for i := range s.values {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sigs, nil
}
