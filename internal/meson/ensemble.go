package meson

import (
	"context"
	"errors"
	"sync"
)

// SolveAll solves reqs on up to workers goroutines. Results keep request
// order; a failed request leaves a nil entry and its error joins the
// returned error. Options.Search.OnIteration may be called concurrently.
func (m *Meson) SolveAll(ctx context.Context, reqs []StateRequest, workers int) ([]*Wavefunction, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	out := make([]*Wavefunction, len(reqs))
	errs := make([]error, len(reqs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i], errs[i] = m.Solve(ctx, reqs[i])
			}
		}()
	}
	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out, errors.Join(errs...)
}
