package meson

import (
	"fmt"

	"github.com/san-kum/quarkonium/internal/metrics"
	"github.com/san-kum/quarkonium/internal/shooting"
)

// Wavefunction is a solved state. U is normalized so that ∫U² dr = 1 on Grid.
type Wavefunction struct {
	N, L   int
	Energy float64
	// Mass is the predicted meson mass m1 + m2 + Energy.
	Mass       float64
	Slope      float64
	Grid       []float64
	U          []float64
	Iterations int
	Signature  shooting.Signature
	Stop       shooting.Stop
}

func (w *Wavefunction) Label() string {
	return fmt.Sprintf("n=%d, l=%d", w.N, w.L)
}

func (w *Wavefunction) Metrics() map[string]float64 {
	return metrics.Evaluate(w.Grid, w.U, metrics.Default())
}
