package shooting

import "fmt"

// Signature is the coarse shape of a sampled trial solution.
type Signature struct {
	Turns int
	Nodes int
}

func (s Signature) String() string {
	return fmt.Sprintf("(turns=%d, nodes=%d)", s.Turns, s.Nodes)
}

// CountTurningPoints counts strict local maxima and minima. Only interior
// samples are centres; the first and last samples serve as neighbours only.
func CountTurningPoints(x []float64) int {
	n := 0
	for i := 1; i < len(x)-1; i++ {
		prev, cur, next := x[i-1], x[i], x[i+1]
		if (prev < cur && next < cur) || (prev > cur && next > cur) {
			n++
		}
	}
	return n
}

// CountNodes counts adjacent pairs whose product is <= 0, so an exact zero
// sample touches the count as well as a sign change.
func CountNodes(x []float64) int {
	n := 0
	for i := 0; i < len(x)-1; i++ {
		if x[i]*x[i+1] <= 0 {
			n++
		}
	}
	return n
}

func Classify(x []float64) Signature {
	return Signature{Turns: CountTurningPoints(x), Nodes: CountNodes(x)}
}
