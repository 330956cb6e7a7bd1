package shooting_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quarkonium/internal/shooting"
)

// sampledSine samples sin on (0, 4π) off-centre, so no two samples tie at a
// peak and none lands on an exact zero.
func sampledSine(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin((float64(i) + 0.3) * 4 * math.Pi / float64(n))
	}
	return x
}

var _ = Describe("Classify", func() {
	It("counts the extrema and zero crossings of two sine periods", func() {
		sig := shooting.Classify(sampledSine(400))
		Expect(sig).To(Equal(shooting.Signature{Turns: 4, Nodes: 3}))
	})

	DescribeTable("returns zero below the minimum length",
		func(x []float64) {
			Expect(shooting.CountTurningPoints(x)).To(BeZero())
			if len(x) < 2 {
				Expect(shooting.CountNodes(x)).To(BeZero())
			}
		},
		Entry("nil", []float64(nil)),
		Entry("one sample", []float64{-1}),
		Entry("two samples", []float64{1, -1}),
	)

	It("returns zero for a non-zero constant sequence", func() {
		x := []float64{3, 3, 3, 3, 3}
		Expect(shooting.Classify(x)).To(Equal(shooting.Signature{}))
	})

	It("never treats the first sample as a centre", func() {
		// a wraparound read of x[-1] would report a maximum at index 0
		Expect(shooting.CountTurningPoints([]float64{5, 1, 2, 3, 4})).To(Equal(1))
	})

	It("counts an exact zero touch on both sides", func() {
		Expect(shooting.CountNodes([]float64{1, 0, 1})).To(Equal(2))
	})

	It("ignores flat plateaus", func() {
		Expect(shooting.CountTurningPoints([]float64{0, 1, 1, 0})).To(BeZero())
	})

	It("keeps the node count under positive scaling and negation", func() {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 20; trial++ {
			x := make([]float64, 50)
			for i := range x {
				x[i] = rng.NormFloat64()
			}
			nodes := shooting.CountNodes(x)

			scaled := make([]float64, len(x))
			negated := make([]float64, len(x))
			for i, v := range x {
				scaled[i] = 2.5 * v
				negated[i] = -v
			}
			Expect(shooting.CountNodes(scaled)).To(Equal(nodes))
			Expect(shooting.CountNodes(negated)).To(Equal(nodes))
		}
	})
})
