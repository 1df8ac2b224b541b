package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/integrators"
)

var _ = Describe("EulerCauchy", func() {
	identity := func(y float64) float64 { return y }
	still := func(y float64) float64 { return 0 }

	DescribeTable("grid and solution have the same length",
		func(t0, h, tfinal, y0 float64) {
			grid, err := integrators.Grid(t0, h, tfinal)
			Expect(err).NotTo(HaveOccurred())

			y, err := integrators.EulerCauchy(identity, t0, h, tfinal, y0)
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(HaveLen(len(grid)))
			Expect(y[0]).To(Equal(y0))
		},
		Entry("unit step", 0.0, 1.0, 3.0, 1.0),
		Entry("fine step", 0.0, 0.001, 2.0, -3.5),
		Entry("offset start", 5.0, 0.2, 7.0, 0.25),
		Entry("start equals end", 1.0, 0.1, 1.0, 42.0),
	)

	It("keeps a constant solution when F is zero", func() {
		y, err := integrators.EulerCauchy(still, 0, 0.01, 3, 7.25)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range y {
			Expect(v).To(Equal(7.25))
		}
	})

	It("follows y0*(1+h)^i for exponential growth", func() {
		const h, y0 = 0.05, 1.5
		y, err := integrators.EulerCauchy(identity, 0, h, 2, y0)
		Expect(err).NotTo(HaveOccurred())
		for i, v := range y {
			want := y0 * math.Pow(1+h, float64(i))
			Expect(v).To(BeNumerically("~", want, 1e-12*want))
		}
	})

	It("integrates backwards with a negative step", func() {
		y, err := integrators.EulerCauchy(identity, 1, -0.5, 0, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(y).To(Equal([]float64{4, 2, 1}))
	})

	It("rejects a zero step without returning a sequence", func() {
		y, err := integrators.EulerCauchy(identity, 0, 0, 1, 1)
		Expect(err).To(MatchError(dynamo.ErrInvalidStep))
		Expect(y).To(BeNil())
	})

	It("rejects a nil right-hand side", func() {
		_, err := integrators.EulerCauchy(nil, 0, 0.1, 1, 1)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})
})
