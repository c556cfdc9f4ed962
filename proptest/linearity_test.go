package proptest

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/wavelet"
)

// §8.2: run(a*w1 + b*w2) must equal a*run(w1) + b*run(w2) per receiver,
// since the acoustic stepper is linear in the injected source term.
var _ = Describe("Linearity in wavelet", func() {
	It("superposes under scaling and addition", func() {
		nz, nx := 50, 50
		dz, dx := 10.0, 10.0
		p := 8
		dt, nt := 1e-3, 150
		a, b := 0.7, -1.3

		srcPos := coupling.Position{Z: float64(nz/2) * dz, X: float64(nz/2) * dx}
		rcvPos := coupling.Position{Z: float64(nz/2) * dz, X: float64(nz/2+10) * dx}

		w1 := wavelet.Ricker(12.0, dt, nt)
		w2 := wavelet.Ricker(7.0, dt, nt)
		combined := w1.Scale(a).Add(w2.Scale(b))

		run := func(w wavelet.Series) []float64 {
			e := homogeneousEngineWithWavelet(nz-2*p, nx-2*p, dz, dx, 2000, 2000, dt, nt, p, srcPos, rcvPos, w)
			g, _, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			return g.Shots[0].Traces[0].Samples
		}

		combinedTrace := run(combined)
		trace1 := run(w1)
		trace2 := run(w2)

		superposed := make([]float64, len(combinedTrace))
		for i := range superposed {
			superposed[i] = a*trace1[i] + b*trace2[i]
		}
		Expect(l2RelDiff(combinedTrace, superposed)).To(BeNumerically("<", 1e-10))
	})
})
