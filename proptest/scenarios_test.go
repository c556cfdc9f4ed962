package proptest

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/greens"
	"github.com/san-kum/wavefd/internal/medium"
	"github.com/san-kum/wavefd/internal/orchestrator"
	"github.com/san-kum/wavefd/internal/wavelet"
)

func firstArrivalSample(trace []float64, threshold float64) int {
	for i, v := range trace {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return -1
}

// E1: homogeneous acoustic impulse response. First arrival should land
// within one sample of d/vp, and peak amplitude within 5% of the analytic
// Green's function at that offset.
var _ = Describe("E1: homogeneous acoustic impulse response", func() {
	It("matches the analytic first-arrival time and peak amplitude", func() {
		vp, rho := 2000.0, 2000.0
		dz, dx := 10.0, 10.0
		p := 20
		dt, nt := 2e-3, 500
		nzPhys, nxPhys := 100, 100

		nzPad, _ := nzPhys+2*p, nxPhys+2*p
		srcPos := coupling.Position{Z: float64(nzPad/2) * dz, X: float64(nzPad/2) * dx}
		offsetM := 200.0
		rcvPos := coupling.Position{Z: float64(nzPad/2) * dz, X: float64(nzPad/2)*dx + offsetM}

		cfg := orchestrator.Config{P: p, Dt: dt, Nt: nt, DtOut: dt, Mode: orchestrator.ModeAcoustic, Workers: 1}
		e := orchestrator.New(cfg)
		must(e.UpdateMedium(medium.NewHomogeneous(nzPhys, nxPhys, dz, dx, vp, rho)))
		shot := acquisition.Shot{
			Sources:   []acquisition.Source{{Pos: srcPos, Flag: acquisition.FieldPressure, WaveletID: 0}},
			Receivers: []acquisition.Receiver{{Pos: rcvPos, Field: acquisition.FieldPressure}},
		}
		must(e.UpdateAcquisition(&acquisition.Table{Shots: []acquisition.Shot{shot}}))
		src := wavelet.Ricker(10.0, dt, nt)
		must(e.UpdateWavelets(&wavelet.Table{Series: []wavelet.Series{src}}))

		gathers, _, err := e.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		numeric := gathers.Shots[0].Traces[0].Samples

		expectedArrival := greens.ArrivalTime(offsetM, vp)
		threshold := 0.02 * peakAbs(numeric)
		arrivalSample := firstArrivalSample(numeric, threshold)
		Expect(arrivalSample).To(BeNumerically(">", -1))
		arrivalTime := float64(arrivalSample) * dt
		Expect(math.Abs(arrivalTime-expectedArrival)).To(BeNumerically("<=", dt))

		analytic := greens.Synthetic(offsetM, vp, src, nt)
		numericPeak := peakAbs(numeric)
		analyticPeak := greens.PeakAmplitude(analytic)
		Expect(math.Abs(numericPeak-analyticPeak) / analyticPeak).To(BeNumerically("<", 0.05))
	})
})

// E2: two-layer reflection. A velocity contrast at a flat interface should
// produce a direct arrival followed by a distinguishable reflected arrival.
var _ = Describe("E2: two-layer reflection", func() {
	It("produces a direct arrival followed by a reflected arrival", func() {
		dz, dx := 10.0, 10.0
		p := 20
		dt, nt := 2e-3, 700
		nzPhys, nxPhys := 100, 100
		interfaceRow := p + 50

		nzPad, nxPad := nzPhys+2*p, nxPhys+2*p
		srcPos := coupling.Position{Z: float64(p+5) * dz, X: float64(nxPad/2) * dx}
		rcvPos := coupling.Position{Z: float64(p+5) * dz, X: float64(nxPad/2)*dx + 200.0}
		_ = nzPad

		cfg := orchestrator.Config{P: p, Dt: dt, Nt: nt, DtOut: dt, Mode: orchestrator.ModeAcoustic, Workers: 1}
		e := orchestrator.New(cfg)
		must(e.UpdateMedium(medium.NewTwoLayer(nzPhys, nxPhys, dz, dx, interfaceRow-p, 1500, 2500, 2000)))
		shot := acquisition.Shot{
			Sources:   []acquisition.Source{{Pos: srcPos, Flag: acquisition.FieldPressure, WaveletID: 0}},
			Receivers: []acquisition.Receiver{{Pos: rcvPos, Field: acquisition.FieldPressure}},
		}
		must(e.UpdateAcquisition(&acquisition.Table{Shots: []acquisition.Shot{shot}}))
		must(e.UpdateWavelets(&wavelet.Table{Series: []wavelet.Series{wavelet.Ricker(10.0, dt, nt)}}))

		gathers, _, err := e.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		trace := gathers.Shots[0].Traces[0].Samples

		threshold := 0.05 * peakAbs(trace)
		directSample := firstArrivalSample(trace, threshold)
		Expect(directSample).To(BeNumerically(">", -1))

		// Search for a second, later peak above threshold after the direct
		// arrival has passed, the reflected arrival off the layer interface.
		reflectedFound := false
		quietWindow := directSample + int(0.05/dt)
		for i := quietWindow; i < len(trace); i++ {
			if math.Abs(trace[i]) >= threshold {
				reflectedFound = true
				break
			}
		}
		Expect(reflectedFound).To(BeTrue())
	})
})
