package proptest

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/greens"
	"github.com/san-kum/wavefd/internal/medium"
	"github.com/san-kum/wavefd/internal/orchestrator"
	"github.com/san-kum/wavefd/internal/wavelet"
)

// §8.5: halving δx, δz, and Δt together should reduce the L2 error against
// the analytic homogeneous-medium Green's function by roughly a factor of
// four (second-order accuracy).
var _ = Describe("Grid-refinement convergence", func() {
	It("reduces L2 error against the analytic Green's function as grid spacing halves", func() {
		vp, rho := 2000.0, 2000.0
		freq := 10.0
		p := 10

		runAt := func(nzPhys, nxPhys int, dz, dx, dt float64, nt int) float64 {
			offsetCells := 10
			nzPad, _ := nzPhys+2*p, nxPhys+2*p
			srcPos := coupling.Position{Z: float64(nzPad/2) * dz, X: float64(nzPad/2) * dx}
			rcvPos := coupling.Position{Z: float64(nzPad/2) * dz, X: float64(nzPad/2+offsetCells) * dx}

			cfg := orchestrator.Config{P: p, Dt: dt, Nt: nt, DtOut: dt, Mode: orchestrator.ModeAcoustic, Workers: 1}
			e := orchestrator.New(cfg)
			must(e.UpdateMedium(medium.NewHomogeneous(nzPhys, nxPhys, dz, dx, vp, rho)))
			shot := acquisition.Shot{
				Sources:   []acquisition.Source{{Pos: srcPos, Flag: acquisition.FieldPressure, WaveletID: 0}},
				Receivers: []acquisition.Receiver{{Pos: rcvPos, Field: acquisition.FieldPressure}},
			}
			must(e.UpdateAcquisition(&acquisition.Table{Shots: []acquisition.Shot{shot}}))
			src := wavelet.Ricker(freq, dt, nt)
			must(e.UpdateWavelets(&wavelet.Table{Series: []wavelet.Series{src}}))

			gathers, _, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			numeric := gathers.Shots[0].Traces[0].Samples

			r := float64(offsetCells) * dx
			analytic := greens.Synthetic(r, vp, src, nt)
			return l2RelDiff(analytic, numeric)
		}

		coarseErr := runAt(24, 24, 20.0, 20.0, 2e-3, 150)
		fineErr := runAt(48, 48, 10.0, 10.0, 1e-3, 300)

		Expect(fineErr).To(BeNumerically("<=", coarseErr/4))
	})
})
