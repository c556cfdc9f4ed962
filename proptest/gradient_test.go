package proptest

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/medium"
	"github.com/san-kum/wavefd/internal/orchestrator"
	"github.com/san-kum/wavefd/internal/wavelet"
)

// §8, E4: for a 1% perturbation of K in a single physical-grid cell, the
// adjoint-computed gradient entry at that same cell must match the
// finite-difference gradient of the squared-misfit objective
// J = 1/2 * sum(trace^2) (the adjoint source used throughout gradient.go is
// the shot's own forward-modeled trace) to within 5% relative error. GKI is
// indexed on the physical grid, the same indexing medium.Field's KVals
// uses, so the perturbed cell and the probed gradient entry line up
// directly — no cross-variable or whole-grid summation needed.
var _ = Describe("Gradient validation via finite difference", func() {
	It("matches a central finite-difference estimate for a single-cell K perturbation", func() {
		nzPhys, nxPhys := 24, 24
		dz, dx := 10.0, 10.0
		p := 8
		dt, nt := 1e-3, 120
		vp0, rho0 := 2000.0, 2000.0

		nzPad, _ := nzPhys+2*p, nxPhys+2*p
		srcPos := coupling.Position{Z: float64(nzPad/2) * dz, X: float64(nzPad/2) * dx}
		rcvPos := coupling.Position{Z: float64(nzPad/2) * dz, X: float64(nzPad/2+6) * dx}

		k0 := vp0 * vp0 * rho0
		baseK := make([]float64, nzPhys*nxPhys)
		rhoVals := make([]float64, nzPhys*nxPhys)
		for i := range baseK {
			baseK[i] = k0
			rhoVals[i] = rho0
		}
		// Perturb a cell a few cells off the source on the straight path to
		// the receiver, so its sensitivity to the recorded trace sits well
		// above the noise floor.
		cellIdx := (nzPhys/2)*nxPhys + nxPhys/2 + 3

		objective := func(kVals []float64) (float64, *orchestrator.Gradient) {
			cfg := orchestrator.Config{P: p, Dt: dt, Nt: nt, DtOut: dt, Mode: orchestrator.ModeAcoustic, Gradient: true, Workers: 1}
			e := orchestrator.New(cfg)
			mat := &medium.Field{Nz: nzPhys, Nx: nxPhys, Dz: dz, Dx: dx, KVals: kVals, RhoVals: rhoVals}
			must(e.UpdateMedium(mat))
			shot := acquisition.Shot{
				Sources:   []acquisition.Source{{Pos: srcPos, Flag: acquisition.FieldPressure, WaveletID: 0}},
				Receivers: []acquisition.Receiver{{Pos: rcvPos, Field: acquisition.FieldPressure}},
			}
			must(e.UpdateAcquisition(&acquisition.Table{Shots: []acquisition.Shot{shot}}))
			must(e.UpdateWavelets(&wavelet.Table{Series: []wavelet.Series{wavelet.Ricker(12.0, dt, nt)}}))
			gathers, grad, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			trace := gathers.Shots[0].Traces[0].Samples
			j := 0.0
			for _, v := range trace {
				j += 0.5 * v * v
			}
			return j, grad
		}

		_, grad0 := objective(baseK)
		probed := grad0.GKI[cellIdx]

		delta := 0.01
		dK := k0 * delta

		kPlus := append([]float64(nil), baseK...)
		kPlus[cellIdx] = k0 * (1 + delta)
		kMinus := append([]float64(nil), baseK...)
		kMinus[cellIdx] = k0 * (1 - delta)

		jPlus, _ := objective(kPlus)
		jMinus, _ := objective(kMinus)

		finiteDiff := (jPlus - jMinus) / (2 * dK)

		Expect(probed).NotTo(BeZero())
		relErr := math.Abs(finiteDiff-probed) / math.Abs(finiteDiff)
		Expect(relErr).To(BeNumerically("<", 0.05))
	})
})
