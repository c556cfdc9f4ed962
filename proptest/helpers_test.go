package proptest

import (
	"math"

	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/medium"
	"github.com/san-kum/wavefd/internal/orchestrator"
	"github.com/san-kum/wavefd/internal/wavelet"
)

// homogeneousEngine builds a single-shot acoustic engine over a
// constant-velocity medium, grounded on E1's parameters but scaled down so
// the property suite runs quickly.
func homogeneousEngine(nzPhys, nxPhys int, dz, dx, vp, rho, dt float64, nt int, p int,
	srcPos, rcvPos coupling.Position, gradient bool) *orchestrator.Engine {
	cfg := orchestrator.Config{P: p, Dt: dt, Nt: nt, DtOut: dt, Mode: orchestrator.ModeAcoustic, Gradient: gradient, Workers: 1}
	e := orchestrator.New(cfg)
	mat := medium.NewHomogeneous(nzPhys, nxPhys, dz, dx, vp, rho)
	must(e.UpdateMedium(mat))

	shot := acquisition.Shot{
		Sources:   []acquisition.Source{{Pos: srcPos, Flag: acquisition.FieldPressure, WaveletID: 0}},
		Receivers: []acquisition.Receiver{{Pos: rcvPos, Field: acquisition.FieldPressure}},
	}
	must(e.UpdateAcquisition(&acquisition.Table{Shots: []acquisition.Shot{shot}}))
	must(e.UpdateWavelets(&wavelet.Table{Series: []wavelet.Series{wavelet.Ricker(10.0, dt, nt)}}))
	return e
}

// homogeneousEngineWithWavelet is homogeneousEngine but takes an explicit
// source series instead of building a Ricker wavelet, used by the
// linearity-in-wavelet property.
func homogeneousEngineWithWavelet(nzPhys, nxPhys int, dz, dx, vp, rho, dt float64, nt int, p int,
	srcPos, rcvPos coupling.Position, src wavelet.Series) *orchestrator.Engine {
	cfg := orchestrator.Config{P: p, Dt: dt, Nt: nt, DtOut: dt, Mode: orchestrator.ModeAcoustic, Workers: 1}
	e := orchestrator.New(cfg)
	mat := medium.NewHomogeneous(nzPhys, nxPhys, dz, dx, vp, rho)
	must(e.UpdateMedium(mat))

	shot := acquisition.Shot{
		Sources:   []acquisition.Source{{Pos: srcPos, Flag: acquisition.FieldPressure, WaveletID: 0}},
		Receivers: []acquisition.Receiver{{Pos: rcvPos, Field: acquisition.FieldPressure}},
	}
	must(e.UpdateAcquisition(&acquisition.Table{Shots: []acquisition.Shot{shot}}))
	must(e.UpdateWavelets(&wavelet.Table{Series: []wavelet.Series{src}}))
	return e
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func l2Norm(xs []float64) float64 {
	sum := 0.0
	for _, v := range xs {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func l2RelDiff(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	num, den := 0.0, 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		num += d * d
		den += a[i] * a[i]
	}
	if den == 0 {
		return math.Sqrt(num)
	}
	return math.Sqrt(num / den)
}

func peakAbs(xs []float64) float64 {
	peak := 0.0
	for _, v := range xs {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}
