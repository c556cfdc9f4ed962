package wavelet

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Resample linearly interpolates s onto the simulation timestep dtSim for
// nt samples (§6: "the engine internally resamples ... by linear
// interpolation if Δt_src != Δt"). If s is already at dtSim, it is
// returned unchanged (truncated or zero-padded to nt samples).
func Resample(s Series, dtSim float64, nt int) Series {
	if s.Dt == dtSim {
		return padOrTruncate(s, nt)
	}

	out := Series{Dt: dtSim, Values: make([]float64, nt)}
	for i := 0; i < nt; i++ {
		tSim := float64(i) * dtSim
		srcIdx := tSim / s.Dt
		i0 := int(math.Floor(srcIdx))
		frac := srcIdx - float64(i0)

		v0 := sample(s.Values, i0)
		v1 := sample(s.Values, i0+1)
		out.Values[i] = v0 + frac*(v1-v0)
	}
	return out
}

func sample(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

func padOrTruncate(s Series, nt int) Series {
	out := Series{Dt: s.Dt, Values: make([]float64, nt)}
	copy(out.Values, s.Values)
	return out
}

// NyquistHeadroom reports the fraction of the simulation Nyquist frequency
// (1/(2*dtSim)) that the wavelet's dominant spectral content occupies,
// using an FFT of s at its own sample interval s.Dt. A value close to or
// above 1 means the wavelet's dominant frequency is at or beyond what
// dtSim can represent, so resampling it onto dtSim would alias that
// energy; callers can use this as a configuration sanity check before
// running.
func NyquistHeadroom(s Series, dtSim float64) float64 {
	n := nextPow2(len(s.Values))
	buf := make([]complex128, n)
	for i, v := range s.Values {
		buf[i] = complex(v, 0)
	}

	spectrum := fft.FFT(buf)
	nyquistIdx := n / 2

	peakBin, peakMag := 0, 0.0
	for i := 0; i <= nyquistIdx; i++ {
		mag := cmplxAbs(spectrum[i])
		if mag > peakMag {
			peakMag = mag
			peakBin = i
		}
	}

	dominantFreq := float64(peakBin) / (float64(n) * s.Dt)
	simNyquist := 1.0 / (2 * dtSim)
	if simNyquist == 0 {
		return 0
	}
	return dominantFreq / simNyquist
}

func cmplxAbs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	if p == 0 {
		p = 1
	}
	return p
}
