// Package wavelet defines the per-source time-series interface the
// orchestrator consumes, a Ricker generator used by every end-to-end
// scenario, and the internal Δt_src -> Δt resampling the engine performs
// when a wavelet's native sample rate differs from the simulation
// timestep. Filter-design utilities for shaping a source wavelet are an
// external collaborator and are not implemented here.
package wavelet

import "math"

// Series is one source's time series, sampled at Dt starting at t=0.
type Series struct {
	Dt     float64
	Values []float64
}

// Wavelets supplies one Series per source.
type Wavelets interface {
	NumSources() int
	Source(i int) Series
}

// Table is a minimal in-memory Wavelets implementation.
type Table struct {
	Series []Series
}

func (t *Table) NumSources() int   { return len(t.Series) }
func (t *Table) Source(i int) Series { return t.Series[i] }

// Ricker generates a zero-phase Ricker wavelet of the given peak frequency,
// sampled at dt for nt samples, centered so its peak falls near t=1/freq.
func Ricker(freq, dt float64, nt int) Series {
	values := make([]float64, nt)
	t0 := 1.0 / freq
	for i := 0; i < nt; i++ {
		t := float64(i)*dt - t0
		arg := math.Pi * freq * t
		arg2 := arg * arg
		values[i] = (1 - 2*arg2) * math.Exp(-arg2)
	}
	return Series{Dt: dt, Values: values}
}

// Scale returns a copy of s scaled by factor, used by the
// linearity-in-wavelet testable property (§8.2).
func (s Series) Scale(factor float64) Series {
	out := Series{Dt: s.Dt, Values: make([]float64, len(s.Values))}
	for i, v := range s.Values {
		out.Values[i] = v * factor
	}
	return out
}

// Add returns the sample-wise sum of two series sharing the same Dt and
// length, used by the linearity-in-wavelet testable property.
func (s Series) Add(other Series) Series {
	n := len(s.Values)
	out := Series{Dt: s.Dt, Values: make([]float64, n)}
	for i := range out.Values {
		v := s.Values[i]
		if i < len(other.Values) {
			v += other.Values[i]
		}
		out.Values[i] = v
	}
	return out
}
