// Package orchestrator drives the per-shot outer loop: it owns the padded
// medium, CPML profiles, and acquisition/wavelet tables (shared, read-only
// once configured), partitions shots across workers (each with private
// field state, CPML memory, and boundary store), and reduces per-worker
// gather and gradient buffers once at the end of Run.
package orchestrator

import "github.com/san-kum/wavefd/internal/acquisition"

// Mode selects the physics variant the stepper runs.
type Mode int

const (
	ModeAcoustic Mode = iota
	ModeAcousticBorn
	ModeElastic
)

// Config tunes one Engine run. P and Dt are checked by UpdateMedium, which
// needs them to pad the grid and build the CPML profiles; Nt and Dt are
// checked again at Run, together with every shot's wavelets and
// source/receiver positions against the padded grid.
type Config struct {
	P     int
	Dt    float64
	Nt    int
	DtOut float64
	Mode  Mode

	Gradient                 bool
	Illumination             bool
	NormalizeByIllumination  bool

	// Workers caps goroutine fan-out across shots; 0 selects GOMAXPROCS.
	Workers int
	// MinRows is the intra-step ParallelFor threshold passed to the
	// stepper; 0 selects the stepper's own default.
	MinRows int
}

// Trace is one receiver's recorded time series for one shot, resampled to
// Config.DtOut.
type Trace struct {
	Field   acquisition.Field
	Samples []float64
}

// ShotGather bundles one shot's receiver traces, in receiver order.
type ShotGather struct {
	Traces []Trace
}

// Gathers is the full per-shot, per-receiver output of a Run.
type Gathers struct {
	Shots []ShotGather
}

// Gradient holds the adjoint-state sensitivity gradient, stacked across
// shots, on the physical (unpadded) grid. Illumination is populated only
// when Config.Illumination is set.
type Gradient struct {
	Nz, Nx       int
	GKI          []float64
	GRhoI        []float64
	Illumination []float64
}
