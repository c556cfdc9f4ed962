// Package diagnostics renders receiver traces and CPML boundary energy as
// ASCII plots for terminal inspection, outside the engine's own result
// types.
package diagnostics

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wavefd/internal/orchestrator"
)

// TracePlot returns an ASCII rendering of a single receiver trace.
func TracePlot(trace orchestrator.Trace, caption string) string {
	return asciigraph.Plot(trace.Samples,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption))
}

// GatherEnvelope returns, for each sample index, the maximum absolute
// amplitude across every trace in the gather — a quick single-line summary
// of a shot's total recorded energy over time.
func GatherEnvelope(gather orchestrator.ShotGather) []float64 {
	if len(gather.Traces) == 0 {
		return nil
	}
	n := len(gather.Traces[0].Samples)
	env := make([]float64, n)
	for _, tr := range gather.Traces {
		for i, v := range tr.Samples {
			if i >= n {
				break
			}
			if a := math.Abs(v); a > env[i] {
				env[i] = a
			}
		}
	}
	return env
}

// EnvelopePlot renders a gather's envelope (see GatherEnvelope) as an ASCII
// plot, useful for eyeballing CPML reflection leakage: a healthy absorbing
// boundary shows the envelope decaying to noise floor well before the run
// ends, rather than a late secondary bump from a reflected wavefront.
func EnvelopePlot(gather orchestrator.ShotGather, caption string) string {
	env := GatherEnvelope(gather)
	if env == nil {
		return ""
	}
	return asciigraph.Plot(env,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption))
}

// BoundaryEnergy reduces a padded field slab (e.g. a CPML-layer pressure
// snapshot) to its total squared amplitude, one scalar per call; callers
// accumulate a []float64 series across time steps and hand it to
// asciigraph.Plot directly, the same way EnvelopePlot does for gathers.
func BoundaryEnergy(field []float64) float64 {
	sum := 0.0
	for _, v := range field {
		sum += v * v
	}
	return sum
}
