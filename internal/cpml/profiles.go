// Package cpml precomputes the per-direction Convolutional PML damping
// profiles and holds the small per-boundary-face memory slabs the stepper
// convolves derivatives against. Profiles depend only on the padded grid
// geometry and the medium's max velocity, and are recomputed whenever
// either changes.
package cpml

import "math"

// Params tunes the CPML damping law. NPower and RCoef follow the standard
// polynomial-damping CPML formulation; KappaMax and AlphaMax default to 1
// and 0 respectively (no grid stretching, no complex frequency shift) when
// left zero.
type Params struct {
	NPower   int
	RCoef    float64
	KappaMax float64
	AlphaMax float64
}

// DefaultParams returns the standard CPML tuning: quadratic damping,
// theoretical reflection coefficient 0.001, no grid stretching.
func DefaultParams() Params {
	return Params{NPower: 2, RCoef: 0.001, KappaMax: 1.0, AlphaMax: 0.0}
}

// Axis1D holds one axis's integer-grid and half-grid CPML coefficients,
// each of length P, indexed from the physical/CPML interface (0) to the
// outermost edge cell (P-1).
type Axis1D struct {
	A, B, Kappa, KappaInv         []float64
	AHalf, BHalf, KappaHalfInv    []float64
	KappaHalf                     []float64
}

// Profiles holds the CPML coefficients for every axis of the padded grid.
type Profiles struct {
	Z, X Axis1D
}

// Build computes the CPML profiles for a padded grid of thickness p, cell
// spacing delta and timestep dt, given the medium's peak velocity and the
// damping law parameters.
func Build(p int, delta, dt, vpMax float64, params Params) Axis1D {
	kappaMax := params.KappaMax
	if kappaMax <= 0 {
		kappaMax = 1.0
	}
	n := params.NPower
	if n <= 0 {
		n = 2
	}

	sigmaMax := -(float64(n) + 1) * math.Log(params.RCoef) * vpMax / (2 * float64(p) * delta)

	axis := Axis1D{
		A: make([]float64, p), B: make([]float64, p), Kappa: make([]float64, p), KappaInv: make([]float64, p),
		AHalf: make([]float64, p), BHalf: make([]float64, p), KappaHalf: make([]float64, p), KappaHalfInv: make([]float64, p),
	}

	for i := 0; i < p; i++ {
		// d grows from the physical/CPML interface (i=0) toward the outer
		// edge (i=p-1); the integer grid sits at full cells, the half grid
		// half a cell further out.
		dInt := float64(i) / float64(p)
		dHalf := (float64(i) + 0.5) / float64(p)
		if dHalf < 0 {
			dHalf = 0
		}

		sigma := sigmaMax * math.Pow(dInt, float64(n))
		sigmaHalf := sigmaMax * math.Pow(dHalf, float64(n))

		kappa := 1.0 + (kappaMax-1.0)*math.Pow(dInt, float64(n))
		kappaHalf := 1.0 + (kappaMax-1.0)*math.Pow(dHalf, float64(n))

		alpha := params.AlphaMax * (1.0 - dInt)
		alphaHalf := params.AlphaMax * (1.0 - dHalf)

		axis.Kappa[i] = kappa
		axis.KappaInv[i] = 1.0 / kappa
		axis.B[i] = math.Exp(-(sigma/kappa + alpha) * dt)
		if sigma > 1e-30 {
			axis.A[i] = sigma * (axis.B[i] - 1.0) / (kappa * (sigma + kappa*alpha))
		}

		axis.KappaHalf[i] = kappaHalf
		axis.KappaHalfInv[i] = 1.0 / kappaHalf
		axis.BHalf[i] = math.Exp(-(sigmaHalf/kappaHalf + alphaHalf) * dt)
		if sigmaHalf > 1e-30 {
			axis.AHalf[i] = sigmaHalf * (axis.BHalf[i] - 1.0) / (kappaHalf * (sigmaHalf + kappaHalf*alphaHalf))
		}
	}

	return axis
}

// BuildAll computes both axes' profiles for a padded grid.
func BuildAll(p int, dz, dx, dt, vpMax float64, params Params) *Profiles {
	return &Profiles{
		Z: Build(p, dz, dt, vpMax, params),
		X: Build(p, dx, dt, vpMax, params),
	}
}
