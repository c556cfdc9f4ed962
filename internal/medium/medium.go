// Package medium defines the gridded-material interface the FDTD engine's
// padding stage (gridmedium.Pad) consumes, plus two minimal reference
// implementations used by tests and presets. Model I/O (reading a medium
// from disk, CSV export of a medium) is an external collaborator and is
// not implemented here.
package medium

// Physical is a gridded physical-domain medium supplier. Acoustic mode
// reads K and Rho; elastic mode additionally reads Lambda and Mu. Grid
// values are row-major, Nz rows of Nx columns, index(iz,ix) = iz*Nx+ix.
type Physical interface {
	Dims() (nz, nx int)
	Spacing() (dz, dx float64)

	// K returns the bulk modulus field (acoustic mode).
	K() []float64
	// Rho returns the density field.
	Rho() []float64
	// Elastic reports whether Lambda/Mu are populated.
	Elastic() bool
	// Lambda returns the first Lame parameter (elastic mode).
	Lambda() []float64
	// Mu returns the shear modulus (elastic mode).
	Mu() []float64
}

// Homogeneous is a constant-parameter medium, used by the reciprocity,
// CPML-attenuation, and grid-refinement end-to-end scenarios.
type Homogeneous struct {
	Nz, Nx int
	Dz, Dx float64
	Vp     float64
	Rho0   float64
	// Elastic-mode parameters; zero-valued means acoustic-only.
	Vs float64
}

func NewHomogeneous(nz, nx int, dz, dx, vp, rho0 float64) *Homogeneous {
	return &Homogeneous{Nz: nz, Nx: nx, Dz: dz, Dx: dx, Vp: vp, Rho0: rho0}
}

func (h *Homogeneous) Dims() (int, int)          { return h.Nz, h.Nx }
func (h *Homogeneous) Spacing() (float64, float64) { return h.Dz, h.Dx }
func (h *Homogeneous) Elastic() bool             { return h.Vs > 0 }

func (h *Homogeneous) K() []float64 {
	k := h.Vp * h.Vp * h.Rho0
	return constant(h.Nz*h.Nx, k)
}

func (h *Homogeneous) Rho() []float64 {
	return constant(h.Nz*h.Nx, h.Rho0)
}

func (h *Homogeneous) Lambda() []float64 {
	mu := h.Vs * h.Vs * h.Rho0
	lam := h.Rho0*h.Vp*h.Vp - 2*mu
	return constant(h.Nz*h.Nx, lam)
}

func (h *Homogeneous) Mu() []float64 {
	return constant(h.Nz*h.Nx, h.Vs*h.Vs*h.Rho0)
}

// TwoLayer is a two-layer medium, upper/lower split at a given row, used
// by the two-layer reflection end-to-end scenario.
type TwoLayer struct {
	Nz, Nx       int
	Dz, Dx       float64
	InterfaceRow int
	VpUpper      float64
	VpLower      float64
	Rho0         float64
}

func NewTwoLayer(nz, nx int, dz, dx float64, interfaceRow int, vpUpper, vpLower, rho0 float64) *TwoLayer {
	return &TwoLayer{Nz: nz, Nx: nx, Dz: dz, Dx: dx, InterfaceRow: interfaceRow, VpUpper: vpUpper, VpLower: vpLower, Rho0: rho0}
}

func (t *TwoLayer) Dims() (int, int)            { return t.Nz, t.Nx }
func (t *TwoLayer) Spacing() (float64, float64) { return t.Dz, t.Dx }
func (t *TwoLayer) Elastic() bool               { return false }

func (t *TwoLayer) K() []float64 {
	out := make([]float64, t.Nz*t.Nx)
	for iz := 0; iz < t.Nz; iz++ {
		vp := t.VpUpper
		if iz >= t.InterfaceRow {
			vp = t.VpLower
		}
		k := vp * vp * t.Rho0
		for ix := 0; ix < t.Nx; ix++ {
			out[iz*t.Nx+ix] = k
		}
	}
	return out
}

func (t *TwoLayer) Rho() []float64 {
	return constant(t.Nz*t.Nx, t.Rho0)
}

func (t *TwoLayer) Lambda() []float64 { return make([]float64, t.Nz*t.Nx) }
func (t *TwoLayer) Mu() []float64     { return make([]float64, t.Nz*t.Nx) }

// Field is a medium backed by caller-supplied per-cell arrays, used to
// build one-cell perturbations (e.g. for the gradient finite-difference
// check) that neither Homogeneous nor TwoLayer can express.
type Field struct {
	Nz, Nx             int
	Dz, Dx             float64
	KVals, RhoVals     []float64
	LambdaVals, MuVals []float64 // nil means acoustic-only (zeros)
}

func (f *Field) Dims() (int, int)            { return f.Nz, f.Nx }
func (f *Field) Spacing() (float64, float64) { return f.Dz, f.Dx }
func (f *Field) Elastic() bool               { return f.LambdaVals != nil }
func (f *Field) K() []float64                { return f.KVals }
func (f *Field) Rho() []float64              { return f.RhoVals }

func (f *Field) Lambda() []float64 {
	if f.LambdaVals != nil {
		return f.LambdaVals
	}
	return make([]float64, f.Nz*f.Nx)
}

func (f *Field) Mu() []float64 {
	if f.MuVals != nil {
		return f.MuVals
	}
	return make([]float64, f.Nz*f.Nx)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
