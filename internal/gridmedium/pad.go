package gridmedium

import (
	"math"

	"github.com/san-kum/wavefd/internal/fderrors"
	"github.com/san-kum/wavefd/internal/medium"
)

// ReferenceValues holds the spatial mean of each stored parameter, kept
// purely as a numerical-conditioning device for nondimensionalization.
type ReferenceValues struct {
	K, Rho, Lambda, Mu float64
}

// Padded is the simulation-grid medium: the physical interior padded by P
// CPML cells on every face, plus the side parameters derived from it.
type Padded struct {
	Grid Grid

	K, KI   []float64
	Rho, RhoI []float64
	RhoIVx  []float64 // RhoI averaged onto the vx (x-half) grid
	RhoIVz  []float64 // RhoI averaged onto the vz (z-half) grid

	Elastic bool
	Lambda  []float64
	Mu      []float64
	M       []float64 // Lambda + 2*Mu
	MuAvgXZ []float64 // Mu averaged onto the tau_xz (half,half) grid

	VpMax float64
	Ref   ReferenceValues
}

// Pad builds the padded simulation grid from a physical-domain medium.
// Side parameters are derived from K, Rho (or Lambda, Mu, Rho) *after*
// padding: padded values equal the nearest interior value (constant
// extension), so deriving KI/RhoI/M beforehand would let the padding step
// introduce a discontinuity that was never in the physical medium.
func Pad(phys medium.Physical, p int) (*Padded, error) {
	if p <= 0 {
		return nil, fderrors.NewConfigError(fderrors.ErrInvalidGeometry, "CPML thickness P must be positive")
	}

	nzPhys, nxPhys := phys.Dims()
	dz, dx := phys.Spacing()
	nz, nx := nzPhys+2*p, nxPhys+2*p

	kPhys := phys.K()
	rhoPhys := phys.Rho()
	if err := checkPositive(kPhys, rhoPhys); err != nil {
		return nil, err
	}

	pd := &Padded{
		Grid:    Grid{Nz: nz, Nx: nx, Dz: dz, Dx: dx, P: p},
		Elastic: phys.Elastic(),
	}

	pd.K = extend(kPhys, nzPhys, nxPhys, p)
	pd.Rho = extend(rhoPhys, nzPhys, nxPhys, p)

	pd.KI = reciprocal(pd.K)
	pd.RhoI = reciprocal(pd.Rho)
	pd.RhoIVx = averageX(pd.RhoI, nz, nx)
	pd.RhoIVz = averageZ(pd.RhoI, nz, nx)

	vMax := 0.0
	for i := range pd.K {
		vp := math.Sqrt(pd.K[i] / pd.Rho[i])
		if vp > vMax {
			vMax = vp
		}
	}

	if pd.Elastic {
		pd.Lambda = extend(phys.Lambda(), nzPhys, nxPhys, p)
		pd.Mu = extend(phys.Mu(), nzPhys, nxPhys, p)
		pd.M = make([]float64, len(pd.Lambda))
		for i := range pd.M {
			pd.M[i] = pd.Lambda[i] + 2*pd.Mu[i]
		}
		pd.MuAvgXZ = averageXZ(pd.Mu, nz, nx)

		for i := range pd.M {
			vp := math.Sqrt(pd.M[i] / pd.Rho[i])
			if vp > vMax {
				vMax = vp
			}
		}
	}
	pd.VpMax = vMax

	pd.Ref = referenceValues(pd)
	return pd, nil
}

func checkPositive(k, rho []float64) error {
	for i := range k {
		if k[i] <= 0 {
			return fderrors.NewConfigError(fderrors.ErrNonPositiveMaterial, "K must be positive")
		}
		if rho[i] <= 0 {
			return fderrors.NewConfigError(fderrors.ErrNonPositiveMaterial, "rho must be positive")
		}
	}
	return nil
}

// extend constant-extends a physical-grid field into the padded grid: the
// physical interior copies straight through; the outer P cells on each
// face replicate the nearest interior value.
func extend(physField []float64, nzPhys, nxPhys, p int) []float64 {
	nz, nx := nzPhys+2*p, nxPhys+2*p
	out := make([]float64, nz*nx)
	for iz := 0; iz < nz; iz++ {
		srcZ := clamp(iz-p, 0, nzPhys-1)
		for ix := 0; ix < nx; ix++ {
			srcX := clamp(ix-p, 0, nxPhys-1)
			out[iz*nx+ix] = physField[srcZ*nxPhys+srcX]
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func reciprocal(f []float64) []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		out[i] = 1.0 / v
	}
	return out
}

// averageX two-point arithmetic-averages f onto the x-half (vx) grid:
// out[iz,ix] = 0.5*(f[iz,ix] + f[iz,ix+1]), clamped at the last column.
func averageX(f []float64, nz, nx int) []float64 {
	out := make([]float64, nz*nx)
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			ixp1 := ix + 1
			if ixp1 >= nx {
				ixp1 = nx - 1
			}
			out[iz*nx+ix] = 0.5 * (f[iz*nx+ix] + f[iz*nx+ixp1])
		}
	}
	return out
}

// averageZ two-point arithmetic-averages f onto the z-half (vz) grid.
func averageZ(f []float64, nz, nx int) []float64 {
	out := make([]float64, nz*nx)
	for iz := 0; iz < nz; iz++ {
		izp1 := iz + 1
		if izp1 >= nz {
			izp1 = nz - 1
		}
		for ix := 0; ix < nx; ix++ {
			out[iz*nx+ix] = 0.5 * (f[iz*nx+ix] + f[izp1*nx+ix])
		}
	}
	return out
}

// averageXZ averages f onto the tau_xz grid, offset a half-step in both x
// and z: a four-point arithmetic mean of the four integer-grid neighbors.
func averageXZ(f []float64, nz, nx int) []float64 {
	out := make([]float64, nz*nx)
	for iz := 0; iz < nz; iz++ {
		izp1 := iz + 1
		if izp1 >= nz {
			izp1 = nz - 1
		}
		for ix := 0; ix < nx; ix++ {
			ixp1 := ix + 1
			if ixp1 >= nx {
				ixp1 = nx - 1
			}
			out[iz*nx+ix] = 0.25 * (f[iz*nx+ix] + f[iz*nx+ixp1] + f[izp1*nx+ix] + f[izp1*nx+ixp1])
		}
	}
	return out
}

func referenceValues(pd *Padded) ReferenceValues {
	ref := ReferenceValues{
		K:   mean(pd.K),
		Rho: mean(pd.Rho),
	}
	if pd.Elastic {
		ref.Lambda = mean(pd.Lambda)
		ref.Mu = mean(pd.Mu)
	}
	return ref
}

func mean(f []float64) float64 {
	if len(f) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f {
		sum += v
	}
	return sum / float64(len(f))
}
