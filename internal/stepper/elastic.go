package stepper

import (
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/cpml"
	"github.com/san-kum/wavefd/internal/gridmedium"
	"github.com/san-kum/wavefd/internal/wavefield"
)

// Elastic implements one elastic FDTD time step (spec §4.4 C5b): velocity
// updates driven by the stress-tensor divergence, then separate
// normal-stress updates (M*dv_ii/di + lambda*sum_{j!=i} dv_jj/dj) and
// shear-stress updates (mu_avg_ij*(dv_i/dj + dv_j/di)). The stepper is 2D
// only and has no dvydy term; it is treated as identically zero (spec §9
// open question b).
type Elastic struct {
	Grid    *gridmedium.Grid
	Med     *gridmedium.Padded
	Prof    *cpml.Profiles
	State   *wavefield.Elastic
	MinRows int
}

func NewElastic(g *gridmedium.Grid, med *gridmedium.Padded, prof *cpml.Profiles, state *wavefield.Elastic) *Elastic {
	return &Elastic{Grid: g, Med: med, Prof: prof, State: state, MinRows: 8}
}

func (s *Elastic) minRows() int {
	if s.MinRows > 0 {
		return s.MinRows
	}
	return 8
}

func (s *Elastic) Step(dt float64) {
	g, m, st := s.Grid, s.Med, s.State
	nz, nx := g.Nz, g.Nx
	p := g.P

	// Velocity updates: dvx/dt = rhoI_vx*(dtxx/dx + dtxz/dz), dvz/dt similarly.
	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx-1; ix++ {
				st.DtxxdxOnVx[iz*nx+ix] = dXA(st.Txx, iz, ix, nx, g.Dx)
			}
		}
	})
	ParallelFor(1, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				st.DtxzdzOnVx[iz*nx+ix] = dZI(st.Txz, iz, ix, nx, g.Dz)
			}
		}
	})
	st.MemDtxx.ApplyXHalf(st.DtxxdxOnVx, nz, nx, p, s.Prof.X)
	st.MemDtxzZ.ApplyZ(st.DtxzdzOnVx, nz, nx, p, s.Prof.Z)

	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 1; ix < nx; ix++ {
				st.DtxzdxOnVz[iz*nx+ix] = dXI(st.Txz, iz, ix, nx, g.Dx)
			}
		}
	})
	ParallelFor(0, nz-2, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				st.DtzzdzOnVz[iz*nx+ix] = dZA(st.Tzz, iz, ix, nx, g.Dz)
			}
		}
	})
	st.MemDtxzX.ApplyX(st.DtxzdxOnVz, nz, nx, p, s.Prof.X)
	st.MemDtzz.ApplyZHalf(st.DtzzdzOnVz, nz, nx, p, s.Prof.Z)

	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx-1; ix++ {
				idx := iz*nx + ix
				st.Vx[idx] += dt * m.RhoIVx[idx] * (st.DtxxdxOnVx[idx] + st.DtxzdzOnVx[idx])
			}
		}
	})
	ParallelFor(0, nz-2, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				idx := iz*nx + ix
				st.Vz[idx] += dt * m.RhoIVz[idx] * (st.DtxzdxOnVz[idx] + st.DtzzdzOnVz[idx])
			}
		}
	})

	dirichletWallCols(st.Vx, nz, nx)
	dirichletWallRows(st.Vz, nz, nx)

	// Normal- and shear-stress updates.
	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 1; ix < nx; ix++ {
				st.DvxdxOnTxx[iz*nx+ix] = dXI(st.Vx, iz, ix, nx, g.Dx)
			}
		}
	})
	ParallelFor(1, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				st.DvzdzOnTzz[iz*nx+ix] = dZI(st.Vz, iz, ix, nx, g.Dz)
			}
		}
	})
	st.MemDvxdx.ApplyX(st.DvxdxOnTxx, nz, nx, p, s.Prof.X)
	st.MemDvzdz.ApplyZ(st.DvzdzOnTzz, nz, nx, p, s.Prof.Z)

	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 1; ix < nx; ix++ {
				idx := iz*nx + ix
				dvxdx, dvzdz := st.DvxdxOnTxx[idx], st.DvzdzOnTzz[idx]
				st.Txx[idx] -= dt * (m.M[idx]*dvxdx + m.Lambda[idx]*dvzdz)
				st.Tzz[idx] -= dt * (m.M[idx]*dvzdz + m.Lambda[idx]*dvxdx)
			}
		}
	})

	ParallelFor(0, nz-2, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx-1; ix++ {
				st.DvxdzOnTxz[iz*nx+ix] = dZA(st.Vx, iz, ix, nx, g.Dz)
				st.DvzdxOnTxz[iz*nx+ix] = dXA(st.Vz, iz, ix, nx, g.Dx)
			}
		}
	})
	st.MemDvxdz.ApplyZHalf(st.DvxdzOnTxz, nz, nx, p, s.Prof.Z)
	st.MemDvzdx.ApplyXHalf(st.DvzdxOnTxz, nz, nx, p, s.Prof.X)

	ParallelFor(0, nz-2, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx-1; ix++ {
				idx := iz*nx + ix
				st.Txz[idx] -= dt * m.MuAvgXZ[idx] * (st.DvxdzOnTxz[idx] + st.DvzdxOnTxz[idx])
			}
		}
	})
}

// InjectPressure treats a :p-flagged elastic source as a body force
// applied equally to both normal stresses.
func (s *Elastic) InjectPressure(w coupling.Weights, value, dt float64) {
	nx := s.Grid.Nx
	for _, c := range w.Corners {
		idx := c.Iz*nx + c.Ix
		contrib := value * c.Weight * dt * s.Med.M[idx]
		s.State.Txx[idx] += contrib
		s.State.Tzz[idx] += contrib
	}
}

func (s *Elastic) InjectVelocityX(w coupling.Weights, value, dt float64) {
	nx := s.Grid.Nx
	for _, c := range w.Corners {
		idx := c.Iz*nx + c.Ix
		s.State.Vx[idx] += value * c.Weight * dt * s.Med.RhoIVx[idx]
	}
}

func (s *Elastic) InjectVelocityZ(w coupling.Weights, value, dt float64) {
	nx := s.Grid.Nx
	for _, c := range w.Corners {
		idx := c.Iz*nx + c.Ix
		s.State.Vz[idx] += value * c.Weight * dt * s.Med.RhoIVz[idx]
	}
}

func RecordNormalStress(st *wavefield.Elastic, nx int, w coupling.Weights) float64 {
	return 0.5 * (w.Interpolate(st.Txx, nx) + w.Interpolate(st.Tzz, nx))
}

func RecordElasticVx(st *wavefield.Elastic, nx int, w coupling.Weights) float64 {
	return w.Interpolate(st.Vx, nx)
}

func RecordElasticVz(st *wavefield.Elastic, nx int, w coupling.Weights) float64 {
	return w.Interpolate(st.Vz, nx)
}
