package stepper

import (
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/cpml"
	"github.com/san-kum/wavefd/internal/gridmedium"
	"github.com/san-kum/wavefd/internal/wavefield"
)

// Acoustic implements one acoustic FDTD time step (spec §4.4, steps 1-6;
// source injection and receiver recording are driven by the orchestrator
// around Step so the exact §5 ordering guarantee holds across the whole
// per-shot loop, not just within Step).
type Acoustic struct {
	Grid    *gridmedium.Grid
	Med     *gridmedium.Padded
	Prof    *cpml.Profiles
	State   *wavefield.Acoustic
	MinRows int // ParallelFor threshold; 0 selects a sane default
}

func NewAcoustic(g *gridmedium.Grid, med *gridmedium.Padded, prof *cpml.Profiles, state *wavefield.Acoustic) *Acoustic {
	return &Acoustic{Grid: g, Med: med, Prof: prof, State: state, MinRows: 8}
}

// Step advances the acoustic wavefield by dt, which carries the sign of
// the time direction: positive for the forward pass, negative when
// reconstructing the forward wavefield during the reverse (adjoint) pass.
func (s *Acoustic) Step(dt float64) {
	g, m, st := s.Grid, s.Med, s.State
	nz, nx := g.Nz, g.Nx
	p := g.P

	// 1. dpdx on the vx grid, dpdz on the vz grid.
	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx-1; ix++ {
				st.DpdxOnVx[iz*nx+ix] = dXA(st.P, iz, ix, nx, g.Dx)
			}
		}
	})
	ParallelFor(0, nz-2, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				st.DpdzOnVz[iz*nx+ix] = dZA(st.P, iz, ix, nx, g.Dz)
			}
		}
	})

	// 2. CPML memory updates on the low/high slabs of each axis.
	st.MemDpdx.ApplyXHalf(st.DpdxOnVx, nz, nx, p, s.Prof.X)
	st.MemDpdz.ApplyZHalf(st.DpdzOnVz, nz, nx, p, s.Prof.Z)

	// 3. Velocity updates.
	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx-1; ix++ {
				idx := iz*nx + ix
				st.Vx[idx] += -dt * m.RhoIVx[idx] * st.DpdxOnVx[idx]
			}
		}
	})
	ParallelFor(0, nz-2, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				idx := iz*nx + ix
				st.Vz[idx] += -dt * m.RhoIVz[idx] * st.DpdzOnVz[idx]
			}
		}
	})

	// 4. Zero-velocity Dirichlet walls at the outermost face.
	dirichletWallCols(st.Vx, nz, nx)
	dirichletWallRows(st.Vz, nz, nx)

	// 5. dvxdx, dvzdz on the pressure grid, then CPML memory updates.
	ParallelFor(0, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 1; ix < nx; ix++ {
				st.DvxdxOnP[iz*nx+ix] = dXI(st.Vx, iz, ix, nx, g.Dx)
			}
		}
	})
	ParallelFor(1, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 0; ix < nx; ix++ {
				st.DvzdzOnP[iz*nx+ix] = dZI(st.Vz, iz, ix, nx, g.Dz)
			}
		}
	})
	st.MemDvxdx.ApplyX(st.DvxdxOnP, nz, nx, p, s.Prof.X)
	st.MemDvzdz.ApplyZ(st.DvzdzOnP, nz, nx, p, s.Prof.Z)

	// 6. Pressure update.
	ParallelFor(1, nz-1, s.minRows(), func(lo, hi int) {
		for iz := lo; iz <= hi; iz++ {
			for ix := 1; ix < nx; ix++ {
				idx := iz*nx + ix
				st.P[idx] += -dt * m.K[idx] * (st.DvxdxOnP[idx] + st.DvzdzOnP[idx])
			}
		}
	})
}

func (s *Acoustic) minRows() int {
	if s.MinRows > 0 {
		return s.MinRows
	}
	return 8
}

// InjectPressure adds a pressure-source contribution at the given spray
// weights: +wavelet * spray_weight * dt * K / cell_area (the spray weight
// already carries the 1/cell_area factor, per coupling.LocateSpray).
func (s *Acoustic) InjectPressure(w coupling.Weights, value, dt float64) {
	nx := s.Grid.Nx
	for _, c := range w.Corners {
		idx := c.Iz*nx + c.Ix
		s.State.P[idx] += value * c.Weight * dt * s.Med.K[idx]
	}
}

// InjectVelocityX adds a velocity-source contribution to vx: +wavelet *
// spray_weight * dt / (rho * cell_area).
func (s *Acoustic) InjectVelocityX(w coupling.Weights, value, dt float64) {
	nx := s.Grid.Nx
	for _, c := range w.Corners {
		idx := c.Iz*nx + c.Ix
		s.State.Vx[idx] += value * c.Weight * dt * s.Med.RhoIVx[idx]
	}
}

// InjectVelocityZ is InjectVelocityX's z-component counterpart.
func (s *Acoustic) InjectVelocityZ(w coupling.Weights, value, dt float64) {
	nx := s.Grid.Nx
	for _, c := range w.Corners {
		idx := c.Iz*nx + c.Ix
		s.State.Vz[idx] += value * c.Weight * dt * s.Med.RhoIVz[idx]
	}
}

// RecordPressure interpolates the pressure field at the given weights.
func RecordPressure(st *wavefield.Acoustic, nx int, w coupling.Weights) float64 {
	return w.Interpolate(st.P, nx)
}

func RecordVx(st *wavefield.Acoustic, nx int, w coupling.Weights) float64 {
	return w.Interpolate(st.Vx, nx)
}

func RecordVz(st *wavefield.Acoustic, nx int, w coupling.Weights) float64 {
	return w.Interpolate(st.Vz, nx)
}
