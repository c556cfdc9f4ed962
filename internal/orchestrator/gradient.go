package orchestrator

import (
	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/boundarystore"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/gridmedium"
	"github.com/san-kum/wavefd/internal/stepper"
	"github.com/san-kum/wavefd/internal/wavefield"
)

// boundaryAcousticStore bundles the pressure and velocity boundary stores
// the reverse pass needs to reconstruct the forward acoustic wavefield
// exactly: the leapfrog update needs all three fields to advance.
type boundaryAcousticStore struct {
	stores *boundarystore.AcousticStores
}

func newBoundaryAcousticStore(g *gridmedium.Grid, shell *boundarystore.Shell, nt int) *boundaryAcousticStore {
	return &boundaryAcousticStore{stores: boundarystore.NewAcoustic(g, shell, nt)}
}

func (b *boundaryAcousticStore) save(it int, st *wavefield.Acoustic) {
	b.stores.P.Save(it, st.P)
	b.stores.Vx.Save(it, st.Vx)
	b.stores.Vz.Save(it, st.Vz)
}

func (b *boundaryAcousticStore) saveTerminal(st *wavefield.Acoustic) {
	b.stores.P.SaveTerminal(st.P)
	b.stores.Vx.SaveTerminal(st.Vx)
	b.stores.Vz.SaveTerminal(st.Vz)
}

func (b *boundaryAcousticStore) replay(it int, st *wavefield.Acoustic) {
	b.stores.P.Replay(it, st.P)
	b.stores.Vx.Replay(it, st.Vx)
	b.stores.Vz.Replay(it, st.Vz)
}

// accumulateAcousticGradient runs the reverse adjoint pass for one shot and
// folds its contribution into the worker's gKI/gRhoI (and, if requested,
// illumination) buffers.
//
// The adjoint source is the shot's own forward-modeled receiver trace,
// injected time-reversed at the receiver positions: this is the gradient
// of the squared-misfit objective J = 1/2 * sum(d^2), the objective E4's
// finite-difference check exercises. st.State already holds the terminal
// full-interior snapshot saved at the end of the forward pass; it is
// stepped backward in place to reconstruct the forward wavefield, forcing
// the recorded boundary shell back in before each backward step.
func (w *worker) accumulateAcousticGradient(st *stepper.Acoustic, store *boundaryAcousticStore, shot acquisition.Shot, rcvW []coupling.Weights, raw [][]float64, cfg Config) {
	recon := st.State

	adjState := w.acousticPool.Get()
	defer w.acousticPool.Put(adjState)
	adjSt := stepper.NewAcoustic(w.grid, w.med, w.prof, adjState)
	adjSt.MinRows = cfg.MinRows

	n := len(w.med.K)
	nx := w.grid.Nx
	dt2 := cfg.Dt * cfg.Dt

	// ring[0..2] holds the three most recently captured reconstructed-
	// forward pressure snapshots, oldest to newest, used for the temporal
	// second-derivative stencil.
	var ring [3][]float64
	for i := range ring {
		ring[i] = make([]float64, n)
	}
	copy(ring[2], recon.P)
	filled := 1

	for it := cfg.Nt; it >= 1; it-- {
		store.replay(it, recon)

		for i, rcv := range shot.Receivers {
			val := raw[i][it-1]
			injectAcoustic(adjSt, acquisition.Source{Flag: rcv.Field}, rcvW[i], val, -cfg.Dt)
		}

		st.Step(-cfg.Dt)
		adjSt.Step(-cfg.Dt)

		ring[0], ring[1], ring[2] = ring[1], ring[2], ring[0]
		copy(ring[2], recon.P)
		if filled < 3 {
			filled++
		}

		if filled == 3 {
			for i := 0; i < n; i++ {
				d2 := (ring[2][i] - 2*ring[1][i] + ring[0][i]) / dt2
				w.gKI[i] += d2 * adjState.P[i]
			}
			accumulateRhoGradient(w, recon, adjState, nx)
			if w.illum != nil {
				for i := 0; i < n; i++ {
					w.illum[i] += ring[1][i] * ring[1][i]
				}
			}
		}
	}
}

// accumulateRhoGradient adds one time step's contribution of
// grad(p_forward).grad(p_adjoint), averaged back onto the integer rho_I
// grid from the staggered velocity grids the spatial gradients live on:
// each staggered product is split equally between its two integer-grid
// neighbours.
func accumulateRhoGradient(w *worker, recon, adj *wavefield.Acoustic, nx int) {
	g := w.grid
	nz := g.Nz

	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx-1; ix++ {
			idx := iz*nx + ix
			dfx := dX(recon.P, iz, ix, nx, g.Dx)
			dax := dX(adj.P, iz, ix, nx, g.Dx)
			w.gRhoI[idx] += 0.5 * dfx * dax
			w.gRhoI[idx+1] += 0.5 * dfx * dax
		}
	}
	for iz := 0; iz < nz-1; iz++ {
		for ix := 0; ix < nx; ix++ {
			idx := iz*nx + ix
			dfz := dZ(recon.P, iz, ix, nx, g.Dz)
			daz := dZ(adj.P, iz, ix, nx, g.Dz)
			w.gRhoI[idx] += 0.5 * dfz * daz
			w.gRhoI[idx+nx] += 0.5 * dfz * daz
		}
	}
}

func dX(f []float64, iz, ix, nx int, dx float64) float64 {
	return (f[iz*nx+ix+1] - f[iz*nx+ix]) / dx
}

func dZ(f []float64, iz, ix, nx int, dz float64) float64 {
	return (f[(iz+1)*nx+ix] - f[iz*nx+ix]) / dz
}
