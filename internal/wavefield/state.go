// Package wavefield allocates and zeroes the field, derivative-scratch, and
// CPML memory arrays the stepper operates on, for one worker's propagating
// wavefield at a time.
package wavefield

import (
	"math"

	"github.com/san-kum/wavefd/internal/cpml"
	"github.com/san-kum/wavefd/internal/gridmedium"
)

// Acoustic holds the pressure/velocity fields, their derivative scratch
// arrays, and the CPML memory slabs for one acoustic wavefield.
type Acoustic struct {
	Nz, Nx int

	P, Vx, Vz []float64

	DpdxOnVx, DpdzOnVz []float64 // derivatives of p, landing on the velocity grids
	DvxdxOnP, DvzdzOnP []float64 // derivatives of vx/vz, landing on the pressure grid

	MemDpdx  *cpml.FaceMemory
	MemDpdz  *cpml.FaceMemory
	MemDvxdx *cpml.FaceMemory
	MemDvzdz *cpml.FaceMemory
}

func NewAcoustic(g *gridmedium.Grid) *Acoustic {
	n := g.Nz * g.Nx
	return &Acoustic{
		Nz: g.Nz, Nx: g.Nx,
		P: make([]float64, n), Vx: make([]float64, n), Vz: make([]float64, n),
		DpdxOnVx: make([]float64, n), DpdzOnVz: make([]float64, n),
		DvxdxOnP: make([]float64, n), DvzdzOnP: make([]float64, n),
		MemDpdx:  cpml.NewFaceMemory(g.P, g.Nz),
		MemDpdz:  cpml.NewFaceMemory(g.P, g.Nx),
		MemDvxdx: cpml.NewFaceMemory(g.P, g.Nz),
		MemDvzdz: cpml.NewFaceMemory(g.P, g.Nx),
	}
}

func (a *Acoustic) Zero() {
	zero(a.P, a.Vx, a.Vz, a.DpdxOnVx, a.DpdzOnVz, a.DvxdxOnP, a.DvzdzOnP)
	a.MemDpdx.Zero()
	a.MemDpdz.Zero()
	a.MemDvxdx.Zero()
	a.MemDvzdz.Zero()
}

// IsValid reports whether the pressure and velocity arrays are free of
// NaN/Inf.
func (a *Acoustic) IsValid() bool {
	return valid(a.P) && valid(a.Vx) && valid(a.Vz)
}

// Elastic holds the stress-tensor and velocity fields, their derivative
// scratch arrays, and the CPML memory slabs for one elastic wavefield.
// Txz lives at a half-step in both x and z; Vx, Vz live at a half-step in
// their own direction; Txx, Tzz live on the integer grid.
type Elastic struct {
	Nz, Nx int

	Txx, Tzz, Txz, Vx, Vz []float64

	DvxdxOnTxx, DvzdzOnTzz []float64
	DvzdxOnTxz, DvxdzOnTxz []float64
	DtxxdxOnVx, DtxzdzOnVx []float64
	DtxzdxOnVz, DtzzdzOnVz []float64

	MemDvxdx *cpml.FaceMemory
	MemDvzdz *cpml.FaceMemory
	MemDvzdx *cpml.FaceMemory
	MemDvxdz *cpml.FaceMemory
	MemDtxx  *cpml.FaceMemory
	MemDtxzX *cpml.FaceMemory
	MemDtxzZ *cpml.FaceMemory
	MemDtzz  *cpml.FaceMemory
}

func NewElastic(g *gridmedium.Grid) *Elastic {
	n := g.Nz * g.Nx
	return &Elastic{
		Nz: g.Nz, Nx: g.Nx,
		Txx: make([]float64, n), Tzz: make([]float64, n), Txz: make([]float64, n),
		Vx: make([]float64, n), Vz: make([]float64, n),
		DvxdxOnTxx: make([]float64, n), DvzdzOnTzz: make([]float64, n),
		DvzdxOnTxz: make([]float64, n), DvxdzOnTxz: make([]float64, n),
		DtxxdxOnVx: make([]float64, n), DtxzdzOnVx: make([]float64, n),
		DtxzdxOnVz: make([]float64, n), DtzzdzOnVz: make([]float64, n),
		MemDvxdx: cpml.NewFaceMemory(g.P, g.Nz),
		MemDvzdz: cpml.NewFaceMemory(g.P, g.Nx),
		MemDvzdx: cpml.NewFaceMemory(g.P, g.Nz),
		MemDvxdz: cpml.NewFaceMemory(g.P, g.Nx),
		MemDtxx:  cpml.NewFaceMemory(g.P, g.Nz),
		MemDtxzX: cpml.NewFaceMemory(g.P, g.Nz),
		MemDtxzZ: cpml.NewFaceMemory(g.P, g.Nx),
		MemDtzz:  cpml.NewFaceMemory(g.P, g.Nx),
	}
}

func (e *Elastic) Zero() {
	zero(e.Txx, e.Tzz, e.Txz, e.Vx, e.Vz,
		e.DvxdxOnTxx, e.DvzdzOnTzz, e.DvzdxOnTxz, e.DvxdzOnTxz,
		e.DtxxdxOnVx, e.DtxzdzOnVx, e.DtxzdxOnVz, e.DtzzdzOnVz)
	for _, m := range []*cpml.FaceMemory{e.MemDvxdx, e.MemDvzdz, e.MemDvzdx, e.MemDvxdz, e.MemDtxx, e.MemDtxzX, e.MemDtxzZ, e.MemDtzz} {
		m.Zero()
	}
}

func (e *Elastic) IsValid() bool {
	return valid(e.Txx) && valid(e.Tzz) && valid(e.Txz) && valid(e.Vx) && valid(e.Vz)
}

func zero(fields ...[]float64) {
	for _, f := range fields {
		for i := range f {
			f[i] = 0
		}
	}
}

func valid(f []float64) bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
