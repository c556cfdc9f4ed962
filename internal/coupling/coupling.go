// Package coupling computes the bilinear spray/interpolation weights and
// integer index stencils that couple a source or receiver at an arbitrary
// (sub-grid) world position to the four enclosing grid corners.
package coupling

import (
	"fmt"
	"math"

	"github.com/san-kum/wavefd/internal/fderrors"
	"github.com/san-kum/wavefd/internal/gridmedium"
)

// Position is a world-coordinate location (z, x), origin at the padded
// grid's (0,0) cell.
type Position struct {
	Z, X float64
}

// Corner is one of the four grid points bounding a sub-grid position,
// with its bilinear weight.
type Corner struct {
	Iz, Ix int
	Weight float64
}

// Weights is the four-corner bilinear stencil for one source or receiver.
// The weights sum to 1 for interpolation use; for injection (spray) they
// are additionally divided by the cell area so the numerical integral of
// a unit source over the grid equals 1.
type Weights struct {
	Corners [4]Corner
}

// Locate finds the bounding cell for a world position and computes its
// bilinear interpolation weights. It returns ErrOutOfDomain if the
// bounding cell reaches into the CPML ring or outside the padded grid.
func Locate(g *gridmedium.Grid, pos Position) (Weights, error) {
	ix0 := int(math.Floor(pos.X / g.Dx))
	iz0 := int(math.Floor(pos.Z / g.Dz))

	tx := pos.X/g.Dx - float64(ix0)
	tz := pos.Z/g.Dz - float64(iz0)

	if err := checkInDomain(g, iz0, ix0); err != nil {
		return Weights{}, err
	}

	return Weights{Corners: [4]Corner{
		{Iz: iz0, Ix: ix0, Weight: (1 - tx) * (1 - tz)},
		{Iz: iz0, Ix: ix0 + 1, Weight: tx * (1 - tz)},
		{Iz: iz0 + 1, Ix: ix0, Weight: (1 - tx) * tz},
		{Iz: iz0 + 1, Ix: ix0 + 1, Weight: tx * tz},
	}}, nil
}

// LocateSpray is Locate plus the cell-area division sources use to inject
// a unit point source so that its spatial integral over the grid is 1.
func LocateSpray(g *gridmedium.Grid, pos Position) (Weights, error) {
	w, err := Locate(g, pos)
	if err != nil {
		return Weights{}, err
	}
	area := g.Dx * g.Dz
	for i := range w.Corners {
		w.Corners[i].Weight /= area
	}
	return w, nil
}

func checkInDomain(g *gridmedium.Grid, iz0, ix0 int) error {
	for _, corner := range [][2]int{{iz0, ix0}, {iz0, ix0 + 1}, {iz0 + 1, ix0}, {iz0 + 1, ix0 + 1}} {
		if g.InCPML(corner[0], corner[1]) {
			return fderrors.NewConfigError(fderrors.ErrOutOfDomain,
				fmt.Sprintf("bounding cell (%d,%d) is in the CPML ring or outside the grid", corner[0], corner[1]))
		}
	}
	return nil
}

// Spray adds value*weight to dst at each of the four corners.
func (w Weights) Spray(dst []float64, nx int, value float64) {
	for _, c := range w.Corners {
		dst[c.Iz*nx+c.Ix] += value * c.Weight
	}
}

// Interpolate reads a bilinearly-weighted value from src at the stencil.
func (w Weights) Interpolate(src []float64, nx int) float64 {
	sum := 0.0
	for _, c := range w.Corners {
		sum += src[c.Iz*nx+c.Ix] * c.Weight
	}
	return sum
}
