// Package gridmedium builds the padded simulation grid (physical interior
// plus CPML rings) and derives the side material parameters the stepper
// needs, after padding so that constant edge extension never introduces a
// spurious contrast at the physical/CPML seam.
package gridmedium

// Grid describes the padded simulation grid geometry shared by every field
// array. All field arrays are row-major, Nz rows of Nx columns:
// index(iz,ix) = iz*Nx+ix.
type Grid struct {
	Nz, Nx int
	Dz, Dx float64
	P      int // CPML ring thickness on each face
}

// Index returns the flat offset of cell (iz,ix).
func (g *Grid) Index(iz, ix int) int { return iz*g.Nx + ix }

// InteriorBounds returns the inclusive physical-interior index range per
// axis: [P, N-P-1].
func (g *Grid) InteriorBounds() (zlo, zhi, xlo, xhi int) {
	return g.P, g.Nz - g.P - 1, g.P, g.Nx - g.P - 1
}

// InCPML reports whether cell (iz,ix) lies in the CPML ring or outside the
// padded grid entirely.
func (g *Grid) InCPML(iz, ix int) bool {
	if iz < 0 || iz >= g.Nz || ix < 0 || ix >= g.Nx {
		return true
	}
	zlo, zhi, xlo, xhi := g.InteriorBounds()
	return iz < zlo || iz > zhi || ix < xlo || ix > xhi
}
