package cpml

// Slab is one small rectangular memory array for a single derivative on a
// single boundary face: P cells deep, Len cells along the face. Allocating
// one slab per face per derivative (rather than a full-grid array) keeps
// CPML memory proportional to the boundary perimeter, not the grid volume.
type Slab struct {
	P, Len int
	Data   []float64
}

func NewSlab(p, length int) *Slab {
	return &Slab{P: p, Len: length, Data: make([]float64, p*length)}
}

func (s *Slab) At(d, i int) float64    { return s.Data[d*s.Len+i] }
func (s *Slab) Set(d, i int, v float64) { s.Data[d*s.Len+i] = v }

func (s *Slab) Zero() {
	for i := range s.Data {
		s.Data[i] = 0
	}
}

// FaceMemory holds the low- and high-side memory slabs for one derivative
// crossing one axis.
type FaceMemory struct {
	Low, High *Slab
}

func NewFaceMemory(p, length int) *FaceMemory {
	return &FaceMemory{Low: NewSlab(p, length), High: NewSlab(p, length)}
}

func (f *FaceMemory) Zero() {
	f.Low.Zero()
	f.High.Zero()
}

// ApplyX runs the CPML recursion on a derivative array deriv (row-major
// Nz x Nx) restricted to the x-direction boundary slabs: for each boundary
// column, mem = b*mem + a*deriv; deriv = deriv/kappa + mem. axis carries
// the (a,b,kappa) profile to use (integer or half grid, matching the field
// deriv lives on). nz, nx are deriv's dimensions; p is the CPML thickness.
func (f *FaceMemory) ApplyX(deriv []float64, nz, nx, p int, axis Axis1D) {
	for iz := 0; iz < nz; iz++ {
		for d := 0; d < p; d++ {
			// Low side: d=0 is the outer edge, d=p-1 is adjacent to the interior.
			ixLow := d
			profLow := p - 1 - d
			applyOne(deriv, iz*nx+ixLow, f.Low, d, iz, axis, profLow)

			ixHigh := nx - 1 - d
			applyOne(deriv, iz*nx+ixHigh, f.High, d, iz, axis, profLow)
		}
	}
}

// ApplyZ is ApplyX's z-direction counterpart: the boundary slabs run along
// rows instead of columns.
func (f *FaceMemory) ApplyZ(deriv []float64, nz, nx, p int, axis Axis1D) {
	for ix := 0; ix < nx; ix++ {
		for d := 0; d < p; d++ {
			izLow := d
			profLow := p - 1 - d
			applyOne(deriv, izLow*nx+ix, f.Low, d, ix, axis, profLow)

			izHigh := nz - 1 - d
			applyOne(deriv, izHigh*nx+ix, f.High, d, ix, axis, profLow)
		}
	}
}

func applyOne(deriv []float64, flatIdx int, slab *Slab, d, along int, axis Axis1D, profIdx int) {
	mem := slab.At(d, along)
	mem = axis.B[profIdx]*mem + axis.A[profIdx]*deriv[flatIdx]
	slab.Set(d, along, mem)
	deriv[flatIdx] = deriv[flatIdx]*axis.KappaInv[profIdx] + mem
}

// ApplyXHalf and ApplyZHalf are ApplyX/ApplyZ's half-grid counterparts, for
// derivatives that land on a velocity (half-step) grid rather than the
// integer stress/pressure grid.
func (f *FaceMemory) ApplyXHalf(deriv []float64, nz, nx, p int, axis Axis1D) {
	for iz := 0; iz < nz; iz++ {
		for d := 0; d < p; d++ {
			ixLow := d
			profLow := p - 1 - d
			applyOneHalf(deriv, iz*nx+ixLow, f.Low, d, iz, axis, profLow)

			ixHigh := nx - 1 - d
			applyOneHalf(deriv, iz*nx+ixHigh, f.High, d, iz, axis, profLow)
		}
	}
}

func (f *FaceMemory) ApplyZHalf(deriv []float64, nz, nx, p int, axis Axis1D) {
	for ix := 0; ix < nx; ix++ {
		for d := 0; d < p; d++ {
			izLow := d
			profLow := p - 1 - d
			applyOneHalf(deriv, izLow*nx+ix, f.Low, d, ix, axis, profLow)

			izHigh := nz - 1 - d
			applyOneHalf(deriv, izHigh*nx+ix, f.High, d, ix, axis, profLow)
		}
	}
}

func applyOneHalf(deriv []float64, flatIdx int, slab *Slab, d, along int, axis Axis1D, profIdx int) {
	mem := slab.At(d, along)
	mem = axis.BHalf[profIdx]*mem + axis.AHalf[profIdx]*deriv[flatIdx]
	slab.Set(d, along, mem)
	deriv[flatIdx] = deriv[flatIdx]*axis.KappaHalfInv[profIdx] + mem
}
