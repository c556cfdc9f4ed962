// Package boundarystore implements the forward-pass boundary recorder and
// reverse-pass replayer the adjoint-state gradient needs: a thin shell of
// wavefield samples just inside the CPML, saved at every forward step and
// forced back into the field at the matching reverse step, plus one
// terminal full-interior snapshot that seeds the reverse pass. Because the
// CPML-interior wavefield at step it-1 is uniquely determined by the
// wavefield at it plus these boundary values, replaying them reconstructs
// the forward wavefield exactly up to floating-point round-off.
package boundarystore

import "github.com/san-kum/wavefd/internal/gridmedium"

// ShellWidth is the thickness, in cells, of the recorded interior shell
// just inside the CPML ring.
const ShellWidth = 3

// Shell is the set of grid cells recorded/replayed at one time step: the
// ShellWidth-cell-thick ring immediately inside the CPML boundary.
type Shell struct {
	cells []cell
}

type cell struct {
	iz, ix int
}

// BuildShell enumerates the shell cells for a padded grid once; the same
// index set is reused to save and replay every step.
func BuildShell(g *gridmedium.Grid) *Shell {
	zlo, zhi, xlo, xhi := g.InteriorBounds()
	seen := make(map[cell]bool)
	var cells []cell

	add := func(iz, ix int) {
		c := cell{iz, ix}
		if !seen[c] {
			seen[c] = true
			cells = append(cells, c)
		}
	}

	for iz := zlo; iz <= zhi; iz++ {
		for d := 0; d < ShellWidth; d++ {
			add(iz, xlo+d)
			add(iz, xhi-d)
		}
	}
	for ix := xlo; ix <= xhi; ix++ {
		for d := 0; d < ShellWidth; d++ {
			add(zlo+d, ix)
			add(zhi-d, ix)
		}
	}

	return &Shell{cells: cells}
}

// Store holds one forward/reverse pair's worth of recorded shell samples
// for a single field component, indexed by time step, plus a single
// terminal full-interior snapshot.
type Store struct {
	shell    *Shell
	nx       int
	frames   [][]float64 // frames[it][cell index] for it in [0, nt]
	terminal []float64   // full padded-grid snapshot at it = nt
}

func New(g *gridmedium.Grid, shell *Shell, nt int) *Store {
	frames := make([][]float64, nt+1)
	return &Store{shell: shell, nx: g.Nx, frames: frames, terminal: make([]float64, g.Nz*g.Nx)}
}

// Save copies the shell cells of field out of state at step it.
func (s *Store) Save(it int, field []float64) {
	frame := make([]float64, len(s.shell.cells))
	for i, c := range s.shell.cells {
		frame[i] = field[c.iz*s.nx+c.ix]
	}
	s.frames[it] = frame
}

// Replay forces the recorded shell values at step it back into field.
func (s *Store) Replay(it int, field []float64) {
	frame := s.frames[it]
	if frame == nil {
		return
	}
	for i, c := range s.shell.cells {
		field[c.iz*s.nx+c.ix] = frame[i]
	}
}

// SaveTerminal records the full-interior snapshot at the final step, used
// to seed the reverse pass.
func (s *Store) SaveTerminal(field []float64) {
	copy(s.terminal, field)
}

// Terminal returns the terminal full-interior snapshot.
func (s *Store) Terminal() []float64 { return s.terminal }

// Reset clears all recorded frames so the store can be reused for another
// shot.
func (s *Store) Reset() {
	for i := range s.frames {
		s.frames[i] = nil
	}
	for i := range s.terminal {
		s.terminal[i] = 0
	}
}

// AcousticStores bundles the three field stores (pressure and both
// velocity components) needed to exactly reconstruct an acoustic
// wavefield during the reverse pass: the leapfrog update needs all three
// to advance, so all three must be recorded and replayed together.
type AcousticStores struct {
	P, Vx, Vz *Store
}

func NewAcoustic(g *gridmedium.Grid, shell *Shell, nt int) *AcousticStores {
	return &AcousticStores{P: New(g, shell, nt), Vx: New(g, shell, nt), Vz: New(g, shell, nt)}
}

func (a *AcousticStores) Reset() {
	a.P.Reset()
	a.Vx.Reset()
	a.Vz.Reset()
}
