// Package acquisition defines the per-shot source/receiver geometry
// interface the orchestrator consumes. Reading acquisition geometry from a
// survey file is an external collaborator and is not implemented here; a
// minimal in-memory Table is provided for tests and presets.
package acquisition

import "github.com/san-kum/wavefd/internal/coupling"

// Field selects which field a source injects into or a receiver reads.
type Field int

const (
	FieldPressure Field = iota
	FieldVx
	FieldVz
	FieldPressureRate // source-only: wavelet is treated as already time-differentiated
	FieldNormalStress // receiver-only: elastic normal stress
)

// Source is one active source in a shot.
type Source struct {
	Pos       coupling.Position
	Flag      Field
	WaveletID int // index into the Wavelets table
}

// Receiver is one recording location in a shot.
type Receiver struct {
	Pos   coupling.Position
	Field Field
}

// Shot bundles the sources and receivers active together in one
// experiment; shots are independent and parallelizable.
type Shot struct {
	Sources   []Source
	Receivers []Receiver
}

// Acquisition supplies per-shot source/receiver geometry.
type Acquisition interface {
	NumShots() int
	Shot(i int) Shot
}

// Table is a minimal in-memory Acquisition implementation.
type Table struct {
	Shots []Shot
}

func (t *Table) NumShots() int      { return len(t.Shots) }
func (t *Table) Shot(i int) Shot    { return t.Shots[i] }

// Reciprocal returns a copy of shot with its first source's and first
// receiver's positions swapped. By reciprocity (§8.1), the trace recorded
// for the swapped shot matches the original up to discretization error.
func Reciprocal(shot Shot) Shot {
	out := Shot{
		Sources:   append([]Source(nil), shot.Sources...),
		Receivers: append([]Receiver(nil), shot.Receivers...),
	}
	if len(out.Sources) > 0 && len(out.Receivers) > 0 {
		sp, rp := out.Sources[0].Pos, out.Receivers[0].Pos
		out.Sources[0].Pos = rp
		out.Receivers[0].Pos = sp
	}
	return out
}
