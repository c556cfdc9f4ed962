package wavefield

import (
	"sync"

	"github.com/san-kum/wavefd/internal/gridmedium"
)

// AcousticPool reuses *Acoustic field state across shots instead of
// reallocating it per shot: each worker's per-shot flow zeroes and returns
// a pooled state rather than allocating one from scratch.
type AcousticPool struct {
	grid *gridmedium.Grid
	pool sync.Pool
}

func NewAcousticPool(g *gridmedium.Grid) *AcousticPool {
	p := &AcousticPool{grid: g}
	p.pool.New = func() interface{} { return NewAcoustic(g) }
	return p
}

func (p *AcousticPool) Get() *Acoustic {
	a := p.pool.Get().(*Acoustic)
	a.Zero()
	return a
}

func (p *AcousticPool) Put(a *Acoustic) {
	if a.Nz == p.grid.Nz && a.Nx == p.grid.Nx {
		p.pool.Put(a)
	}
}

// ElasticPool is AcousticPool's elastic-mode counterpart.
type ElasticPool struct {
	grid *gridmedium.Grid
	pool sync.Pool
}

func NewElasticPool(g *gridmedium.Grid) *ElasticPool {
	p := &ElasticPool{grid: g}
	p.pool.New = func() interface{} { return NewElastic(g) }
	return p
}

func (p *ElasticPool) Get() *Elastic {
	e := p.pool.Get().(*Elastic)
	e.Zero()
	return e
}

func (p *ElasticPool) Put(e *Elastic) {
	if e.Nz == p.grid.Nz && e.Nx == p.grid.Nx {
		p.pool.Put(e)
	}
}
