package orchestrator

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/boundarystore"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/cpml"
	"github.com/san-kum/wavefd/internal/fderrors"
	"github.com/san-kum/wavefd/internal/gridmedium"
	"github.com/san-kum/wavefd/internal/medium"
	"github.com/san-kum/wavefd/internal/wavefield"
	"github.com/san-kum/wavefd/internal/wavelet"
)

type lifecycle int

const (
	lifecycleUnconfigured lifecycle = iota
	lifecycleConfigured
	lifecycleRunning
)

// Engine is the C7 orchestrator: it owns the padded medium, CPML profiles,
// and acquisition/wavelet tables (shared and read-only once configured),
// and drives the per-shot outer loop across workers at Run.
type Engine struct {
	mu    sync.Mutex
	state lifecycle
	cfg   Config

	phys   medium.Physical
	padded *gridmedium.Padded
	prof   *cpml.Profiles
	shell  *boundarystore.Shell

	acq      acquisition.Acquisition
	wavelets wavelet.Wavelets

	haveMedium, haveAcq, haveWavelets bool

	observers []Observer
}

// Observer receives shot-completion notifications during Run. The engine
// never drives a UI itself; AddObserver is the seam a caller uses to
// attach one (e.g. internal/progress's live bubbletea model).
type Observer interface {
	ShotCompleted(idx, total int)
}

// AddObserver registers o to be notified as each shot finishes during Run.
// Observer calls are serialized by the engine; o need not be goroutine-safe.
func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

func (e *Engine) notifyShotCompleted(idx, total int) {
	for _, o := range e.observers {
		o.ShotCompleted(idx, total)
	}
}

// New builds an unconfigured Engine for the given run configuration. cfg is
// validated lazily: P and Dt when a medium is supplied (UpdateMedium), Nt
// and Dt again at Run.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, state: lifecycleUnconfigured}
}

// UpdateMedium swaps the physical-domain medium, re-deriving the padded
// grid and CPML profiles. Copy-then-commit: on error the engine's previous
// medium, padding, and profiles are left untouched.
func (e *Engine) UpdateMedium(phys medium.Physical) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == lifecycleRunning {
		return fderrors.ErrRunning
	}
	if e.cfg.P <= 0 || e.cfg.Dt <= 0 {
		return fderrors.NewConfigError(fderrors.ErrInvalidGeometry, "P and Dt must be positive before UpdateMedium")
	}

	padded, err := gridmedium.Pad(phys, e.cfg.P)
	if err != nil {
		return err
	}
	prof := cpml.BuildAll(e.cfg.P, padded.Grid.Dz, padded.Grid.Dx, e.cfg.Dt, padded.VpMax, cpml.DefaultParams())
	shell := boundarystore.BuildShell(&padded.Grid)

	e.phys, e.padded, e.prof, e.shell = phys, padded, prof, shell
	e.haveMedium = true
	e.settle()
	return nil
}

// UpdateAcquisition swaps the source/receiver geometry. Weights are
// validated lazily per-shot at Run (the padded grid may not exist yet).
func (e *Engine) UpdateAcquisition(acq acquisition.Acquisition) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == lifecycleRunning {
		return fderrors.ErrRunning
	}
	e.acq = acq
	e.haveAcq = true
	e.settle()
	return nil
}

// UpdateWavelets swaps the per-source wavelet table.
func (e *Engine) UpdateWavelets(w wavelet.Wavelets) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == lifecycleRunning {
		return fderrors.ErrRunning
	}
	e.wavelets = w
	e.haveWavelets = true
	e.settle()
	return nil
}

// settle transitions Unconfigured -> Configured once medium, acquisition,
// and wavelets are all set; called with mu held.
func (e *Engine) settle() {
	if e.haveMedium && e.haveAcq && e.haveWavelets {
		e.state = lifecycleConfigured
	}
}

// validateShots checks every shot's wavelet references and source/receiver
// positions (an out-of-domain position is rejected here, before any worker
// starts) and, for each referenced wavelet, that its dominant spectral
// content sits within the simulation Nyquist band at the configured Dt: a
// wavelet whose dominant frequency lies beyond that band aliases once
// resampled, and that aborts the run rather than silently producing a
// corrupted source series.
func (e *Engine) validateShots() error {
	for i := 0; i < e.acq.NumShots(); i++ {
		shot := e.acq.Shot(i)
		for _, src := range shot.Sources {
			if src.WaveletID < 0 || src.WaveletID >= e.wavelets.NumSources() {
				return fderrors.NewConfigError(fderrors.ErrMissingWavelet,
					fmt.Sprintf("shot %d source has no wavelet at index %d", i, src.WaveletID))
			}
			series := e.wavelets.Source(src.WaveletID)
			if headroom := wavelet.NyquistHeadroom(series, e.cfg.Dt); headroom > 1.0 {
				return fderrors.NewConfigError(fderrors.ErrInvalidGeometry,
					fmt.Sprintf("shot %d source %d wavelet's dominant frequency exceeds the simulation Nyquist (headroom %.2f)", i, src.WaveletID, headroom))
			}
			if _, err := coupling.LocateSpray(&e.padded.Grid, src.Pos); err != nil {
				return err
			}
		}
		for _, rcv := range shot.Receivers {
			if _, err := coupling.Locate(&e.padded.Grid, rcv.Pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run executes every shot, partitioned across workers, and returns the
// stacked gathers and (if Config.Gradient) the stacked gradient. A failed
// Run leaves no partial gathers or gradient: validation happens entirely
// before any worker starts stepping.
func (e *Engine) Run(ctx context.Context) (*Gathers, *Gradient, error) {
	e.mu.Lock()
	if e.state != lifecycleConfigured {
		e.mu.Unlock()
		return nil, nil, fderrors.ErrNotConfigured
	}
	if e.cfg.Nt <= 0 || e.cfg.Dt <= 0 {
		e.mu.Unlock()
		return nil, nil, fderrors.NewConfigError(fderrors.ErrInvalidGeometry, "Nt and Dt must be positive")
	}
	if err := e.validateShots(); err != nil {
		e.mu.Unlock()
		return nil, nil, err
	}
	if e.cfg.Mode == ModeElastic && !e.padded.Elastic {
		e.mu.Unlock()
		return nil, nil, fderrors.NewConfigError(fderrors.ErrInvalidGeometry, "elastic mode requires a medium exposing Lambda/Mu")
	}
	if e.cfg.Mode == ModeElastic && e.cfg.Gradient {
		e.mu.Unlock()
		return nil, nil, fderrors.NewConfigError(fderrors.ErrInvalidGeometry, "gradient computation is not yet implemented for elastic mode")
	}
	if e.cfg.Mode == ModeAcousticBorn {
		e.mu.Unlock()
		return nil, nil, fderrors.NewConfigError(fderrors.ErrInvalidGeometry, "Born-linearized acoustic mode has no stepper implementation yet")
	}
	e.state = lifecycleRunning
	numShots := e.acq.NumShots()
	padded, prof, shell, acq, wavelets, cfg := e.padded, e.prof, e.shell, e.acq, e.wavelets, e.cfg
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.state = lifecycleConfigured
		e.mu.Unlock()
	}()

	gathers := make([]ShotGather, numShots)
	var gradGKI, gradRhoI, gradIllum [][]float64

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numShots {
		workers = numShots
	}
	if workers < 1 {
		workers = 1
	}

	if cfg.Gradient {
		gradGKI = make([][]float64, workers)
		gradRhoI = make([][]float64, workers)
		gradIllum = make([][]float64, workers)
	}

	type job struct {
		shotIdx int
		w       *worker
	}
	chunks := chunkIndices(numShots, workers)

	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex
	var notifyMu sync.Mutex

	for wi, idxs := range chunks {
		wg.Add(1)
		go func(wi int, idxs []int) {
			defer wg.Done()
			w := newWorker(padded, prof, shell, cfg)
			for _, si := range idxs {
				select {
				case <-ctx.Done():
					errMu.Lock()
					if firstErr == nil {
						firstErr = ctx.Err()
					}
					errMu.Unlock()
					return
				default:
				}
				gather, err := w.runShot(acq.Shot(si), wavelets, cfg)
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					return
				}
				gathers[si] = gather
				notifyMu.Lock()
				e.notifyShotCompleted(si, numShots)
				notifyMu.Unlock()
			}
			if cfg.Gradient {
				gradGKI[wi] = w.gKI
				gradRhoI[wi] = w.gRhoI
				gradIllum[wi] = w.illum
			}
		}(wi, idxs)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}

	result := &Gathers{Shots: gathers}
	if !cfg.Gradient {
		return result, nil, nil
	}

	// The worker accumulators are sized on the padded grid (they are
	// indexed identically to padded.K, which the stepper walks directly),
	// but the gradient the caller gets back is defined on the physical
	// (unpadded) grid: CPML is padding, not a modeling parameter, and has
	// no business appearing in an inversion-facing gradient.
	p := padded.Grid.P
	nxPad := padded.Grid.Nx
	nzPhys := padded.Grid.Nz - 2*p
	nxPhys := padded.Grid.Nx - 2*p
	nPhys := nzPhys * nxPhys

	gradient := &Gradient{Nz: nzPhys, Nx: nxPhys, GKI: make([]float64, nPhys), GRhoI: make([]float64, nPhys)}
	if cfg.Illumination {
		gradient.Illumination = make([]float64, nPhys)
	}
	cellArea := padded.Grid.Dz * padded.Grid.Dx
	for wi := 0; wi < workers; wi++ {
		for izPhys := 0; izPhys < nzPhys; izPhys++ {
			izPad := izPhys + p
			for ixPhys := 0; ixPhys < nxPhys; ixPhys++ {
				ixPad := ixPhys + p
				padIdx := izPad*nxPad + ixPad
				physIdx := izPhys*nxPhys + ixPhys
				gradient.GKI[physIdx] += gradGKI[wi][padIdx] * cellArea
				gradient.GRhoI[physIdx] += gradRhoI[wi][padIdx] * cellArea
				if cfg.Illumination {
					gradient.Illumination[physIdx] += gradIllum[wi][padIdx]
				}
			}
		}
	}
	if cfg.NormalizeByIllumination && cfg.Illumination {
		for i := range gradient.GKI {
			if gradient.Illumination[i] > 1e-30 {
				gradient.GKI[i] /= gradient.Illumination[i]
				gradient.GRhoI[i] /= gradient.Illumination[i]
			}
		}
	}
	return result, gradient, nil
}

func chunkIndices(n, workers int) [][]int {
	chunks := make([][]int, workers)
	for i := 0; i < n; i++ {
		w := i % workers
		chunks[w] = append(chunks[w], i)
	}
	return chunks
}

// worker holds one goroutine's private field state, CPML-memory-backed
// stepper, boundary store, and per-shot accumulators; it never touches
// another worker's state.
type worker struct {
	grid *gridmedium.Grid
	med  *gridmedium.Padded
	prof *cpml.Profiles

	acousticPool *wavefield.AcousticPool
	elasticPool  *wavefield.ElasticPool

	shell *boundarystore.Shell

	gKI, gRhoI, illum []float64
}

func newWorker(padded *gridmedium.Padded, prof *cpml.Profiles, shell *boundarystore.Shell, cfg Config) *worker {
	w := &worker{grid: &padded.Grid, med: padded, prof: prof, shell: shell}
	w.acousticPool = wavefield.NewAcousticPool(w.grid)
	if padded.Elastic {
		w.elasticPool = wavefield.NewElasticPool(w.grid)
	}
	if cfg.Gradient {
		n := padded.Grid.Nz * padded.Grid.Nx
		w.gKI = make([]float64, n)
		w.gRhoI = make([]float64, n)
		if cfg.Illumination {
			w.illum = make([]float64, n)
		}
	}
	return w
}

// locateShot resolves bilinear coupling weights for every source and
// receiver in the shot, up front, so an out-of-domain position aborts
// before any stepping.
func (w *worker) locateShot(shot acquisition.Shot) (srcW []coupling.Weights, rcvW []coupling.Weights, err error) {
	srcW = make([]coupling.Weights, len(shot.Sources))
	for i, s := range shot.Sources {
		srcW[i], err = coupling.LocateSpray(w.grid, s.Pos)
		if err != nil {
			return nil, nil, err
		}
	}
	rcvW = make([]coupling.Weights, len(shot.Receivers))
	for i, r := range shot.Receivers {
		rcvW[i], err = coupling.Locate(w.grid, r.Pos)
		if err != nil {
			return nil, nil, err
		}
	}
	return srcW, rcvW, nil
}
