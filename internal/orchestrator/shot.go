package orchestrator

import (
	"github.com/san-kum/wavefd/internal/acquisition"
	"github.com/san-kum/wavefd/internal/coupling"
	"github.com/san-kum/wavefd/internal/stepper"
	"github.com/san-kum/wavefd/internal/wavefield"
	"github.com/san-kum/wavefd/internal/wavelet"
)

// runShot executes one shot's forward pass (and, if the worker was built
// with gradient accumulation enabled, the reverse adjoint pass) and
// returns its resampled receiver gathers.
func (w *worker) runShot(shot acquisition.Shot, wavelets wavelet.Wavelets, cfg Config) (ShotGather, error) {
	srcW, rcvW, err := w.locateShot(shot)
	if err != nil {
		return ShotGather{}, err
	}

	srcSeries := make([]wavelet.Series, len(shot.Sources))
	for i, s := range shot.Sources {
		srcSeries[i] = wavelet.Resample(wavelets.Source(s.WaveletID), cfg.Dt, cfg.Nt)
	}

	if cfg.Mode == ModeElastic {
		return w.runElasticShot(shot, srcW, rcvW, srcSeries, cfg)
	}
	return w.runAcousticShot(shot, srcW, rcvW, srcSeries, cfg)
}

// injectAcoustic applies one source's contribution at sample it to the
// given acoustic stepper, dispatched on the source's field flag.
func injectAcoustic(st *stepper.Acoustic, src acquisition.Source, w coupling.Weights, value, dt float64) {
	switch src.Flag {
	case acquisition.FieldVx:
		st.InjectVelocityX(w, value, dt)
	case acquisition.FieldVz:
		st.InjectVelocityZ(w, value, dt)
	default: // FieldPressure, FieldPressureRate
		st.InjectPressure(w, value, dt)
	}
}

func injectElastic(st *stepper.Elastic, src acquisition.Source, w coupling.Weights, value, dt float64) {
	switch src.Flag {
	case acquisition.FieldVx:
		st.InjectVelocityX(w, value, dt)
	case acquisition.FieldVz:
		st.InjectVelocityZ(w, value, dt)
	default:
		st.InjectPressure(w, value, dt)
	}
}

func recordAcoustic(st *wavefield.Acoustic, nx int, field acquisition.Field, w coupling.Weights) float64 {
	switch field {
	case acquisition.FieldVx:
		return stepper.RecordVx(st, nx, w)
	case acquisition.FieldVz:
		return stepper.RecordVz(st, nx, w)
	default:
		return stepper.RecordPressure(st, nx, w)
	}
}

func recordElastic(st *wavefield.Elastic, nx int, field acquisition.Field, w coupling.Weights) float64 {
	switch field {
	case acquisition.FieldVx:
		return stepper.RecordElasticVx(st, nx, w)
	case acquisition.FieldVz:
		return stepper.RecordElasticVz(st, nx, w)
	case acquisition.FieldNormalStress:
		return stepper.RecordNormalStress(st, nx, w)
	default:
		return stepper.RecordNormalStress(st, nx, w)
	}
}

// runAcousticShot is the non-gradient acoustic forward pass, or (when the
// worker carries gradient accumulators) the forward-plus-adjoint pair.
func (w *worker) runAcousticShot(shot acquisition.Shot, srcW, rcvW []coupling.Weights, srcSeries []wavelet.Series, cfg Config) (ShotGather, error) {
	fwdState := w.acousticPool.Get()
	defer w.acousticPool.Put(fwdState)

	st := stepper.NewAcoustic(w.grid, w.med, w.prof, fwdState)
	st.MinRows = cfg.MinRows
	var dispatch stepper.Stepper = st

	nx := w.grid.Nx
	raw := make([][]float64, len(shot.Receivers))
	for i := range raw {
		raw[i] = make([]float64, cfg.Nt)
	}

	var store *boundaryAcousticStore
	if w.gKI != nil {
		store = newBoundaryAcousticStore(w.grid, w.shell, cfg.Nt)
	}

	for it := 0; it < cfg.Nt; it++ {
		dispatch.Step(cfg.Dt)
		for i, src := range shot.Sources {
			injectAcoustic(st, src, srcW[i], srcSeries[i].Values[it], cfg.Dt)
		}
		for i, rcv := range shot.Receivers {
			raw[i][it] = recordAcoustic(fwdState, nx, rcv.Field, rcvW[i])
		}
		if store != nil {
			store.save(it, fwdState)
		}
	}

	var terminal *wavefield.Acoustic
	if store != nil {
		for i := 0; i < 2; i++ {
			st.Step(cfg.Dt)
		}
		terminal = fwdState
		store.saveTerminal(terminal)
		w.accumulateAcousticGradient(st, store, shot, rcvW, raw, cfg)
	}

	return w.buildGather(shot, raw, cfg), nil
}

// runElasticShot mirrors runAcousticShot for the elastic stepper.
func (w *worker) runElasticShot(shot acquisition.Shot, srcW, rcvW []coupling.Weights, srcSeries []wavelet.Series, cfg Config) (ShotGather, error) {
	fwdState := w.elasticPool.Get()
	defer w.elasticPool.Put(fwdState)

	st := stepper.NewElastic(w.grid, w.med, w.prof, fwdState)
	st.MinRows = cfg.MinRows
	var dispatch stepper.Stepper = st

	nx := w.grid.Nx
	raw := make([][]float64, len(shot.Receivers))
	for i := range raw {
		raw[i] = make([]float64, cfg.Nt)
	}

	for it := 0; it < cfg.Nt; it++ {
		dispatch.Step(cfg.Dt)
		for i, src := range shot.Sources {
			injectElastic(st, src, srcW[i], srcSeries[i].Values[it], cfg.Dt)
		}
		for i, rcv := range shot.Receivers {
			raw[i][it] = recordElastic(fwdState, nx, rcv.Field, rcvW[i])
		}
	}

	return w.buildGather(shot, raw, cfg), nil
}

func (w *worker) buildGather(shot acquisition.Shot, raw [][]float64, cfg Config) ShotGather {
	traces := make([]Trace, len(shot.Receivers))
	dtOut := cfg.DtOut
	if dtOut <= 0 {
		dtOut = cfg.Dt
	}
	outNt := cfg.Nt
	if dtOut != cfg.Dt {
		outNt = int(float64(cfg.Nt)*cfg.Dt/dtOut) + 1
	}
	for i, rcv := range shot.Receivers {
		resampled := wavelet.Resample(wavelet.Series{Dt: cfg.Dt, Values: raw[i]}, dtOut, outNt)
		traces[i] = Trace{Field: rcv.Field, Samples: resampled.Values}
	}
	return ShotGather{Traces: traces}
}
