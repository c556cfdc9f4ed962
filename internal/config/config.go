package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultP      = 20
	DefaultDt     = 2e-3
	DefaultNt     = 500
	DefaultDzDx   = 10.0
	DefaultRCoef  = 0.001
	DefaultNPower = 2
	DefaultFreqHz = 10.0
)

// Config is one engine run's full configuration: grid geometry, CPML
// thickness, physics mode, and the gradient/illumination toggles, plus the
// medium/acquisition description used to build the Homogeneous or
// TwoLayer reference media the presets below exercise.
type Config struct {
	Mode  string  `yaml:"mode"` // "acoustic", "acoustic-born", or "elastic"
	Nz    int     `yaml:"nz"`
	Nx    int     `yaml:"nx"`
	Dz    float64 `yaml:"dz"`
	Dx    float64 `yaml:"dx"`
	P     int     `yaml:"p"`
	Dt    float64 `yaml:"dt"`
	Nt    int     `yaml:"nt"`
	DtOut float64 `yaml:"dt_out"`

	Medium MediumConfig `yaml:"medium"`
	Source SourceConfig `yaml:"source"`

	Gradient                bool `yaml:"gradient"`
	Illumination            bool `yaml:"illumination"`
	NormalizeByIllumination bool `yaml:"normalize_by_illumination"`

	Workers int `yaml:"workers"`
}

// MediumConfig describes a reference medium: either homogeneous (VpLower
// and InterfaceRow left zero) or a flat two-layer split.
type MediumConfig struct {
	Vp           float64 `yaml:"vp"`
	VpLower      float64 `yaml:"vp_lower"`
	InterfaceRow int     `yaml:"interface_row"`
	Vs           float64 `yaml:"vs"` // elastic mode only
	Rho          float64 `yaml:"rho"`
}

// SourceConfig places a single Ricker-wavelet source and one receiver,
// enough to drive the E1/E2/E4 end-to-end scenarios; richer acquisitions
// are built programmatically against internal/acquisition.Table.
type SourceConfig struct {
	FreqHz  float64 `yaml:"freq_hz"`
	SrcZ    float64 `yaml:"src_z"`
	SrcX    float64 `yaml:"src_x"`
	RcvZ    float64 `yaml:"rcv_z"`
	RcvX    float64 `yaml:"rcv_x"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: "acoustic",
		Nz:   100, Nx: 100,
		Dz: DefaultDzDx, Dx: DefaultDzDx,
		P: DefaultP, Dt: DefaultDt, Nt: DefaultNt, DtOut: DefaultDt,
		Medium: MediumConfig{Vp: 2000, Rho: 2000},
		Source: SourceConfig{FreqHz: DefaultFreqHz, SrcZ: 500, SrcX: 500, RcvZ: 500, RcvX: 700},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
