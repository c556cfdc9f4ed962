package config

// Presets groups named scenario configs by family, mirroring the §8
// end-to-end scenarios: "homogeneous" is E1's impulse response, "layered"
// is E2's two-layer reflection, "cpml-check" is the §8.4 boundary-
// attenuation scenario, "gradient" is E4's finite-difference gradient
// check.
var Presets = map[string]map[string]*Config{
	"homogeneous": {
		"impulse": {
			Mode: "acoustic", Nz: 100, Nx: 100, Dz: 10, Dx: 10,
			P: 20, Dt: 2e-3, Nt: 500, DtOut: 2e-3,
			Medium: MediumConfig{Vp: 2000, Rho: 2000},
			Source: SourceConfig{FreqHz: 10, SrcZ: 500, SrcX: 500, RcvZ: 500, RcvX: 700},
		},
		"elastic-impulse": {
			Mode: "elastic", Nz: 100, Nx: 100, Dz: 10, Dx: 10,
			P: 20, Dt: 1.5e-3, Nt: 500, DtOut: 1.5e-3,
			Medium: MediumConfig{Vp: 2000, Vs: 1100, Rho: 2000},
			Source: SourceConfig{FreqHz: 10, SrcZ: 500, SrcX: 500, RcvZ: 500, RcvX: 700},
		},
	},
	"layered": {
		"reflection": {
			Mode: "acoustic", Nz: 100, Nx: 100, Dz: 10, Dx: 10,
			P: 20, Dt: 2e-3, Nt: 700, DtOut: 2e-3,
			Medium: MediumConfig{Vp: 1500, VpLower: 2500, InterfaceRow: 50, Rho: 2000},
			Source: SourceConfig{FreqHz: 10, SrcZ: 50, SrcX: 500, RcvZ: 50, RcvX: 700},
		},
	},
	"cpml-check": {
		"attenuation": {
			Mode: "acoustic", Nz: 200, Nx: 200, Dz: 10, Dx: 10,
			P: 40, Dt: 2e-3, Nt: 800, DtOut: 2e-3,
			Medium: MediumConfig{Vp: 2000, Rho: 2000},
			Source: SourceConfig{FreqHz: 10, SrcZ: 1000, SrcX: 1000, RcvZ: 1000, RcvX: 1200},
		},
	},
	"gradient": {
		"finite-difference-check": {
			Mode: "acoustic", Nz: 60, Nx: 60, Dz: 10, Dx: 10,
			P: 15, Dt: 2e-3, Nt: 300, DtOut: 2e-3,
			Medium:   MediumConfig{Vp: 2000, Rho: 2000},
			Source:   SourceConfig{FreqHz: 12, SrcZ: 300, SrcX: 300, RcvZ: 300, RcvX: 450},
			Gradient: true,
		},
	},
}

func GetPreset(family, name string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	return names
}
