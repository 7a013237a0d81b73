package bench

import (
	"fmt"
	"sort"

	"github.com/df07/go-optics-bench/pkg/log"
)

// Presets maps preset names to the descriptions of the predefined benches
var Presets = map[string]func(seed int64) *Config{
	"txi-sxr": TXISoftXRayConfig,
	"txi-hxr": TXIHardXRayConfig,
}

// PresetNames returns the registered preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetConfig returns the description of the named preset
func PresetConfig(name string, seed int64) (*Config, error) {
	describe, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return describe(seed), nil
}

// NewPreset builds the named preset bench
func NewPreset(name string, seed int64, logger log.Logger) (*Bench, error) {
	cfg, err := PresetConfig(name, seed)
	if err != nil {
		return nil, err
	}
	return cfg.Build(logger)
}

// TXI mirror parameters shared by both beamlines
const (
	txiIncidenceAngle = -0.0098468 // rad
	txiMirrorLength   = 1.0
	txiMirrorWidth    = 0.02
	txiMirrorDepth    = 0.02
)

func txiMirror(name string, center Vector) ElementConfig {
	angle := txiIncidenceAngle
	return ElementConfig{
		Name:              name,
		Type:              TypeFlatMirror,
		Center:            center,
		Length:            txiMirrorLength,
		Width:             txiMirrorWidth,
		Thickness:         txiMirrorDepth,
		Orientation:       "+X",
		IncidenceAngle:    &angle,
		RotationJitter:    []float64{-0.00015, 0.00015},
		TranslationJitter: []float64{-0.001, 0.001},
	}
}

func txiCollimator(name string, center Vector, innerDiameter, outerDiameter float64) ElementConfig {
	return ElementConfig{
		Name:          name,
		Type:          TypeCollimator,
		Center:        center,
		InnerDiameter: innerDiameter,
		OuterDiameter: outerDiameter,
	}
}

// TXISoftXRayConfig describes the TXI soft X-ray branch: the beam is defined by
// PC2S, folded twice towards -X by M1K3 and M2K3 and cleaned up by PC1K3,
// which sits on the nominal beam after M2K3, and PC2K3.
func TXISoftXRayConfig(seed int64) *Config {
	pc1k3 := txiCollimator("PC1K3", Vector{1.25, 0, 744.0}, 0.008, 0.084)
	pc1k3.AlignTo = "M2K3"

	return &Config{
		Name: "txi-sxr",
		Seed: seed,
		Source: SourceConfig{
			Upstream:           Vector{1.25, 0, 690.0},
			Downstream:         Vector{1.25, 0, 731.145},
			UpstreamDiameter:   0.02,
			DownstreamDiameter: 0.016,
		},
		Elements: []ElementConfig{
			txiCollimator("PC2S", Vector{1.25, 0, 731.145}, 0.016, 0.055),
			txiMirror("M1K3", Vector{1.25, 0, 735.422}),
			txiMirror("M2K3", Vector{1.2184, 0, 737.022}),
			pc1k3,
			txiCollimator("PC2K3", Vector{0.687, 0, 750.503}, 0.0145, 0.084),
		},
	}
}

// TXIHardXRayConfig describes the TXI hard X-ray branch defined by PC1H and
// folded by M1L0 and M1L1
func TXIHardXRayConfig(seed int64) *Config {
	pc1l1 := txiCollimator("PC1L1", Vector{-1.114, 0, 745.621}, 0.008, 0.084)
	pc1l1.AlignTo = "M1L1"

	return &Config{
		Name: "txi-hxr",
		Seed: seed,
		Source: SourceConfig{
			Upstream:           Vector{-1.25, 0, 690.0},
			Downstream:         Vector{-1.25, 0, 735.211},
			UpstreamDiameter:   0.02,
			DownstreamDiameter: 0.008,
		},
		Elements: []ElementConfig{
			txiCollimator("PC1H", Vector{-1.25, 0, 735.211}, 0.008, 0.055),
			txiMirror("M1L0", Vector{-1.25, 0, 740.0}),
			txiMirror("M1L1", Vector{-1.227, 0, 741.6}),
			pc1l1,
			txiCollimator("PC2L1", Vector{-1.0, 0, 749.616}, 0.0145, 0.084),
		},
	}
}

func NewTXISoftXRayBench(seed int64, logger log.Logger) (*Bench, error) {
	return TXISoftXRayConfig(seed).Build(logger)
}

func NewTXIHardXRayBench(seed int64, logger log.Logger) (*Bench, error) {
	return TXIHardXRayConfig(seed).Build(logger)
}
