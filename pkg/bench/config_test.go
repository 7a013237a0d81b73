package bench

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/df07/go-optics-bench/pkg/core"
	"github.com/df07/go-optics-bench/pkg/log"
	"github.com/df07/go-optics-bench/pkg/optics"
)

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfigFile("testdata/fold.yaml")
	require.NoError(t, err)

	assert.Equal(t, "fold", cfg.Name)
	assert.Equal(t, int64(5), cfg.Seed)
	require.NotNil(t, cfg.Source.Seed)
	assert.Equal(t, int64(11), *cfg.Source.Seed)
	require.Len(t, cfg.Elements, 3)

	fold := cfg.Elements[1]
	assert.Equal(t, TypeFlatMirror, fold.Type)
	require.NotNil(t, fold.Normal)
	assert.Equal(t, Vector{1, 0, -1}, *fold.Normal)
	assert.Equal(t, "-x", fold.Orientation)
	assert.Nil(t, fold.IncidenceAngle)
	assert.Empty(t, fold.RotationJitter)
	require.NoError(t, cfg.Validate())
}

func TestConfig_BuildAndRun(t *testing.T) {
	cfg, err := LoadConfigFile("testdata/fold.yaml")
	require.NoError(t, err)

	b, err := cfg.Build(nil)
	require.NoError(t, err)
	require.Len(t, b.Optics, 3)
	assert.Equal(t, optics.KindCollimator, b.Optics[0].Kind())
	assert.Equal(t, optics.KindFlatMirror, b.Optics[1].Kind())
	assert.Equal(t, optics.KindCollimator, b.Optics[2].Kind())

	mirror := b.Element("fold").(*optics.FlatMirror)
	assert.Equal(t, optics.XMinus, mirror.Orientation())

	stats, traces, err := b.Run(3)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Transmitted)
	for _, rec := range traces {
		require.Len(t, rec.Points, 4)
		final := rec.Final()
		assert.True(t, final.Start.Equal(core.NewVec3(4, 0, 1.5)), "got %v", final.Start)
		assert.True(t, final.Direction.Equal(core.NewVec3(1, 0, 0)), "got %v", final.Direction)
	}
}

func TestLoadConfigFile_MatchesPreset(t *testing.T) {
	cfg, err := LoadConfigFile("../../configs/txi-sxr.yaml")
	require.NoError(t, err)
	assert.Equal(t, TXISoftXRayConfig(1), cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("name: x\ncolour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = LoadConfig(strings.NewReader("source:\n  upstream: [1, 2]\n"))
	assert.Error(t, err, "vectors need three components")

	_, err = LoadConfigFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	angle := 0.01
	normal := Vector{0, 0, 1}
	zero := Vector{}

	mirror := func(mutate func(*ElementConfig)) ElementConfig {
		e := ElementConfig{Name: "M", Type: TypeFlatMirror, Length: 1, Width: 0.1, IncidenceAngle: &angle}
		if mutate != nil {
			mutate(&e)
		}
		return e
	}
	collimator := func(mutate func(*ElementConfig)) ElementConfig {
		e := ElementConfig{Name: "C", Type: TypeCollimator, InnerDiameter: 1, OuterDiameter: 2}
		if mutate != nil {
			mutate(&e)
		}
		return e
	}

	tests := []struct {
		name     string
		source   func(*SourceConfig)
		elements []ElementConfig
		valid    bool
		cause    error
	}{
		{name: "valid", elements: []ElementConfig{mirror(nil), collimator(func(e *ElementConfig) { e.AlignTo = "M" })}, valid: true},
		{name: "source discs in one plane", source: func(s *SourceConfig) { s.Downstream[2] = 0 }},
		{name: "negative source diameter", source: func(s *SourceConfig) { s.UpstreamDiameter = -1 }, cause: core.ErrInvalidRange},
		{name: "NaN source diameter", source: func(s *SourceConfig) { s.DownstreamDiameter = math.NaN() }, cause: core.ErrInvalidRange},
		{name: "missing name", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.Name = "" })}},
		{name: "duplicate name", elements: []ElementConfig{collimator(nil), collimator(nil)}},
		{name: "unknown type", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.Type = "lens" })}},
		{name: "inverted diameters", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.InnerDiameter = 3 })}, cause: core.ErrInvalidRange},
		{name: "NaN diameter", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.OuterDiameter = math.NaN() })}, cause: core.ErrInvalidRange},
		{name: "zero normal", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.Normal = &zero })}},
		{name: "align to unknown", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.AlignTo = "M" })}},
		{name: "align to later mirror", elements: []ElementConfig{collimator(func(e *ElementConfig) { e.AlignTo = "M" }), mirror(nil)}},
		{name: "align to collimator", elements: []ElementConfig{
			collimator(nil),
			collimator(func(e *ElementConfig) { e.Name = "D"; e.AlignTo = "C" }),
		}},
		{name: "mirror align", elements: []ElementConfig{mirror(nil), mirror(func(e *ElementConfig) { e.Name = "N"; e.AlignTo = "M" })}},
		{name: "mirror without size", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.Length = 0 })}, cause: optics.ErrInvalidGeometry},
		{name: "NaN mirror width", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.Width = math.NaN() })}, cause: optics.ErrInvalidGeometry},
		{name: "mirror normal and angle", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.Normal = &normal })}},
		{name: "mirror without normal or angle", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.IncidenceAngle = nil })}},
		{name: "bad orientation", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.Orientation = "z" })}, cause: optics.ErrInvalidOrientation},
		{name: "short jitter", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.RotationJitter = []float64{0.1} })}},
		{name: "inverted jitter", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.TranslationJitter = []float64{0.1, -0.1} })}, cause: core.ErrInvalidRange},
		{name: "NaN jitter", elements: []ElementConfig{mirror(func(e *ElementConfig) { e.RotationJitter = []float64{math.NaN(), 0.1} })}, cause: core.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Name: "test",
				Source: SourceConfig{
					Upstream:   Vector{0, 0, 0},
					Downstream: Vector{0, 0, 1},
				},
				Elements: tt.elements,
			}
			if tt.source != nil {
				tt.source(&cfg.Source)
			}

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}

			_, err = cfg.Build(nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, DeriveSeed(7, "M1K3"), DeriveSeed(7, "M1K3"))
	assert.NotEqual(t, DeriveSeed(7, "M1K3"), DeriveSeed(7, "M2K3"))
	assert.NotEqual(t, DeriveSeed(7, "M1K3"), DeriveSeed(8, "M1K3"))
	assert.Equal(t, DeriveSeed(0, "M1K3")^7, DeriveSeed(7, "M1K3"))
}

func TestConfig_Build_Seeds(t *testing.T) {
	emitted := func(seed int64) []core.Ray {
		b, err := NewTXISoftXRayBench(seed, nil)
		require.NoError(t, err)
		_, traces, err := b.Run(20)
		require.NoError(t, err)
		rays := make([]core.Ray, len(traces))
		for i, rec := range traces {
			rays[i] = rec.Rays[0]
		}
		return rays
	}

	assert.Equal(t, emitted(1), emitted(1))
	assert.NotEqual(t, emitted(1), emitted(2))
}

func TestConfig_Build_AlignsCollimator(t *testing.T) {
	b, err := NewTXISoftXRayBench(1, nil)
	require.NoError(t, err)

	m2 := b.Element("M2K3").(*optics.FlatMirror)
	pc1 := b.Element("PC1K3").(*optics.Collimator)
	out := m2.NominalOut()

	assert.True(t, pc1.Normal.Equal(out))
	assert.InDelta(t, 744.0, pc1.Center.Z, 1e-12)
	assert.InDelta(t, m2.Center().X+out.X/out.Z*(744.0-737.022), pc1.Center.X, 1e-9)

	// Second mirror continues the fold towards -X
	m1 := b.Element("M1K3").(*optics.FlatMirror)
	assert.True(t, m2.NominalIn().Equal(m1.NominalOut()))
	assert.Less(t, out.X, m1.NominalOut().X)
	assert.Less(t, m1.NominalOut().X, 0.0)
}

func TestConfig_Build_Logs(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := log.NewFromZap(zap.New(obsCore))

	cfg := TXIHardXRayConfig(4)
	_, err := cfg.Build(logger)
	require.NoError(t, err)

	built := logs.FilterMessage("element built").All()
	require.Len(t, built, len(cfg.Elements))
	for i, entry := range built {
		fields := entry.ContextMap()
		assert.Equal(t, cfg.Elements[i].Name, fields["element"])
		assert.Equal(t, DeriveSeed(4, cfg.Elements[i].Name), fields["seed"])
	}
}
