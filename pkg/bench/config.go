package bench

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-optics-bench/pkg/core"
	"github.com/df07/go-optics-bench/pkg/log"
	"github.com/df07/go-optics-bench/pkg/optics"
)

// Element type names accepted in a bench description
const (
	TypeCollimator = "collimator"
	TypeFlatMirror = "flat_mirror"
)

// sourceName keys the derived seed of the bench source
const sourceName = "source"

// Vector is an [x, y, z] triple in a bench description
type Vector [3]float64

func (v Vector) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Config describes a bench in YAML
type Config struct {
	Name     string          `yaml:"name"`
	Seed     int64           `yaml:"seed"`
	Verbose  bool            `yaml:"verbose,omitempty"`
	Source   SourceConfig    `yaml:"source"`
	Elements []ElementConfig `yaml:"elements"`
}

type SourceConfig struct {
	Upstream           Vector  `yaml:"upstream"`
	Downstream         Vector  `yaml:"downstream"`
	UpstreamDiameter   float64 `yaml:"upstream_diameter"`
	DownstreamDiameter float64 `yaml:"downstream_diameter"`
	Seed               *int64  `yaml:"seed,omitempty"`
}

// ElementConfig describes one optic. Collimators use the diameters and an
// optional normal (default +Z). Mirrors take either an explicit normal or a
// grazing incidence angle against the running nominal beam.
type ElementConfig struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Center Vector  `yaml:"center"`
	Normal *Vector `yaml:"normal,omitempty"`

	InnerDiameter float64 `yaml:"inner_diameter,omitempty"`
	OuterDiameter float64 `yaml:"outer_diameter,omitempty"`
	AlignTo       string  `yaml:"align_to,omitempty"`

	Length            float64   `yaml:"length,omitempty"`
	Width             float64   `yaml:"width,omitempty"`
	Thickness         float64   `yaml:"thickness,omitempty"`
	Orientation       string    `yaml:"orientation,omitempty"`
	IncidenceAngle    *float64  `yaml:"incidence_angle,omitempty"`
	RotationJitter    []float64 `yaml:"rotation_jitter,omitempty,flow"`
	TranslationJitter []float64 `yaml:"translation_jitter,omitempty,flow"`
	SurfaceOnly       bool      `yaml:"surface_only,omitempty"`

	Seed *int64 `yaml:"seed,omitempty"`
}

// LoadConfig decodes a YAML bench description. Unknown keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode bench config: %w", err)
	}
	return &c, nil
}

// LoadConfigFile reads a YAML bench description from path
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bench config: %w", err)
	}
	defer f.Close()

	c, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// DeriveSeed gives each named element its own stream seed from the bench seed
func DeriveSeed(benchSeed int64, name string) int64 {
	return benchSeed ^ int64(xxhash.Sum64String(name))
}

// Validate reports the first problem found in the description
func (c *Config) Validate() error {
	s := c.Source
	if !(s.UpstreamDiameter >= 0 && s.DownstreamDiameter >= 0) {
		return fmt.Errorf("%w: source diameters must be non-negative numbers: %w", ErrInvalidConfig, core.ErrInvalidRange)
	}
	if s.Upstream[2] == s.Downstream[2] {
		return fmt.Errorf("%w: source discs share the plane z=%g", ErrInvalidConfig, s.Upstream[2])
	}

	types := make(map[string]string, len(c.Elements))
	for i, e := range c.Elements {
		if e.Name == "" {
			return fmt.Errorf("%w: element %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := types[e.Name]; dup {
			return fmt.Errorf("%w: element %d: duplicate name %q", ErrInvalidConfig, i, e.Name)
		}
		if err := e.validate(types); err != nil {
			return fmt.Errorf("%w: element %d (%s): %w", ErrInvalidConfig, i, e.Name, err)
		}
		types[e.Name] = e.Type
	}
	return nil
}

// validate checks one element; earlier holds the types of the elements before it
func (e *ElementConfig) validate(earlier map[string]string) error {
	if e.Normal != nil && e.Normal.vec().LengthSquared() == 0 {
		return errors.New("zero normal")
	}

	switch e.Type {
	case TypeCollimator:
		if math.IsNaN(e.InnerDiameter) || math.IsNaN(e.OuterDiameter) || e.InnerDiameter < 0 || e.InnerDiameter >= e.OuterDiameter {
			return fmt.Errorf("diameters [%g, %g] need 0 <= inner < outer: %w", e.InnerDiameter, e.OuterDiameter, core.ErrInvalidRange)
		}
		if e.AlignTo != "" && earlier[e.AlignTo] != TypeFlatMirror {
			return fmt.Errorf("align_to %q is not an earlier flat mirror", e.AlignTo)
		}

	case TypeFlatMirror:
		if !(e.Length > 0 && e.Width > 0 && e.Thickness >= 0) {
			return fmt.Errorf("size %gx%gx%g: %w", e.Length, e.Width, e.Thickness, optics.ErrInvalidGeometry)
		}
		if e.Orientation != "" {
			if _, err := optics.ParseOrientation(e.Orientation); err != nil {
				return err
			}
		}
		if (e.Normal == nil) == (e.IncidenceAngle == nil) {
			return errors.New("exactly one of normal and incidence_angle is required")
		}
		if _, err := jitterRange(e.RotationJitter); err != nil {
			return fmt.Errorf("rotation_jitter: %w", err)
		}
		if _, err := jitterRange(e.TranslationJitter); err != nil {
			return fmt.Errorf("translation_jitter: %w", err)
		}
		if e.AlignTo != "" {
			return errors.New("align_to only applies to collimators")
		}

	default:
		return fmt.Errorf("unknown type %q", e.Type)
	}
	return nil
}

// jitterRange reads an optional [lo, hi] pair; absent means no jitter
func jitterRange(v []float64) (optics.Range, error) {
	switch len(v) {
	case 0:
		return optics.Range{}, nil
	case 2:
		r := optics.Range{Lo: v[0], Hi: v[1]}
		return r, r.Validate()
	default:
		return optics.Range{}, fmt.Errorf("want [lo, hi], got %d values", len(v))
	}
}

// Build validates the description and constructs the bench with its elements
// in order. The nominal beam starts along +Z and follows each mirror's
// nominal output.
func (c *Config) Build(logger log.Logger) (*Bench, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	sourceSeed := DeriveSeed(c.Seed, sourceName)
	if c.Source.Seed != nil {
		sourceSeed = *c.Source.Seed
	}
	source, err := optics.NewSource(sourceName,
		c.Source.Upstream.vec(), c.Source.Downstream.vec(),
		c.Source.UpstreamDiameter, c.Source.DownstreamDiameter,
		sourceSeed)
	if err != nil {
		return nil, fmt.Errorf("bench %s: %w", c.Name, err)
	}

	beam := core.NewVec3(0, 0, 1)
	mirrors := make(map[string]*optics.FlatMirror)
	elements := make([]optics.Optic, 0, len(c.Elements))

	for _, e := range c.Elements {
		seed := DeriveSeed(c.Seed, e.Name)
		if e.Seed != nil {
			seed = *e.Seed
		}

		var built optics.Optic
		switch e.Type {
		case TypeCollimator:
			built, err = c.buildCollimator(e, mirrors)
		case TypeFlatMirror:
			var m *optics.FlatMirror
			m, err = c.buildFlatMirror(e, beam, seed, logger)
			if err == nil {
				beam = m.NominalOut()
				mirrors[e.Name] = m
				built = m
			}
		}
		if err != nil {
			return nil, fmt.Errorf("bench %s: %w", c.Name, err)
		}

		logger.Debug("element built",
			log.String("bench", c.Name),
			log.String("element", e.Name),
			log.String("kind", built.Kind().String()),
			log.Int64("seed", seed),
		)
		elements = append(elements, built)
	}

	return New(c.Name, source, elements, logger), nil
}

func (c *Config) buildCollimator(e ElementConfig, mirrors map[string]*optics.FlatMirror) (*optics.Collimator, error) {
	normal := core.NewVec3(0, 0, 1)
	if e.Normal != nil {
		normal = e.Normal.vec()
	}

	col, err := optics.NewCollimatorFromDiameters(e.Name, e.Center.vec(), normal, e.InnerDiameter, e.OuterDiameter)
	if err != nil {
		return nil, err
	}
	if e.AlignTo != "" {
		if err := col.AlignTo(mirrors[e.AlignTo]); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func (c *Config) buildFlatMirror(e ElementConfig, beam core.Vec3, seed int64, logger log.Logger) (*optics.FlatMirror, error) {
	orientation := optics.XPlus
	if e.Orientation != "" {
		o, err := optics.ParseOrientation(e.Orientation)
		if err != nil {
			return nil, err
		}
		orientation = o
	}
	rotation, err := jitterRange(e.RotationJitter)
	if err != nil {
		return nil, err
	}
	translation, err := jitterRange(e.TranslationJitter)
	if err != nil {
		return nil, err
	}

	cfg := optics.FlatMirrorConfig{
		Name:              e.Name,
		Length:            e.Length,
		Width:             e.Width,
		Thickness:         e.Thickness,
		Center:            e.Center.vec(),
		NominalIn:         beam,
		Orientation:       orientation,
		RotationJitter:    rotation,
		TranslationJitter: translation,
		Seed:              seed,
		SurfaceOnly:       e.SurfaceOnly,
		Verbose:           c.Verbose,
		Logger:            logger,
	}

	if e.Normal != nil {
		cfg.Normal = e.Normal.vec()
		return optics.NewFlatMirror(cfg)
	}
	return optics.NewFlatMirrorAtAngle(cfg, *e.IncidenceAngle)
}
