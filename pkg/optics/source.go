package optics

import (
	"fmt"

	"github.com/df07/go-optics-bench/pkg/core"
)

var _ Element = (*Source)(nil)

// Source emits rays crossing two discs perpendicular to Z: an upstream disc
// the ray starts on and a downstream disc it passes through.
type Source struct {
	name               string
	Upstream           core.Vec3
	Downstream         core.Vec3
	UpstreamDiameter   float64
	DownstreamDiameter float64
	sampler            *core.RandomSampler
}

// NewSource creates a source; the two discs must lie in different Z planes
func NewSource(name string, upstream, downstream core.Vec3, upstreamDiameter, downstreamDiameter float64, seed int64) (*Source, error) {
	if !(upstreamDiameter >= 0 && downstreamDiameter >= 0) {
		return nil, fmt.Errorf("source %s diameters %g, %g: %w", name, upstreamDiameter, downstreamDiameter, core.ErrInvalidRange)
	}
	if upstream.Z == downstream.Z {
		return nil, fmt.Errorf("source %s discs share the plane z=%g: %w", name, upstream.Z, ErrInvalidGeometry)
	}

	return &Source{
		name:               name,
		Upstream:           upstream,
		Downstream:         downstream,
		UpstreamDiameter:   upstreamDiameter,
		DownstreamDiameter: downstreamDiameter,
		sampler:            core.NewRandomSampler(seed),
	}, nil
}

func (s *Source) Kind() Kind   { return KindSource }
func (s *Source) Name() string { return s.name }

// Reset rewinds the emission stream to its construction seed
func (s *Source) Reset() {
	s.sampler.Reset()
}

// Emit samples one point uniformly on each disc and returns the unit ray from
// the upstream point towards the downstream point
func (s *Source) Emit() (core.Ray, error) {
	start := s.sampleDisc(s.Upstream, s.UpstreamDiameter)
	target := s.sampleDisc(s.Downstream, s.DownstreamDiameter)

	direction, err := target.Subtract(start).Normalized()
	if err != nil {
		return core.Ray{}, fmt.Errorf("source %s: %w", s.name, err)
	}
	return core.NewRay(start, direction), nil
}

func (s *Source) sampleDisc(center core.Vec3, diameter float64) core.Vec3 {
	u1, u2 := s.sampler.Get2D()
	return center.Add(core.SamplePointInDisk(u1, u2, diameter*0.5))
}
