package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optics-bench/pkg/core"
	"github.com/df07/go-optics-bench/pkg/geometry"
)

var _ Optic = (*Collimator)(nil)

// Collimator is an annular element in the plane through Center with the given
// Normal. Rays crossing the plane strictly between InnerRadius and
// OuterRadius from Center are stopped; all other rays pass unchanged.
type Collimator struct {
	name        string
	Center      core.Vec3
	Normal      core.Vec3
	InnerRadius float64
	OuterRadius float64
}

// NewCollimator creates a collimator, checking 0 <= innerRadius < outerRadius.
// The normal is stored at unit length.
func NewCollimator(name string, center, normal core.Vec3, innerRadius, outerRadius float64) (*Collimator, error) {
	if math.IsNaN(innerRadius) || math.IsNaN(outerRadius) || innerRadius < 0 || innerRadius >= outerRadius {
		return nil, fmt.Errorf("collimator %s radii [%g, %g]: %w", name, innerRadius, outerRadius, core.ErrInvalidRange)
	}
	unit, err := normal.Normalized()
	if err != nil {
		return nil, fmt.Errorf("collimator %s normal: %w", name, err)
	}

	return &Collimator{
		name:        name,
		Center:      center,
		Normal:      unit,
		InnerRadius: innerRadius,
		OuterRadius: outerRadius,
	}, nil
}

// NewCollimatorFromDiameters creates a collimator from inner and outer diameters
func NewCollimatorFromDiameters(name string, center, normal core.Vec3, innerDiameter, outerDiameter float64) (*Collimator, error) {
	return NewCollimator(name, center, normal, innerDiameter*0.5, outerDiameter*0.5)
}

func (c *Collimator) Kind() Kind   { return KindCollimator }
func (c *Collimator) Name() string { return c.name }

// Transport moves the ray to the collimator plane and flags it stopped when it
// lands in the open annulus (InnerRadius, OuterRadius).
func (c *Collimator) Transport(in core.Ray) (core.Ray, error) {
	hit, err := geometry.IntersectPlane(in, c.Center, c.Normal)
	if err != nil {
		return core.Ray{}, fmt.Errorf("collimator %s: %w", c.name, err)
	}

	radial := hit.Subtract(c.Center).Length()

	return core.Ray{
		Start:     hit,
		Direction: in.Direction,
		Stopped:   radial > c.InnerRadius && radial < c.OuterRadius,
	}, nil
}

// AlignTo centres the collimator on the mirror's nominal output beam at the
// collimator's current Z and turns its normal along that beam.
func (c *Collimator) AlignTo(m *FlatMirror) error {
	out := m.NominalOut()
	if math.Abs(out.Z) < parallelLimit {
		return fmt.Errorf("align %s to %s: %w", c.name, m.Name(), core.ErrNoIntersection)
	}

	origin := m.Center()
	dz := c.Center.Z - origin.Z
	c.Center.X = origin.X + out.X/out.Z*dz
	c.Center.Y = origin.Y + out.Y/out.Z*dz
	c.Normal = out
	return nil
}
