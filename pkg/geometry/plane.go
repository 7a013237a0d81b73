package geometry

import (
	"math"

	"github.com/df07/go-optics-bench/pkg/core"
)

// parallelTolerance is the smallest |normal·direction| treated as a crossing
const parallelTolerance = 1e-8

// Plane represents an infinite plane defined by a point and normal.
// The normal is used as given; callers supply unit normals.
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Normal vector
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) Plane {
	return Plane{Point: point, Normal: normal}
}

// Intersect returns the ray parameter and point where the ray crosses the plane.
// The parameter may be negative when the plane lies behind the ray start.
func (p Plane) Intersect(ray core.Ray) (float64, core.Vec3, error) {
	denominator := p.Normal.Dot(ray.Direction)
	if math.Abs(denominator) < parallelTolerance {
		return 0, core.Vec3{}, core.ErrNoIntersection
	}

	// s = normal · (point_on_plane - ray_start) / (normal · ray_direction)
	s := p.Normal.Dot(p.Point.Subtract(ray.Start)) / denominator
	return s, ray.At(s), nil
}

// IntersectPlane intersects a ray with the plane through center with the given normal
func IntersectPlane(ray core.Ray, center, normal core.Vec3) (core.Vec3, error) {
	_, hit, err := NewPlane(center, normal).Intersect(ray)
	return hit, err
}
