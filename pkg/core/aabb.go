package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromCenter creates an AABB spanning center ± halfExtent on each axis.
// Negative half extents are folded so Min <= Max always holds.
func NewAABBFromCenter(center, halfExtent Vec3) AABB {
	h := NewVec3(math.Abs(halfExtent.X), math.Abs(halfExtent.Y), math.Abs(halfExtent.Z))
	return AABB{Min: center.Subtract(h), Max: center.Add(h)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Contains reports whether p lies inside the box grown by pad on every side
func (aabb AABB) Contains(p Vec3, pad float64) bool {
	return p.X >= aabb.Min.X-pad && p.X <= aabb.Max.X+pad &&
		p.Y >= aabb.Min.Y-pad && p.Y <= aabb.Max.Y+pad &&
		p.Z >= aabb.Min.Z-pad && p.Z <= aabb.Max.Z+pad
}

// Hit tests if a ray intersects with this AABB using the slab method.
// On a hit it returns the entry parameter, clamped to tMin when the ray
// starts inside the box.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) (float64, bool) {
	for axis := 0; axis < 3; axis++ {
		// Components never fail for 0..2
		min, _ := aabb.Min.Component(axis)
		max, _ := aabb.Max.Component(axis)
		origin, _ := ray.Start.Component(axis)
		direction, _ := ray.Direction.Component(axis)

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return 0, false // Ray origin outside slab
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
