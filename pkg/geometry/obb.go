package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-optics-bench/pkg/core"
)

// OBB is a box with arbitrary orientation, stored as a center, an orthonormal
// frame and half extents along each frame axis.
type OBB struct {
	Center      core.Vec3
	Axes        [3]core.Vec3 // Orthonormal local axes
	HalfExtents core.Vec3    // Half size along Axes[0], Axes[1], Axes[2]
	local       core.AABB
}

// NewOBB creates an oriented box. The axes are normalized; they must be
// mutually perpendicular.
func NewOBB(center, u, v, w, halfExtents core.Vec3) (*OBB, error) {
	var axes [3]core.Vec3
	for i, axis := range []core.Vec3{u, v, w} {
		n, err := axis.Normalized()
		if err != nil {
			return nil, fmt.Errorf("box axis %d: %w", i, err)
		}
		axes[i] = n
	}
	if halfExtents.X < 0 || halfExtents.Y < 0 || halfExtents.Z < 0 {
		return nil, fmt.Errorf("box half extents %v: %w", halfExtents, core.ErrInvalidRange)
	}

	return &OBB{
		Center:      center,
		Axes:        axes,
		HalfExtents: halfExtents,
		local:       core.NewAABBFromCenter(core.Vec3{}, halfExtents),
	}, nil
}

// ToLocal expresses a world point in the box frame, relative to its center
func (b *OBB) ToLocal(p core.Vec3) core.Vec3 {
	d := p.Subtract(b.Center)
	return core.NewVec3(d.Dot(b.Axes[0]), d.Dot(b.Axes[1]), d.Dot(b.Axes[2]))
}

func (b *OBB) directionToLocal(d core.Vec3) core.Vec3 {
	return core.NewVec3(d.Dot(b.Axes[0]), d.Dot(b.Axes[1]), d.Dot(b.Axes[2]))
}

// Hit tests the ray against the box in its local frame and returns the entry
// parameter. Because the frame is orthonormal the parameter is the same in
// world space.
func (b *OBB) Hit(ray core.Ray, tMin, tMax float64) (float64, bool) {
	local := core.Ray{
		Start:     b.ToLocal(ray.Start),
		Direction: b.directionToLocal(ray.Direction),
	}
	return b.local.Hit(local, tMin, tMax)
}

// HitForward tests the ray for any crossing at or ahead of its start
func (b *OBB) HitForward(ray core.Ray) (float64, bool) {
	return b.Hit(ray, 0, math.Inf(1))
}
