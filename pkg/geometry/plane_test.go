package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-bench/pkg/core"
)

func TestPlane_Intersect_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0, ray shooting down from above
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	s, hit, err := plane.Intersect(ray)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9)
	assert.True(t, hit.Equal(core.NewVec3(0, 0, 0)))
}

func TestPlane_Intersect_BehindRay(t *testing.T) {
	// Plane behind the ray start still yields the crossing, at negative s
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	s, hit, err := plane.Intersect(ray)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, s, 1e-9)
	assert.True(t, hit.Equal(core.NewVec3(0, 0, 0)))
}

func TestPlane_Intersect_ParallelRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"in plane", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))},
		{"above plane", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hit, err := plane.Intersect(tt.ray)
			assert.ErrorIs(t, err, core.ErrNoIntersection)
			assert.ErrorIs(t, err, core.ErrDivisionByZero)
			assert.False(t, math.IsNaN(hit.X) || math.IsInf(hit.X, 0))
		})
	}
}

func TestIntersectPlane_Oblique(t *testing.T) {
	normal, err := core.NewVec3(1, 1, 0).Normalized()
	require.NoError(t, err)
	ray := core.NewRay(core.NewVec3(0, 0, 0), normal)

	hit, err := IntersectPlane(ray, core.NewVec3(3, 0, 0), normal)
	require.NoError(t, err)
	assert.True(t, hit.Equal(core.NewVec3(1.5, 1.5, 0)), "got %v", hit)
}
