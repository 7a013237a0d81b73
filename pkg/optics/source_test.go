package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-bench/pkg/core"
)

func TestNewSource_Validation(t *testing.T) {
	up := core.NewVec3(0, 0, 0)

	_, err := NewSource("S", up, core.NewVec3(0, 0, 10), -1, 1, 0)
	assert.ErrorIs(t, err, core.ErrInvalidRange)

	_, err = NewSource("S", up, core.NewVec3(0, 0, 10), 1, math.NaN(), 0)
	assert.ErrorIs(t, err, core.ErrInvalidRange)

	_, err = NewSource("S", up, core.NewVec3(1, 1, 0), 1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	s, err := NewSource("S", up, core.NewVec3(0, 0, 10), 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, KindSource, s.Kind())
	assert.Equal(t, "S", s.Name())
}

func TestSource_Emit(t *testing.T) {
	upstream := core.NewVec3(0.5, -0.5, 0)
	downstream := core.NewVec3(1, 0, 100)
	s, err := NewSource("PC2S", upstream, downstream, 0.2, 0.04, 11)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		ray, err := s.Emit()
		require.NoError(t, err)

		assert.False(t, ray.Stopped)
		assert.InDelta(t, 1.0, ray.Direction.Length(), 1e-12)
		assert.Equal(t, upstream.Z, ray.Start.Z)
		assert.LessOrEqual(t, ray.Start.Subtract(upstream).Length(), 0.1+1e-12)

		// The ray crosses the downstream plane inside the downstream disc
		at := ray.At((downstream.Z - ray.Start.Z) / ray.Direction.Z)
		assert.InDelta(t, downstream.Z, at.Z, 1e-9)
		assert.LessOrEqual(t, math.Hypot(at.X-downstream.X, at.Y-downstream.Y), 0.02+1e-9)
	}
}

func TestSource_PointDiscs(t *testing.T) {
	s, err := NewSource("S", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 5), 0, 0, 3)
	require.NoError(t, err)

	ray, err := s.Emit()
	require.NoError(t, err)
	assert.Equal(t, core.NewVec3(0, 0, 0), ray.Start)
	assert.Equal(t, core.NewVec3(0, 0, 1), ray.Direction)
}

func TestSource_Reset(t *testing.T) {
	s, err := NewSource("S", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 10), 1, 1, 99)
	require.NoError(t, err)

	emit := func() []core.Ray {
		rays := make([]core.Ray, 5)
		for i := range rays {
			rays[i], err = s.Emit()
			require.NoError(t, err)
		}
		return rays
	}

	first := emit()
	assert.NotEqual(t, first[0], first[1])
	s.Reset()
	assert.Equal(t, first, emit())
}
