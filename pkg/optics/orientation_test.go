package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-bench/pkg/core"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input    string
		expected Orientation
	}{
		{"+X", XPlus},
		{"xplus", XPlus},
		{" -x ", XMinus},
		{"Y+", YPlus},
		{"yminus", YMinus},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			o, err := ParseOrientation(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, o)
		})
	}

	_, err := ParseOrientation("z")
	assert.ErrorIs(t, err, ErrInvalidOrientation)
}

func TestOrientation_String(t *testing.T) {
	for _, o := range []Orientation{XPlus, XMinus, YPlus, YMinus} {
		parsed, err := ParseOrientation(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
	assert.Equal(t, "Orientation(9)", Orientation(9).String())

	assert.True(t, XMinus.Horizontal())
	assert.False(t, YPlus.Horizontal())
}

func TestRange(t *testing.T) {
	assert.NoError(t, Fixed(0.3).Validate())
	assert.NoError(t, Range{Lo: -1, Hi: 1}.Validate())
	assert.ErrorIs(t, Range{Lo: 1, Hi: -1}.Validate(), core.ErrInvalidRange)
	assert.ErrorIs(t, Range{Lo: math.NaN(), Hi: 1}.Validate(), core.ErrInvalidRange)
	assert.ErrorIs(t, Range{Lo: -1, Hi: math.NaN()}.Validate(), core.ErrInvalidRange)
	assert.ErrorIs(t, Fixed(math.NaN()).Validate(), core.ErrInvalidRange)

	r := Range{Lo: -1, Hi: 1}
	assert.True(t, r.Contains(-1))
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(1.0001))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "source", KindSource.String())
	assert.Equal(t, "collimator", KindCollimator.String())
	assert.Equal(t, "flat_mirror", KindFlatMirror.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
