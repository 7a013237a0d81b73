package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optics-bench/pkg/core"
)

// Range is a closed interval [Lo, Hi] that jitter values are drawn from
type Range struct {
	Lo, Hi float64
}

// Fixed is the degenerate range that always yields v
func Fixed(v float64) Range {
	return Range{Lo: v, Hi: v}
}

// Validate checks that both bounds are numbers and Lo <= Hi
func (r Range) Validate() error {
	if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || r.Lo > r.Hi {
		return fmt.Errorf("range [%g, %g]: %w", r.Lo, r.Hi, core.ErrInvalidRange)
	}
	return nil
}

// Contains reports whether v lies in the closed interval
func (r Range) Contains(v float64) bool {
	return v >= r.Lo && v <= r.Hi
}
