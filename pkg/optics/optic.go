// Package optics implements the optical elements of a bench and their
// per-element transport of rays.
//
// Elements that sample alignment tolerance own a private random stream. An
// element must not be used from more than one goroutine at a time; distinct
// elements are independent.
package optics

import (
	"errors"

	"github.com/df07/go-optics-bench/pkg/core"
)

var (
	ErrInvalidOrientation = errors.New("invalid mirror orientation")
	ErrInvalidGeometry    = errors.New("invalid element geometry")
)

// Kind tags each element variant for logging and external dispatch
type Kind int

const (
	KindSource Kind = iota
	KindCollimator
	KindFlatMirror
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindCollimator:
		return "collimator"
	case KindFlatMirror:
		return "flat_mirror"
	default:
		return "unknown"
	}
}

// Element is anything placed on a bench
type Element interface {
	Kind() Kind
	Name() string
}

// Optic maps an incoming ray to an outgoing ray.
// Transport never modifies its input and always sets Direction on the result,
// also for stopped rays. A parallel ray is reported as core.ErrNoIntersection.
type Optic interface {
	Element
	Transport(in core.Ray) (core.Ray, error)
}
