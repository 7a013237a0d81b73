package core

import (
	"errors"
	"fmt"
)

var (
	// Arithmetic errors

	ErrDivisionByZero   = errors.New("division by zero")
	ErrDegenerateVector = errors.New("degenerate zero-length vector")
	ErrNonFiniteVector  = errors.New("vector has a non-finite component")
	ErrIndexOutOfRange  = errors.New("component index out of range")

	// Geometry errors

	ErrNoIntersection = fmt.Errorf("no intersection, ray parallel to plane: %w", ErrDivisionByZero)

	// Construction errors

	ErrInvalidRange = errors.New("invalid range")
)
