package core

import "fmt"

// Ray is the value exchanged between optical elements.
// Direction is expected to be unit length; Stopped marks a ray blocked by the
// element that produced it.
type Ray struct {
	Start     Vec3
	Direction Vec3
	Stopped   bool
}

// NewRay creates a new unstopped ray
func NewRay(start, direction Vec3) Ray {
	return Ray{Start: start, Direction: direction}
}

// At returns the point at parameter s along the ray
func (r Ray) At(s float64) Vec3 {
	return r.Start.Add(r.Direction.Multiply(s))
}

func (r Ray) String() string {
	return fmt.Sprintf("%v %v stopped=%t", r.Start, r.Direction, r.Stopped)
}
