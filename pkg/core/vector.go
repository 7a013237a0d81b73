package core

import (
	"fmt"
	"math"
)

// Float is the set of precisions a Vector3 can be built on
type Float interface {
	~float32 | ~float64
}

// Epsilon is the per-component tolerance used when comparing vectors
const Epsilon = 4.37114e-05

// Vector3 represents a 3D vector
type Vector3[T Float] struct {
	X, Y, Z T
}

// Vec3 is the double precision vector used by rays and optics
type Vec3 = Vector3[float64]

// Vec3f is the single precision vector
type Vec3f = Vector3[float32]

// NewVec3 creates a new double precision vector
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewVector3 creates a new vector of any supported precision
func NewVector3[T Float](x, y, z T) Vector3[T] {
	return Vector3[T]{X: x, Y: y, Z: z}
}

// FromComponents rebuilds a vector from its x, y, z components
func FromComponents[T Float](c [3]T) Vector3[T] {
	return Vector3[T]{X: c[0], Y: c[1], Z: c[2]}
}

// ConvertVector changes the precision of a vector
func ConvertVector[To, From Float](v Vector3[From]) Vector3[To] {
	return Vector3[To]{X: To(v.X), Y: To(v.Y), Z: To(v.Z)}
}

// Add returns the sum of two vectors
func (v Vector3[T]) Add(other Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vector3[T]) Subtract(other Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns the negative of the vector
func (v Vector3[T]) Negate() Vector3[T] {
	return Vector3[T]{-v.X, -v.Y, -v.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vector3[T]) Multiply(scalar T) Vector3[T] {
	return Vector3[T]{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vector3[T]) Divide(scalar T) (Vector3[T], error) {
	if scalar == 0 {
		return Vector3[T]{}, ErrDivisionByZero
	}
	return Vector3[T]{v.X / scalar, v.Y / scalar, v.Z / scalar}, nil
}

// Dot returns the dot product of two vectors
func (v Vector3[T]) Dot(other Vector3[T]) T {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the right-handed cross product of two vectors
func (v Vector3[T]) Cross(other Vector3[T]) Vector3[T] {
	return Vector3[T]{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector. It is computed in double
// precision with the components scaled by the largest of them, so it neither
// overflows nor underflows before the final result.
func (v Vector3[T]) Length() T {
	scale, unit := v.scaledLength()
	return T(scale * unit)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector3[T]) LengthSquared() T {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize scales the vector to unit length in place. A zero vector fails
// with ErrDegenerateVector and one with an infinite or NaN component fails
// with ErrNonFiniteVector; in both cases v is left untouched.
func (v *Vector3[T]) Normalize() error {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		return fmt.Errorf("normalize %v: %w", *v, ErrNonFiniteVector)
	}

	scale, unit := v.scaledLength()
	if scale == 0 {
		return ErrDegenerateVector
	}
	if math.IsInf(scale, 0) {
		return fmt.Errorf("normalize %v: %w", *v, ErrNonFiniteVector)
	}

	v.X = T(x / scale / unit)
	v.Y = T(y / scale / unit)
	v.Z = T(z / scale / unit)
	return nil
}

// Normalized returns a unit vector in the same direction
func (v Vector3[T]) Normalized() (Vector3[T], error) {
	if err := v.Normalize(); err != nil {
		return Vector3[T]{}, err
	}
	return v, nil
}

// RotateX rotates the vector about the X axis by angle radians
func (v Vector3[T]) RotateX(angle T) Vector3[T] {
	cosA, sinA := cosSin(angle)
	return Vector3[T]{
		X: v.X,
		Y: cosA*v.Y - sinA*v.Z,
		Z: sinA*v.Y + cosA*v.Z,
	}
}

// RotateY rotates the vector about the Y axis by angle radians
func (v Vector3[T]) RotateY(angle T) Vector3[T] {
	cosA, sinA := cosSin(angle)
	return Vector3[T]{
		X: cosA*v.X + sinA*v.Z,
		Y: v.Y,
		Z: -sinA*v.X + cosA*v.Z,
	}
}

// RotateZ rotates the vector about the Z axis by angle radians
func (v Vector3[T]) RotateZ(angle T) Vector3[T] {
	cosA, sinA := cosSin(angle)
	return Vector3[T]{
		X: cosA*v.X - sinA*v.Y,
		Y: sinA*v.X + cosA*v.Y,
		Z: v.Z,
	}
}

// Reflect mirrors the vector off a surface with the given normal.
// Both vectors are normalized first, so the result is always unit length.
func (v Vector3[T]) Reflect(surfaceNormal Vector3[T]) (Vector3[T], error) {
	in, err := v.Normalized()
	if err != nil {
		return Vector3[T]{}, fmt.Errorf("reflect incident %v: %w", v, err)
	}
	n, err := surfaceNormal.Normalized()
	if err != nil {
		return Vector3[T]{}, fmt.Errorf("reflect off normal %v: %w", surfaceNormal, err)
	}
	return in.Subtract(n.Multiply(2 * in.Dot(n))), nil
}

// Equal reports whether every component differs by less than Epsilon
func (v Vector3[T]) Equal(other Vector3[T]) bool {
	return abs(v.X-other.X) < Epsilon &&
		abs(v.Y-other.Y) < Epsilon &&
		abs(v.Z-other.Z) < Epsilon
}

// Component returns the i-th component (0=X, 1=Y, 2=Z)
func (v Vector3[T]) Component(i int) (T, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	case 2:
		return v.Z, nil
	}
	return 0, fmt.Errorf("component %d: %w", i, ErrIndexOutOfRange)
}

// Components returns the x, y, z components as an array
func (v Vector3[T]) Components() [3]T {
	return [3]T{v.X, v.Y, v.Z}
}

func (v Vector3[T]) String() string {
	return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z)
}

// Deg2Rad converts degrees to radians
func Deg2Rad[T Float](deg T) T {
	return deg / 180 * T(math.Pi)
}

// Rad2Deg converts radians to degrees
func Rad2Deg[T Float](rad T) T {
	return rad / T(math.Pi) * 180
}

func cosSin[T Float](angle T) (T, T) {
	sin, cos := math.Sincos(float64(angle))
	return T(cos), T(sin)
}

// scaledLength splits the length into scale*unit, where scale is the largest
// absolute component and unit lies in [1, sqrt(3)] for non-zero vectors.
func (v Vector3[T]) scaledLength() (scale, unit float64) {
	x, y, z := math.Abs(float64(v.X)), math.Abs(float64(v.Y)), math.Abs(float64(v.Z))
	scale = math.Max(x, math.Max(y, z))
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return scale, 1
	}
	x, y, z = x/scale, y/scale, z/scale
	return scale, math.Sqrt(x*x + y*y + z*z)
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
