package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// Point3 is a location in space. It shares the representation of Vector3;
// the distinction is only in how transformations treat it (points are
// translated, vectors are not).
type Point3 = Vector3

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// NewPoint3 creates a new 3D point
func NewPoint3(x, y, z float64) Point3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3FromSlice builds a vector from exactly three coordinates.
func Vector3FromSlice(xyz []float64) (Vector3, error) {
	if len(xyz) != 3 {
		return Vector3{}, fmt.Errorf("expected 3 coordinates but got %d: %w", len(xyz), ErrInvalidRepresentation)
	}
	return Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func (v Vector3) vec() r3.Vector { return r3.Vector(v) }

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3(v.vec().Add(other.vec()))
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3(v.vec().Sub(other.vec()))
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3(v.vec().Mul(scalar))
}

// Neg returns the vector pointing in the opposite direction
func (v Vector3) Neg() Vector3 {
	return v.Mul(-1)
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.vec().Dot(other.vec())
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3(v.vec().Cross(other.vec()))
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return v.vec().Norm()
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector3) LengthSquared() float64 {
	return v.vec().Norm2()
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.vec().Distance(other.vec())
}

// Normalize returns a unit vector in the same direction. A zero-length
// vector has no direction and yields ErrDegenerateInput.
func (v Vector3) Normalize() (Vector3, error) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vector3{}, fmt.Errorf("cannot normalize vector %v: %w", v, ErrDegenerateInput)
	}
	return v.Mul(1.0 / length), nil
}

// Ortho returns a unit vector orthogonal to v. The choice is deterministic.
func (v Vector3) Ortho() Vector3 {
	return Vector3(v.vec().Ortho())
}

// LargestComponent returns the index (0=X, 1=Y, 2=Z) of the component with
// the largest absolute value.
func (v Vector3) LargestComponent() int {
	return int(v.vec().LargestComponent())
}

// Component returns the coordinate at index i (0=X, 1=Y, 2=Z).
func (v Vector3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Array returns the coordinates as a fixed size array.
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// ApproxEqual reports whether all components differ by at most tol.
func (v Vector3) ApproxEqual(other Vector3, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol &&
		math.Abs(v.Y-other.Y) <= tol &&
		math.Abs(v.Z-other.Z) <= tol
}

// IsZero reports whether all components are exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Centroid returns the arithmetic mean of the points. It returns the zero
// vector for an empty slice.
func Centroid(points []Point3) Point3 {
	if len(points) == 0 {
		return Point3{}
	}
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
