package geometry

import (
	"fmt"
	"math"
)

// Quaternion holds the four coefficients w + xi + yj + zk.
type Quaternion struct {
	W, X, Y, Z float64
}

// QuaternionFromSlice builds a quaternion from exactly four coefficients in
// w, x, y, z order.
func QuaternionFromSlice(coeffs []float64) (Quaternion, error) {
	if len(coeffs) != 4 {
		return Quaternion{}, fmt.Errorf("expected 4 quaternion coefficients but got %d: %w", len(coeffs), ErrInvalidRepresentation)
	}
	return Quaternion{W: coeffs[0], X: coeffs[1], Y: coeffs[2], Z: coeffs[3]}, nil
}

// WXYZ returns the coefficients with the scalar first.
func (q Quaternion) WXYZ() [4]float64 {
	return [4]float64{q.W, q.X, q.Y, q.Z}
}

// XYZW returns the coefficients with the scalar last.
func (q Quaternion) XYZW() [4]float64 {
	return [4]float64{q.X, q.Y, q.Z, q.W}
}

// Norm returns the length of the quaternion.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// IsUnit reports whether the quaternion has unit length within tol.
func (q Quaternion) IsUnit(tol float64) bool {
	return math.Abs(q.Norm()-1) <= tol
}

// Unitized returns the quaternion scaled to unit length.
func (q Quaternion) Unitized() (Quaternion, error) {
	n := q.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Quaternion{}, fmt.Errorf("quaternion %v has no direction: %w", q, ErrInvalidRepresentation)
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}, nil
}

// Canonized returns the equivalent quaternion with a non-negative scalar part.
// q and -q describe the same rotation.
func (q Quaternion) Canonized() Quaternion {
	if q.W < 0 {
		return Quaternion{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	}
	return q
}

// Conjugate returns w - xi - yj - zk.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Mul returns the Hamilton product q*r. Applied to rotations, r acts first.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// ApproxEqual compares coefficients component-wise.
func (q Quaternion) ApproxEqual(other Quaternion, tol float64) bool {
	return math.Abs(q.W-other.W) <= tol &&
		math.Abs(q.X-other.X) <= tol &&
		math.Abs(q.Y-other.Y) <= tol &&
		math.Abs(q.Z-other.Z) <= tol
}

func (q Quaternion) String() string {
	return fmt.Sprintf("Quaternion(%.6f, %.6f, %.6f, %.6f)", q.W, q.X, q.Y, q.Z)
}
