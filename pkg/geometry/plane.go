package geometry

import "fmt"

// Plane is given by a point on it and a unit normal.
type Plane struct {
	Point  Point3
	Normal Vector3
}

// NewPlane creates a plane, normalizing the normal.
func NewPlane(point Point3, normal Vector3) (Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return Plane{}, fmt.Errorf("plane normal: %w", err)
	}
	return Plane{Point: point, Normal: n}, nil
}

// WorldXYPlane returns the plane z = 0 with normal (0,0,1).
func WorldXYPlane() Plane {
	return Plane{Normal: NewVector3(0, 0, 1)}
}

// PlaneFromThreePoints creates the plane through a, b and c with normal
// (b-a) × (c-a).
func PlaneFromThreePoints(a, b, c Point3) (Plane, error) {
	normal := b.Sub(a).Cross(c.Sub(a))
	if normal.IsZero() {
		return Plane{}, fmt.Errorf("points %v, %v, %v are collinear: %w", a, b, c, ErrDegenerateInput)
	}
	return NewPlane(a, normal)
}

// PlaneFromPointAndTwoVectors creates the plane through point spanned by u and v.
func PlaneFromPointAndTwoVectors(point Point3, u, v Vector3) (Plane, error) {
	normal := u.Cross(v)
	if normal.IsZero() {
		return Plane{}, fmt.Errorf("vectors %v and %v are parallel: %w", u, v, ErrDegenerateInput)
	}
	return NewPlane(point, normal)
}

// D returns the offset d of the plane equation ax + by + cz + d = 0.
func (p Plane) D() float64 {
	return -p.Normal.Dot(p.Point)
}

// DistanceTo returns the signed distance of q from the plane, positive on
// the side the normal points to.
func (p Plane) DistanceTo(q Point3) float64 {
	return q.Sub(p.Point).Dot(p.Normal)
}

// Project returns the orthogonal projection of q onto the plane.
func (p Plane) Project(q Point3) Point3 {
	return q.Sub(p.Normal.Mul(p.DistanceTo(q)))
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane(%v, %v)", p.Point, p.Normal)
}
