package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Point3
}

// NewTriangle creates a new triangle
func NewTriangle(normal Vector3, v1, v2, v3 Point3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Vertices returns the three corners in order.
func (t Triangle) Vertices() [3]Point3 {
	return [3]Point3{t.V1, t.V2, t.V3}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Point3 {
	return Centroid([]Point3{t.V1, t.V2, t.V3})
}

// Plane returns the supporting plane, oriented by the winding order.
func (t Triangle) Plane() (Plane, error) {
	return PlaneFromThreePoints(t.V1, t.V2, t.V3)
}

// Frame returns a frame at V1 with its x axis towards V2 and V3 in its
// xy-plane.
func (t Triangle) Frame() (Frame, error) {
	return FrameFromPoints(t.V1, t.V2, t.V3)
}
