package stl

import (
	"github.com/philipparndt/gofit/pkg/geometry"
)

// Model is a triangle mesh read from an STL file.
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddTriangle appends a facet.
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of facets.
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Vertices returns the distinct corner points of the mesh in order of first
// appearance. STL repeats shared corners once per facet; fitting needs each
// of them only once.
func (m *Model) Vertices() []geometry.Point3 {
	seen := make(map[geometry.Point3]struct{}, len(m.Triangles))
	points := make([]geometry.Point3, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		for _, v := range t.Vertices() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			points = append(points, v)
		}
	}
	return points
}

// BoundingBox returns the axis-aligned bounds of all vertices.
func (m *Model) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Vertices())
}

// SurfaceArea returns the summed facet area.
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, t := range m.Triangles {
		total += t.Area()
	}
	return total
}
