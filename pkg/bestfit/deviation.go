package bestfit

import (
	"math"

	"github.com/philipparndt/gofit/pkg/geometry"
)

// Shape is a fitted primitive that can measure how far a point lies from it.
type Shape interface {
	// Deviation returns the signed distance of p from the shape.
	Deviation(p geometry.Point3) float64
}

var (
	_ Shape = PlaneFit{}
	_ Shape = CircleFit{}
	_ Shape = SphereFit{}
)

// Deviation is the signed distance from the plane, positive on the side of
// the normal.
func (f PlaneFit) Deviation(p geometry.Point3) float64 {
	return f.Plane().DistanceTo(p)
}

// Deviation is the distance from p to the nearest point on the circle,
// negative if the projection of p onto the circle's plane lies inside it.
func (c CircleFit) Deviation(p geometry.Point3) float64 {
	d := p.Sub(c.Center)
	h := d.Dot(c.Normal)
	radial := d.Sub(c.Normal.Mul(h)).Length() - c.Radius
	dist := math.Hypot(h, radial)
	if radial < 0 {
		return -dist
	}
	return dist
}

// Deviation is the distance from the sphere surface, negative inside.
func (s SphereFit) Deviation(p geometry.Point3) float64 {
	return p.Distance(s.Center) - s.Radius
}
