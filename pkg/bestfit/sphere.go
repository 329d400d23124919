package bestfit

import (
	"fmt"
	"math"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/linalg"
)

// SphereFit is the least-squares sphere through a point set.
type SphereFit struct {
	Center geometry.Point3
	Radius float64
}

// Sphere fits a sphere to at least four non-coplanar points.
//
// The sphere equation is linear in (xc, yc, zc, c):
//
//	2x·xc + 2y·yc + 2z·zc + c = x² + y² + z²
//
// and is solved in the least-squares sense over all points, with
// r = sqrt(c + xc² + yc² + zc²). The system is set up relative to the
// centroid to keep it well conditioned; the result is shifted back.
func Sphere(points []geometry.Point3) (SphereFit, error) {
	n := len(points)
	if n < 4 {
		return SphereFit{}, fmt.Errorf("need at least 4 points to fit a sphere, got %d: %w", n, geometry.ErrInsufficientData)
	}
	origin := geometry.Centroid(points)

	a := make([][]float64, n)
	b := make([]float64, n)
	for i, p := range points {
		q := p.Sub(origin)
		a[i] = []float64{2 * q.X, 2 * q.Y, 2 * q.Z, 1}
		b[i] = q.LengthSquared()
	}
	sol, err := linalg.LeastSquares(a, b)
	if err != nil {
		return SphereFit{}, fmt.Errorf("sphere fit: %w", err)
	}

	center := geometry.NewVector3(sol[0], sol[1], sol[2])
	r2 := sol[3] + center.LengthSquared()
	if !(r2 > 0) {
		return SphereFit{}, fmt.Errorf("sphere fit has no real radius: %w", geometry.ErrDegenerateInput)
	}
	return SphereFit{Center: center.Add(origin), Radius: math.Sqrt(r2)}, nil
}
