package bestfit

import (
	"fmt"
	"math"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/linalg"
	"gonum.org/v1/gonum/mat"
)

// CircleFit is the least-squares circle through a point set.
type CircleFit struct {
	Center geometry.Point3
	// Normal of the plane containing the circle.
	Normal geometry.Vector3
	Radius float64
	// Residual is the sum of squared differences between the point
	// distances from the center and the radius.
	Residual float64
	// StdDev is the root mean square of those differences.
	StdDev float64
	// Iterations used by the nonlinear solver.
	Iterations int

	xaxis geometry.Vector3
}

// Frame returns the circle's local frame: origin at the center, z along the
// normal and x along the dominant direction of the input points.
func (c CircleFit) Frame() (geometry.Frame, error) {
	return geometry.NewFrame(c.Center, c.xaxis, c.Normal.Cross(c.xaxis))
}

// Plane returns the plane containing the circle.
func (c CircleFit) Plane() geometry.Plane {
	return geometry.Plane{Point: c.Center, Normal: c.Normal}
}

// Circle fits a circle using the default solver settings.
func Circle(points []geometry.Point3) (CircleFit, error) {
	return CircleWith(points, linalg.DefaultSettings())
}

// CircleWith fits a circle to at least three points.
//
// The points are projected into the frame spanned by their two principal
// axes. In that frame the center (xc, yc) minimizing the spread of the
// distances d_i = |p_i - c| is found with Levenberg-Marquardt on the
// residuals d_i - mean(d), seeded at the mean of the projected points. The
// radius is the mean distance at the solution.
func CircleWith(points []geometry.Point3, settings linalg.Settings) (CircleFit, error) {
	n := len(points)
	if n < 3 {
		return CircleFit{}, fmt.Errorf("need at least 3 points to fit a circle, got %d: %w", n, geometry.ErrInsufficientData)
	}
	axes, err := linalg.PCA(points)
	if err != nil {
		return CircleFit{}, err
	}
	v := axes.Variances
	if v[0] == 0 {
		return CircleFit{}, fmt.Errorf("all %d points coincide: %w", n, geometry.ErrDegenerateInput)
	}
	if v[1] <= degenerateRatio*v[0] {
		return CircleFit{}, fmt.Errorf("points are collinear: %w", geometry.ErrDegenerateInput)
	}
	frame, err := axes.Frame()
	if err != nil {
		return CircleFit{}, err
	}

	u := make([]float64, n)
	w := make([]float64, n)
	var seed [2]float64
	for i, p := range points {
		local := frame.PointToLocal(p)
		u[i], w[i] = local.X, local.Y
		seed[0] += local.X
		seed[1] += local.Y
	}
	seed[0] /= float64(n)
	seed[1] /= float64(n)

	dist := func(dst, c []float64) {
		for i := range u {
			dst[i] = math.Hypot(u[i]-c[0], w[i]-c[1])
		}
	}
	d := make([]float64, n)
	problem := linalg.Problem{
		M: n,
		Residuals: func(dst, c []float64) {
			dist(dst, c)
			m := mean(dst)
			for i := range dst {
				dst[i] -= m
			}
		},
		Jacobian: func(dst *mat.Dense, c []float64) {
			dist(d, c)
			var mx, my float64
			for i := range d {
				var dx, dy float64
				if d[i] != 0 {
					dx = (c[0] - u[i]) / d[i]
					dy = (c[1] - w[i]) / d[i]
				}
				dst.Set(i, 0, dx)
				dst.Set(i, 1, dy)
				mx += dx
				my += dy
			}
			mx /= float64(n)
			my /= float64(n)
			for i := range d {
				dst.Set(i, 0, dst.At(i, 0)-mx)
				dst.Set(i, 1, dst.At(i, 1)-my)
			}
		},
	}

	res, err := linalg.LevenbergMarquardt(problem, seed[:], settings)
	if err != nil {
		return CircleFit{}, fmt.Errorf("circle fit: %w", err)
	}

	dist(d, res.Params)
	return CircleFit{
		Center:     frame.PointToGlobal(geometry.NewPoint3(res.Params[0], res.Params[1], 0)),
		Normal:     frame.ZAxis(),
		Radius:     mean(d),
		Residual:   res.Cost,
		StdDev:     math.Sqrt(res.Cost / float64(n)),
		Iterations: res.Iterations,
		xaxis:      frame.XAxis(),
	}, nil
}

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
