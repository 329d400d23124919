package bestfit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/linalg"
)

func TestCircleKnownCircle(t *testing.T) {
	tests := []struct {
		name   string
		center geometry.Point3
		xaxis  geometry.Vector3
		yaxis  geometry.Vector3
		radius float64
		n      int
		start  float64
		sweep  float64
	}{
		{"xy full", geometry.NewPoint3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0), 1, 8, 0, 2 * math.Pi},
		{"tilted", geometry.NewPoint3(3, -2, 5), geometry.NewVector3(1, 1, 0), geometry.NewVector3(0, 1, 1), 7.5, 12, 0.3, 2 * math.Pi},
		{"arc", geometry.NewPoint3(-10, 4, 1), geometry.NewVector3(0, 0, 1), geometry.NewVector3(1, 0, 0), 2, 9, 0.1, math.Pi},
		{"three points", geometry.NewPoint3(1, 2, 3), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 0, 1), 4, 3, 0, 2 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := geometry.NewFrame(tt.center, tt.xaxis, tt.yaxis)
			if err != nil {
				t.Fatal(err)
			}
			points := pointsOnCircle(frame, tt.radius, tt.n, tt.start, tt.sweep)

			fit, err := Circle(points)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.center, fit.Center, cmpopts.EquateApprox(0, 1e-4))
			diff(t, tt.radius, fit.Radius, cmpopts.EquateApprox(0, 1e-4))
			if d := math.Abs(fit.Normal.Dot(frame.Normal())); math.Abs(d-1) > 1e-6 {
				t.Errorf("normal %v, want ±%v", fit.Normal, frame.Normal())
			}
			if fit.Residual > 1e-12 {
				t.Errorf("residual = %v, want 0", fit.Residual)
			}
			for _, p := range points {
				if d := fit.Deviation(p); math.Abs(d) > 1e-6 {
					t.Errorf("point %v deviates by %v", p, d)
				}
			}
		})
	}
}

func TestCircleNoisy(t *testing.T) {
	frame := geometry.WorldXY().WithPoint(geometry.NewPoint3(2, 3, 0))
	points := pointsOnCircle(frame, 5, 36, 0, 2*math.Pi)
	for i := range points {
		// Alternate the radius by ±0.01.
		d := points[i].Sub(frame.Point()).Mul(0.002)
		if i%2 == 0 {
			d = d.Neg()
		}
		points[i] = points[i].Add(d)
	}
	fit, err := Circle(points)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, frame.Point(), fit.Center, cmpopts.EquateApprox(0, 1e-3))
	diff(t, 5.0, fit.Radius, cmpopts.EquateApprox(0, 1e-3))
	if fit.StdDev > 0.02 {
		t.Errorf("std dev = %v", fit.StdDev)
	}
}

func TestCircleFrameAndPlane(t *testing.T) {
	frame, err := geometry.NewFrame(geometry.NewPoint3(1, 1, 1), geometry.NewVector3(1, 0, 1), geometry.NewVector3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	fit, err := Circle(pointsOnCircle(frame, 3, 10, 0, 2*math.Pi))
	if err != nil {
		t.Fatal(err)
	}
	f, err := fit.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsOrthonormal(1e-9) {
		t.Errorf("frame %v not orthonormal", f)
	}
	diff(t, fit.Center, f.Point())
	diff(t, fit.Normal, f.Normal(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, fit.Center, fit.Plane().Point)
}

func TestCircleConvergenceError(t *testing.T) {
	frame := geometry.WorldXY()
	points := pointsOnCircle(frame, 1, 5, 0.2, math.Pi/2)
	_, err := CircleWith(points, linalg.Settings{MaxIterations: 1, Tolerance: 1e-15})
	if !errors.Is(err, geometry.ErrConvergence) {
		t.Errorf("expected ErrConvergence, got %v", err)
	}
}

func TestCircleDegenerate(t *testing.T) {
	collinear := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 1, 0),
		geometry.NewPoint3(2, 2, 0),
	}
	if _, err := Circle(collinear); !errors.Is(err, geometry.ErrDegenerateInput) {
		t.Errorf("expected ErrDegenerateInput, got %v", err)
	}
}
