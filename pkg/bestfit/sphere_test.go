package bestfit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/gofit/pkg/geometry"
)

func TestSphereRegression(t *testing.T) {
	points := []geometry.Point3{
		geometry.NewPoint3(291.58, -199.041, 120.194),
		geometry.NewPoint3(293.003, -52.379, 33.599),
		geometry.NewPoint3(514.217, 26.345, 29.143),
		geometry.NewPoint3(683.253, 26.510, -6.194),
		geometry.NewPoint3(683.247, -327.154, 179.113),
		geometry.NewPoint3(231.606, -430.659, 115.458),
		geometry.NewPoint3(87.278, -419.178, -18.863),
		geometry.NewPoint3(24.731, -340.222, -127.158),
	}
	fit, err := Sphere(points)
	if err != nil {
		t.Fatal(err)
	}
	approx := cmpopts.EquateApprox(0, 1e-6)
	diff(t, geometry.NewPoint3(524.9403561961329, -373.8847210600683, -339.87433236060906), fit.Center, approx)
	diff(t, 544.6277241330347, fit.Radius, approx)
}

func TestSphereExact(t *testing.T) {
	center := geometry.NewPoint3(1, -2, 3)
	var points []geometry.Point3
	for _, d := range []geometry.Vector3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
		geometry.NewVector3(1, 1, 1).Mul(1 / math.Sqrt(3)),
	} {
		points = append(points, center.Add(d.Mul(2.5)))
	}
	fit, err := Sphere(points)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, SphereFit{Center: center, Radius: 2.5}, fit, cmpopts.EquateApprox(0, 1e-9))
	for _, p := range points {
		if d := fit.Deviation(p); math.Abs(d) > 1e-9 {
			t.Errorf("point %v deviates by %v", p, d)
		}
	}
}

func TestSphereCoplanar(t *testing.T) {
	points := []geometry.Point3{
		geometry.NewPoint3(1, 0, 0),
		geometry.NewPoint3(0, 1, 0),
		geometry.NewPoint3(-1, 0, 0),
		geometry.NewPoint3(0, -1, 0),
		geometry.NewPoint3(0.6, 0.8, 0),
	}
	if _, err := Sphere(points); !errors.Is(err, geometry.ErrDegenerateInput) {
		t.Errorf("expected ErrDegenerateInput, got %v", err)
	}
}

func TestInsufficientData(t *testing.T) {
	p := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 0, 0),
		geometry.NewPoint3(0, 1, 0),
		geometry.NewPoint3(0, 0, 1),
	}
	tests := []struct {
		name string
		fit  func([]geometry.Point3) error
		min  int
	}{
		{"plane", func(p []geometry.Point3) error { _, err := Plane(p); return err }, 3},
		{"circle", func(p []geometry.Point3) error { _, err := Circle(p); return err }, 3},
		{"sphere", func(p []geometry.Point3) error { _, err := Sphere(p); return err }, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < tt.min; n++ {
				if err := tt.fit(p[:n]); !errors.Is(err, geometry.ErrInsufficientData) {
					t.Errorf("%d points: expected ErrInsufficientData, got %v", n, err)
				}
			}
		})
	}
}
