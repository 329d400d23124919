package bestfit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/gofit/pkg/geometry"
)

func TestPlaneKnownPlane(t *testing.T) {
	normal, err := geometry.NewVector3(1, -2, 3).Normalize()
	if err != nil {
		t.Fatal(err)
	}
	origin := geometry.NewPoint3(5, -1, 2)
	frame, err := geometry.FrameFromPlane(geometry.Plane{Point: origin, Normal: normal})
	if err != nil {
		t.Fatal(err)
	}

	var points []geometry.Point3
	for _, uv := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {3, -2}, {-1.5, 4}, {2, 2}, {-3, -1}} {
		points = append(points, frame.PointToGlobal(geometry.NewPoint3(uv[0], uv[1], 0)))
	}

	fit, err := Plane(points)
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(fit.Normal.Dot(normal)); math.Abs(d-1) > 1e-6 {
		t.Errorf("normal %v is not parallel to %v", fit.Normal, normal)
	}
	diff(t, geometry.Centroid(points), fit.Point)
	for _, p := range points {
		if d := fit.Deviation(p); math.Abs(d) > 1e-9 {
			t.Errorf("point %v is %v off the plane", p, d)
		}
	}
}

func TestPlaneNormalIsCanonical(t *testing.T) {
	points := []geometry.Point3{
		geometry.NewPoint3(0, 0, 1),
		geometry.NewPoint3(1, 0, 1),
		geometry.NewPoint3(0, 1, 1),
		geometry.NewPoint3(1, 1, 1),
	}
	fit, err := Plane(points)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, geometry.NewVector3(0, 0, 1), fit.Normal, cmpopts.EquateApprox(0, 1e-12))
	diff(t, geometry.NewPoint3(0.5, 0.5, 1), fit.Point)

	f, err := fit.Frame()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, fit.Normal, f.Normal(), cmpopts.EquateApprox(0, 1e-12))
}

func TestPlaneNoisy(t *testing.T) {
	// Points alternate slightly above and below z = 0.
	var points []geometry.Point3
	for i := 0; i < 20; i++ {
		dz := 0.01
		if i%2 == 0 {
			dz = -0.01
		}
		points = append(points, geometry.NewPoint3(float64(i%5), float64(i/5), dz))
	}
	fit, err := Plane(points)
	if err != nil {
		t.Fatal(err)
	}
	if fit.Normal.Z < 0.999 {
		t.Errorf("normal %v should be close to z", fit.Normal)
	}
}

func TestPlaneCollinear(t *testing.T) {
	points := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 2, 3),
		geometry.NewPoint3(2, 4, 6),
		geometry.NewPoint3(-1, -2, -3),
	}
	fit, err := Plane(points)
	if !errors.Is(err, geometry.ErrDegenerateInput) {
		t.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
	if math.Abs(fit.Normal.Length()-1) > 1e-12 {
		t.Errorf("degenerate fit normal %v is not a unit vector", fit.Normal)
	}
	line, _ := geometry.NewVector3(1, 2, 3).Normalize()
	if d := fit.Normal.Dot(line); math.Abs(d) > 1e-9 {
		t.Errorf("degenerate fit normal %v is not perpendicular to the line", fit.Normal)
	}

	again, _ := Plane(points)
	diff(t, fit, again)
}

func TestPlaneCoincident(t *testing.T) {
	p := geometry.NewPoint3(1, 1, 1)
	if _, err := Plane([]geometry.Point3{p, p, p}); !errors.Is(err, geometry.ErrDegenerateInput) {
		t.Errorf("expected ErrDegenerateInput, got %v", err)
	}
}
